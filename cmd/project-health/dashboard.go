package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolymerLabs/project-health-sub000/internal/repo/postgres"
)

type DashboardCommand struct {
	Env *Env

	Login string
}

func (c *DashboardCommand) Register(parent *cobra.Command) {
	command := &cobra.Command{
		Use:   "dashboard",
		Short: "Print the dashboard of a registered user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.Context(), cmd)
		},
	}
	command.Flags().StringVar(&c.Login, "login", "", "GitHub login of a registered user")
	_ = command.MarkFlagRequired("login")

	parent.AddCommand(command)
}

func (c *DashboardCommand) Run(ctx context.Context, cmd *cobra.Command) error {
	if err := c.Env.Init(ctx); err != nil {
		return err
	}
	defer c.Env.Close()

	user, err := postgres.NewUserRepo(c.Env.DB).GetByLogin(ctx, c.Login)
	if err != nil {
		return fmt.Errorf("get user %s: %w", c.Login, err)
	}

	data, err := c.Env.App().Dashboard.FetchUserData(ctx, user.Login, user.Token)
	if err != nil {
		return fmt.Errorf("fetch dashboard: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderDashboard(data))
	return nil
}
