package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type UsersCommand struct {
	Env *Env

	Token  string
	Scopes []string
}

func (c *UsersCommand) Register(parent *cobra.Command) {
	command := &cobra.Command{
		Use:   "users",
		Short: "Manage dashboard users",
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Register the owner of a GitHub token and open a session",
		Long: `Register the owner of a GitHub token and print a session id.

The session id is sent as the "id" cookie or as a bearer token.

Example:
  project-health users add --token "$GITHUB_TOKEN" --scopes repo,read:org`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Add(cmd.Context(), cmd)
		},
	}
	add.Flags().StringVar(&c.Token, "token", "", "GitHub token of the user")
	add.Flags().StringSliceVar(&c.Scopes, "scopes", nil, "Scopes granted to the token")
	_ = add.MarkFlagRequired("token")

	command.AddCommand(add)
	parent.AddCommand(command)
}

func (c *UsersCommand) Add(ctx context.Context, cmd *cobra.Command) error {
	if err := c.Env.Init(ctx); err != nil {
		return err
	}
	defer c.Env.Close()

	user, session, err := c.Env.App().User.Register(ctx, c.Token, c.Scopes)
	if err != nil {
		return fmt.Errorf("register user: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "registered %s (scopes: %s)\nsession: %s\n",
		user.Login, strings.Join(user.Scopes, ","), session.ID)
	return nil
}
