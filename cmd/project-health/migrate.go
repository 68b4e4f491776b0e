package main

import (
	"github.com/spf13/cobra"

	"github.com/PolymerLabs/project-health-sub000/internal/repo/postgres"
)

type MigrateCommand struct {
	Env *Env
}

func (c *MigrateCommand) Register(parent *cobra.Command) {
	command := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	command.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.Env.Init(cmd.Context()); err != nil {
				return err
			}
			defer c.Env.Close()
			return postgres.RunMigrations(cmd.Context(), c.Env.DB, c.Env.Logger)
		},
	})
	command.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the latest migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.Env.Init(cmd.Context()); err != nil {
				return err
			}
			defer c.Env.Close()
			return postgres.RollbackMigration(cmd.Context(), c.Env.DB, c.Env.Logger)
		},
	})

	parent.AddCommand(command)
}
