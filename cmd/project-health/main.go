package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Command is a subcommand that registers itself with its parent.
type Command interface {
	Register(parent *cobra.Command)
}

func newRootCommand() *cobra.Command {
	env := &Env{}

	root := &cobra.Command{
		Use:           "project-health",
		Short:         "GitHub pull request dashboard service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.PersistentFlags().StringVar(&env.ConfigPath, "config", "config.yml", "Path to config file")
	root.PersistentFlags().StringVar(&env.EnvFile, "env-file", ".env", "Dotenv file with secrets, skipped when missing")

	commands := []Command{
		&ServeCommand{Env: env},
		&MigrateCommand{Env: env},
		&UsersCommand{Env: env},
		&DashboardCommand{Env: env},
	}
	for _, c := range commands {
		c.Register(root)
	}
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		newLogger(nil).Error("command failed", "error", err.Error())
		stop()
		os.Exit(1)
	}
}
