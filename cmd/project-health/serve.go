package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	httpapi "github.com/PolymerLabs/project-health-sub000/internal/api/http"
	"github.com/PolymerLabs/project-health-sub000/internal/repo/postgres"
)

type ServeCommand struct {
	Env *Env
}

func (c *ServeCommand) Register(parent *cobra.Command) {
	command := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and webhook receiver",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.Context())
		},
	}
	parent.AddCommand(command)
}

func (c *ServeCommand) Run(ctx context.Context) error {
	if err := c.Env.Init(ctx); err != nil {
		return err
	}
	defer c.Env.Close()

	cfg, logger := c.Env.Config, c.Env.Logger

	if err := postgres.RunMigrations(ctx, c.Env.DB, logger); err != nil {
		return err
	}

	server := httpapi.NewServer(c.Env.App(), logger, cfg.GitHub.WebhookSecret)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           httpapi.NewRouter(server, logger, cfg.RequestTimeout()),
		ReadHeaderTimeout: 5 * time.Second,
	}
	if cfg.HTTP != nil {
		srv.ReadTimeout = cfg.HTTP.ReadTimeout
		srv.WriteTimeout = cfg.HTTP.WriteTimeout
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server exited properly")
	return nil
}
