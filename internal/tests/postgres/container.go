// Package postgres starts a throwaway Postgres for integration tests.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	repo "github.com/PolymerLabs/project-health-sub000/internal/repo/postgres"
)

// Setup starts a container, applies the migrations and returns an open
// database together with its teardown.
func Setup(ctx context.Context) (db *sql.DB, cleanup func(), err error) {
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("project-health"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start pg container: %w", err)
	}

	teardown := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		teardown()
		return nil, nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	logger := slog.New(slog.DiscardHandler)
	db, err = repo.NewDB(ctx, connStr, logger)
	if err != nil {
		teardown()
		return nil, nil, err
	}

	if err := repo.RunMigrations(ctx, db, logger); err != nil {
		_ = db.Close()
		teardown()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, func() {
		_ = db.Close()
		teardown()
	}, nil
}
