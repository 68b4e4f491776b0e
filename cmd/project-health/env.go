package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/PolymerLabs/project-health-sub000/internal/config"
	"github.com/PolymerLabs/project-health-sub000/internal/github"
	"github.com/PolymerLabs/project-health-sub000/internal/notify"
	"github.com/PolymerLabs/project-health-sub000/internal/repo/postgres"
	"github.com/PolymerLabs/project-health-sub000/internal/service"
)

// Env carries the global flags and the clients built from them.
type Env struct {
	ConfigPath string
	EnvFile    string

	Config *config.Config
	Logger *slog.Logger
	DB     *sql.DB
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil {
		level = cfg.LogLevel()
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// Init loads the config and connects to the database.
func (e *Env) Init(ctx context.Context) error {
	cfg, err := config.Load(e.ConfigPath, e.EnvFile)
	if err != nil {
		return err
	}
	e.Config = cfg
	e.Logger = newLogger(cfg)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	db, err := postgres.NewDB(ctx, cfg.DB.ConnString(), e.Logger)
	if err != nil {
		return fmt.Errorf("connect to db: %w", err)
	}
	e.DB = db
	return nil
}

func (e *Env) Close() {
	if e.DB == nil {
		return
	}
	if err := e.DB.Close(); err != nil {
		e.Logger.Error("failed to close db", "error", err.Error())
	}
}

func (e *Env) GitHub() *github.Client {
	return github.NewClient(github.Options{
		Endpoint:     e.Config.GitHub.GraphQLEndpoint,
		RESTBaseURL:  e.Config.GitHub.RESTBaseURL,
		MaxRetries:   e.Config.GitHub.MaxRetries,
		RetryBackoff: e.Config.GitHub.RetryBackoff,
		Logger:       e.Logger,
	})
}

// App wires the services on top of the Postgres repositories.
func (e *Env) App() *service.App {
	var (
		users     = postgres.NewUserRepo(e.DB)
		sessions  = postgres.NewSessionRepo(e.DB)
		statuses  = postgres.NewCommitStatusRepo(e.DB)
		automerge = postgres.NewAutomergeRepo(e.DB)
		subs      = postgres.NewPushSubscriptionRepo(e.DB)
		gh        = e.GitHub()
	)

	var notifier service.Notifier = notify.NewLogSender(e.Logger)
	push := e.Config.Push
	if push.Enabled() {
		notifier = notify.NewWebPushSender(subs, notify.VAPIDConfig{
			Subject:    push.Subject,
			PublicKey:  push.VAPIDPublicKey,
			PrivateKey: push.VAPIDPrivateKey,
			TTL:        int(push.TTL.Seconds()),
		}, nil, e.Logger)
	} else {
		e.Logger.Warn("push notifications disabled, vapid keys are not configured")
	}

	automergeSvc := service.NewAutomergeService(automerge, users, gh, notifier, push.Icon, e.Logger)
	return service.NewApp(
		service.NewDashboardService(users, statuses, automerge, gh, e.Logger),
		service.NewUserService(users, sessions, automerge, subs, gh),
		service.NewWebhookService(statuses, gh, notifier, automergeSvc, e.Config.GitHub.Token, push.Icon, e.Logger),
		automergeSvc,
	)
}
