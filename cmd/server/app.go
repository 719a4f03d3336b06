package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/BetulAktoprak/task-management-system/internal/config"
	"github.com/BetulAktoprak/task-management-system/internal/events"
	"github.com/BetulAktoprak/task-management-system/internal/notify"
	"github.com/BetulAktoprak/task-management-system/internal/platform/postgres"
	"github.com/BetulAktoprak/task-management-system/internal/service"
	"github.com/BetulAktoprak/task-management-system/internal/service/auth"
	"github.com/BetulAktoprak/task-management-system/internal/store"
)

// application holds the server's shared dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore    store.UserStore
	projectStore store.ProjectStore
	taskStore    store.TaskStore
	statsStore   store.StatsStore

	issuer    *auth.Issuer
	publisher *events.Fanout
	hub       *notify.Hub

	userService      service.UserService
	projectService   service.ProjectService
	taskService      service.TaskService
	dashboardService service.DashboardService
}

// newApplication wires stores, the credential issuer, the notification hub
// and the services. It does not touch the database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.issuer, err = auth.NewIssuer(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize credential issuer: %w", err)
	}
	passwords := auth.NewBcrypt(cfg.Auth.BCryptCost)

	app.userStore = postgres.NewPostgresUserStore(db)
	app.projectStore = postgres.NewPostgresProjectStore(db)
	app.taskStore = postgres.NewPostgresTaskStore(db)
	app.statsStore = postgres.NewPostgresStatsStore(db)
	tx := store.SQLTransactor{DB: db}

	registry := notify.NewRegistry(cfg.Notify.BroadcastConcurrency, logger)
	app.hub = notify.NewHub(
		registry,
		app.issuer,
		notify.OptionsFromConfig(cfg.Notify, cfg.Server.AllowedOrigins),
		logger,
	)

	app.publisher = events.NewFanout(logger)
	app.publisher.Register(app.hub)
	app.publisher.Register(events.LogPublisher{Logger: logger.With("component", "notifications")})

	app.userService = service.NewUserService(app.userStore, tx, passwords, passwords, app.issuer, logger)
	app.projectService = service.NewProjectService(app.projectStore, logger)
	app.dashboardService = service.NewDashboardService(app.statsStore, logger)
	app.taskService = service.NewTaskService(
		app.taskStore,
		app.projectStore,
		app.userStore,
		tx,
		app.publisher,
		logger,
	)

	logger.Info("application initialized")
	return app, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
