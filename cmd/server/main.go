// Package main is the task management server: REST API, real-time task
// notification hub and schema migrations.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/BetulAktoprak/task-management-system/internal/config"
	"github.com/BetulAktoprak/task-management-system/internal/platform/logger"
	"github.com/BetulAktoprak/task-management-system/internal/platform/postgres"
)

type options struct {
	envFile        string
	migrateOnly    bool
	listMigrations bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	flags := pflag.NewFlagSet("server", pflag.ContinueOnError)
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before configuration (ignored if missing)")
	flags.BoolVar(&opts.migrateOnly, "migrate-only", false, "apply pending migrations and exit")
	flags.BoolVar(&opts.listMigrations, "list-migrations", false, "print the embedded migrations and exit")
	if err := flags.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	if opts.listMigrations {
		return printMigrations(os.Stdout)
	}

	if err := loadEnvFile(opts.envFile); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	log.Info("database connection established")

	if err := postgres.Migrate(ctx, db, log); err != nil {
		_ = db.Close()
		return err
	}
	if opts.migrateOnly {
		return db.Close()
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		_ = db.Close()
		return err
	}
	return app.Run(ctx)
}

// loadEnvFile loads path into the process environment. Variables that are
// already set win over the file.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
