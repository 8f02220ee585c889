package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"golang.org/x/crypto/bcrypt"

	"megawarez/internal/app"
	"megawarez/internal/config"
	"megawarez/internal/logging"
)

func loadEnv() (config.Config, *logging.SlogLogger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("config: %w", err)
	}
	log, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("logger: %w", err)
	}
	return cfg, log, nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API",
		Action: func(ctx context.Context, _ *cli.Command) error {
			cfg, log, err := loadEnv()
			if err != nil {
				return err
			}
			return serve(ctx, cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg config.Config, log logging.Logger) error {
	log.Info(ctx, "config loaded", "env", cfg.App.Env, "storage", cfg.Storage.Driver)

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("app init: %w", err)
	}
	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.HTTP.Port,
		Handler:      application.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout.Duration(),
		WriteTimeout: cfg.HTTP.WriteTimeout.Duration(),
		IdleTimeout:  cfg.HTTP.IdleTimeout.Duration(),
	}

	errc := make(chan error, 1)
	go func() {
		log.Info(ctx, "HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var serveErr error
	select {
	case sig := <-quit:
		log.Info(ctx, "shutting down", "signal", sig.String())
	case serveErr = <-errc:
		log.Error(ctx, "HTTP server error", "error", serveErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout.Duration())
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.Join(serveErr, fmt.Errorf("shutdown: %w", err))
	}
	return errors.Join(serveErr, application.Close(shutdownCtx))
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:      "migrate",
		Usage:     "Apply or inspect database migrations",
		ArgsUsage: "[up|down|status|version|redo|reset]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, log, err := loadEnv()
			if err != nil {
				return err
			}
			command := "up"
			if cmd.Args().Present() {
				command = cmd.Args().First()
			}
			pool, db, err := app.OpenPostgres(ctx, cfg.PG)
			if err != nil {
				return err
			}
			defer pool.Close()
			defer db.Close()
			return app.Migrate(ctx, db, log, command, cmd.Args().Tail()...)
		},
	}
}

func hashPasswordCommand() *cli.Command {
	return &cli.Command{
		Name:      "hash-password",
		Usage:     "Print a bcrypt hash for seeding users by hand",
		ArgsUsage: "[password]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "cost", Value: bcrypt.DefaultCost, Usage: "bcrypt cost"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			password := "admin"
			if cmd.Args().Present() {
				password = cmd.Args().First()
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(password), int(cmd.Int("cost")))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.Root().Writer, string(hash))
			return err
		},
	}
}

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Print the effective configuration as TOML",
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return cfg.Dump(cmd.Root().Writer)
		},
	}
}
