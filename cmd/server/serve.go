package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/warp/hourbank/api"
	"github.com/warp/hourbank/i18n"
	"github.com/warp/hourbank/store/sqlite"
)

const shutdownTimeout = 30 * time.Second

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "start the HTTP API and the alert monitor",
		Action: runServe,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "listen address (overrides HOURBANK_PORT)",
			},
			&cli.DurationFlag{
				Name:  "alert-interval",
				Usage: "how often the alert monitor re-evaluates every employee",
			},
			&cli.BoolFlag{
				Name:  "no-monitor",
				Usage: "disable the alert monitor",
			},
		},
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(ctx, cmd)
	if err != nil {
		return err
	}
	if cmd.IsSet("alert-interval") {
		cfg.AlertInterval = cmd.Duration("alert-interval")
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	addr := cfg.Addr()
	if cmd.IsSet("addr") {
		addr = cmd.String("addr")
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	cal, err := cfg.Calendar()
	if err != nil {
		return err
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer store.Close()

	tr, err := i18n.New(cfg.Locale)
	if err != nil {
		return err
	}

	handler := api.NewHandler(store, cal, tr, logger)

	monitor := api.NewAlertMonitor(handler.Service, tr, logger)
	monitor.Interval = cfg.AlertInterval
	monitor.Locale = cfg.Locale
	monitor.Enabled = !cmd.Bool("no-monitor")
	monitor.Start()
	defer monitor.Stop()

	server := &http.Server{
		Addr:         addr,
		Handler:      api.NewRouter(handler, cfg.CORSOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("addr", addr),
			zap.String("db", cfg.DBPath),
			zap.String("timezone", cfg.Timezone),
			zap.String("pairing", cfg.Pairing),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
