package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/warp/hourbank/api"
	"github.com/warp/hourbank/store/sqlite"
)

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:   "seed",
		Usage:  "reset the database and load a demo scenario",
		Action: runSeed,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "scenario",
				Usage: "scenario ID (typical-week, overtime, missed-punch, part-time, team)",
				Value: "team",
			},
		},
	}
}

func runSeed(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(ctx, cmd)
	if err != nil {
		return err
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

	handler := api.NewHandler(store, cal, nil, logger)
	return handler.LoadScenarioByID(ctx, cmd.String("scenario"))
}
