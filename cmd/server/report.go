package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/warp/hourbank/export"
	"github.com/warp/hourbank/generic"
	"github.com/warp/hourbank/i18n"
	"github.com/warp/hourbank/store/sqlite"
	"github.com/warp/hourbank/timesheet"
)

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:   "report",
		Usage:  "write an attendance report for a date range as XLSX",
		Action: runReport,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "start",
				Usage:    "first day, YYYY-MM-DD",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "end",
				Usage:    "last day, YYYY-MM-DD (inclusive)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "employee",
				Usage: "restrict to one employee ID",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   `output file ("-" for stdout)`,
				Value:   "report.xlsx",
			},
		},
	}
}

func runReport(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(ctx, cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	first, err := generic.ParseDay(cmd.String("start"))
	if err != nil {
		return generic.Malformed("start", cmd.String("start"), "expected YYYY-MM-DD")
	}
	last, err := generic.ParseDay(cmd.String("end"))
	if err != nil {
		return generic.Malformed("end", cmd.String("end"), "expected YYYY-MM-DD")
	}

	cal, err := cfg.Calendar()
	if err != nil {
		return err
	}
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer store.Close()

	svc := timesheet.NewService(cal, store, store, store)
	rows, err := svc.Report(ctx, first, last, cmd.String("employee"))
	if err != nil {
		return err
	}

	tr, err := i18n.New(cfg.Locale)
	if err != nil {
		return err
	}

	out := cmd.String("out")
	var w io.Writer = os.Stdout
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}

	if err := export.WriteReport(w, rows, export.LocalizedHeaders(tr)); err != nil {
		return err
	}
	logger.Info("report written",
		zap.String("out", out),
		zap.Stringer("start", first),
		zap.Stringer("end", last),
		zap.Int("rows", len(rows)),
	)
	return nil
}
