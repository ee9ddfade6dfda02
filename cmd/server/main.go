/*
main.go - Application entry point

PURPOSE:
  The hourbank command. Serves the HTTP API with the alert monitor, writes
  XLSX attendance reports, and seeds demo scenarios.

COMMANDS:
  serve    Start the HTTP API and the alert monitor
  report   Write an attendance report for a date range (XLSX)
  seed     Reset the database and load a demo scenario

CONFIGURATION:
  HOURBANK_* environment variables (and an optional .env file) are read
  first; see config/config.go. Flags given on the command line win.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the alert monitor
  4. Close database connection

EXAMPLES:
  hourbank serve --addr :3000
  hourbank --db ":memory:" seed --scenario team
  hourbank report --start 2025-09-01 --end 2025-09-30 --out september.xlsx --locale pt-BR

SEE ALSO:
  - api/server.go: Router configuration
  - api/scheduler.go: Alert monitor
  - export/xlsx.go: Workbook writer
*/
package main

import (
	"context"
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/warp/hourbank/config"
)

func main() {
	if err := newRootCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "hourbank:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "hourbank",
		Usage: "employee attendance and hour bank service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "db",
				Usage: `SQLite database path (":memory:" for an in-memory database)`,
			},
			&cli.StringFlag{
				Name:  "timezone",
				Usage: "IANA zone local days and clock times refer to",
			},
			&cli.StringFlag{
				Name:  "pairing",
				Usage: "punch pairing strategy (index_wise, nearest_following)",
			},
			&cli.StringFlag{
				Name:  "locale",
				Usage: "default locale for alert messages and report headers",
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			reportCommand(),
			seedCommand(),
		},
	}
}

// loadConfig reads the environment, then applies the flags that were set.
func loadConfig(ctx context.Context, cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("db") {
		cfg.DBPath = cmd.String("db")
	}
	if cmd.IsSet("timezone") {
		cfg.Timezone = cmd.String("timezone")
	}
	if cmd.IsSet("pairing") {
		cfg.Pairing = cmd.String("pairing")
	}
	if cmd.IsSet("locale") {
		cfg.Locale = cmd.String("locale")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// newLogger returns a production logger in production, a development one
// otherwise.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
