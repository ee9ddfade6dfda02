package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"github.com/xuri/excelize/v2"
)

func TestSeedThenReport(t *testing.T) {
	// GIVEN: A fresh database file seeded with the typical-week scenario
	// WHEN: Running the report command over the last three weeks
	// THEN: The workbook has a header and one row per seeded work day

	t.Setenv("HOURBANK_TIMEZONE", "UTC")
	t.Setenv("HOURBANK_LOCALE", "en")
	dir := t.TempDir()
	db := filepath.Join(dir, "hourbank.db")
	out := filepath.Join(dir, "report.xlsx")
	ctx := context.Background()

	err := newRootCommand().Run(ctx, []string{"hourbank", "--db", db, "seed", "--scenario", "typical-week"})
	require.NoError(t, err)

	today := time.Now().UTC()
	err = newRootCommand().Run(ctx, []string{
		"hourbank", "--db", db, "report",
		"--start", today.AddDate(0, 0, -21).Format(time.DateOnly),
		"--end", today.Format(time.DateOnly),
		"--out", out,
	})
	require.NoError(t, err)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Report")
	require.NoError(t, err)
	require.Len(t, rows, 11)
	assert.Equal(t, "Ana Souza", rows[1][0])
	assert.Equal(t, "8h 0min", rows[1][4])
}

func TestReport_RejectsBadDates(t *testing.T) {
	t.Setenv("HOURBANK_TIMEZONE", "UTC")
	db := filepath.Join(t.TempDir(), "hourbank.db")

	err := newRootCommand().Run(context.Background(), []string{
		"hourbank", "--db", db, "report", "--start", "2025-09-10", "--end", "2025-09-01", "--out", "-",
	})
	assert.Error(t, err)
}

func TestLoadConfig_FlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("HOURBANK_PAIRING", "index_wise")
	t.Setenv("HOURBANK_TIMEZONE", "UTC")

	var got string
	cmd := newRootCommand()
	cmd.Commands = append(cmd.Commands, &cli.Command{
		Name: "inspect",
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(ctx, c)
			if err != nil {
				return err
			}
			got = cfg.Pairing
			return nil
		},
	})

	require.NoError(t, cmd.Run(context.Background(), []string{"hourbank", "--pairing", "nearest_following", "inspect"}))
	assert.Equal(t, "nearest_following", got)

	cmd = newRootCommand()
	err := cmd.Run(context.Background(), []string{"hourbank", "--pairing", "fifo", "seed"})
	assert.Error(t, err)
}
