// Package config loads runtime settings from the environment (and an
// optional .env file).
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/warp/hourbank/timesheet"
)

// EnvPrefix is prepended to every variable name below.
const EnvPrefix = "HOURBANK_"

type Config struct {
	Port        int      `env:"PORT, default=8080"`
	DBPath      string   `env:"DB_PATH, default=hourbank.db"`
	Env         string   `env:"ENV, default=development"`
	CORSOrigins []string `env:"CORS_ORIGINS, default=*"`

	Timezone string `env:"TIMEZONE, default=America/Sao_Paulo"`
	Pairing  string `env:"PAIRING, default=index_wise"`
	Locale   string `env:"LOCALE, default=en"`

	AlertInterval time.Duration `env:"ALERT_INTERVAL, default=5m"`
}

// Load reads .env (if present) into the process environment, then binds
// HOURBANK_* variables. Variables already set win over .env entries.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom binds from an arbitrary lookuper (tests use envconfig.MapLookuper).
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.PrefixLookuper(EnvPrefix, lookuper),
	})
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.AlertInterval <= 0 {
		return fmt.Errorf("alert interval must be positive, got %s", c.AlertInterval)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	if _, err := timesheet.ParsePairingStrategy(c.Pairing); err != nil {
		return err
	}
	return nil
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Calendar builds the engine configuration from the timezone and pairing
// settings.
func (c *Config) Calendar() (timesheet.Calendar, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return timesheet.Calendar{}, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	pairing, err := timesheet.ParsePairingStrategy(c.Pairing)
	if err != nil {
		return timesheet.Calendar{}, err
	}
	return timesheet.DefaultCalendar(loc).WithPairing(pairing), nil
}
