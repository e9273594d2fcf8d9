// Package config handles configuration for the scheduler, including
// defaults, a JSON overlay, environment variables and command-line flags.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds runtime settings for the scheduler.
//
// Fields:
//   - DatabaseDriver: "sqlite" (embedded file) or "pgx" (PostgreSQL).
//   - DatabaseDSN: file path for sqlite, connection URL for pgx.
//   - StoreTimeout: upper bound for a single command's store work.
//   - LogBackend / LogLevel: logger implementation and threshold.
//   - MetricsAddr: bind address of the ops HTTP server; empty disables it.
//   - RedisURL / EventsChannel: where booking events go; empty URL disables them.
type Config struct {
	DatabaseDriver string        `validate:"oneof=sqlite pgx"`
	DatabaseDSN    string        `validate:"required"`
	StoreTimeout   time.Duration `validate:"gte=0"`
	LogBackend     string        `validate:"oneof=slog zap"`
	LogLevel       string        `validate:"oneof=debug info warn error"`
	MetricsAddr    string        `validate:"omitempty,hostname_port"`
	RedisURL       string        `validate:"omitempty,url"`
	EventsChannel  string        `validate:"required"`
}

// LoadDefaults populates Config with defaults suitable for a local run.
func (c *Config) LoadDefaults() {
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "scheduler.db"
	c.StoreTimeout = 5 * time.Second
	c.LogBackend = "slog"
	c.LogLevel = "warn"
	c.MetricsAddr = ""
	c.RedisURL = ""
	c.EventsChannel = "scheduler.appointments"
}

// Validate checks the assembled settings.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line
// flags. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
