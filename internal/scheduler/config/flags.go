package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/vaxscheduler/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-driver string  store driver, "sqlite" or "pgx"
//	-d string       database DSN
//	-t int          store timeout per command, seconds
//	-l string       log backend, "slog" or "zap"
//	-v string       log level
//	-m string       ops server address (e.g. "localhost:9090")
//	-r string       Redis URL for booking events
//	-e string       Redis channel for booking events
//
// Arguments not listed above, such as -c, are filtered out first with
// flagx.FilterArgs.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-driver", "-d", "-t", "-l", "-v", "-m", "-r", "-e"})

	fs := flag.NewFlagSet("scheduler", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.DatabaseDriver, "driver", config.DatabaseDriver, "store driver (sqlite, pgx)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	storeTimeout := fs.Int("t", int(config.StoreTimeout.Seconds()), "store timeout per command (in seconds)")
	fs.StringVar(&config.LogBackend, "l", config.LogBackend, "log backend (slog, zap)")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")
	fs.StringVar(&config.MetricsAddr, "m", config.MetricsAddr, "ops server address")
	fs.StringVar(&config.RedisURL, "r", config.RedisURL, "redis URL")
	fs.StringVar(&config.EventsChannel, "e", config.EventsChannel, "redis channel for booking events")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	// -t overrides only when given
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.StoreTimeout = time.Duration(*storeTimeout) * time.Second
		}
	})
	return nil
}
