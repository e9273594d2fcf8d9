package config

import (
	"fmt"

	"github.com/dmitrijs2005/vaxscheduler/internal/timex"
	"github.com/kelseyhightower/envconfig"
)

// envPrefix namespaces the environment variables, e.g. SCHEDULER_DATABASE_DSN.
const envPrefix = "SCHEDULER"

type envConfig struct {
	DatabaseDriver string         `envconfig:"DATABASE_DRIVER"`
	DatabaseDSN    string         `envconfig:"DATABASE_DSN"`
	StoreTimeout   timex.Duration `envconfig:"STORE_TIMEOUT"`
	LogBackend     string         `envconfig:"LOG_BACKEND"`
	LogLevel       string         `envconfig:"LOG_LEVEL"`
	MetricsAddr    string         `envconfig:"METRICS_ADDR"`
	RedisURL       string         `envconfig:"REDIS_URL"`
	EventsChannel  string         `envconfig:"EVENTS_CHANNEL"`
}

// parseEnv overlays SCHEDULER_* variables. Unset variables keep the value
// already in config.
func parseEnv(config *Config) error {
	e := envConfig{
		DatabaseDriver: config.DatabaseDriver,
		DatabaseDSN:    config.DatabaseDSN,
		StoreTimeout:   timex.Duration{Duration: config.StoreTimeout},
		LogBackend:     config.LogBackend,
		LogLevel:       config.LogLevel,
		MetricsAddr:    config.MetricsAddr,
		RedisURL:       config.RedisURL,
		EventsChannel:  config.EventsChannel,
	}

	if err := envconfig.Process(envPrefix, &e); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	config.DatabaseDriver = e.DatabaseDriver
	config.DatabaseDSN = e.DatabaseDSN
	config.StoreTimeout = e.StoreTimeout.Duration
	config.LogBackend = e.LogBackend
	config.LogLevel = e.LogLevel
	config.MetricsAddr = e.MetricsAddr
	config.RedisURL = e.RedisURL
	config.EventsChannel = e.EventsChannel
	return nil
}
