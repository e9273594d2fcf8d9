package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/vaxscheduler/internal/flagx"
	"github.com/dmitrijs2005/vaxscheduler/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept
// strings such as "5s" or integer nanoseconds. Absent keys keep the
// current value.
type JsonConfig struct {
	DatabaseDriver *string         `json:"database_driver"`
	DatabaseDSN    *string         `json:"database_dsn"`
	StoreTimeout   *timex.Duration `json:"store_timeout"`
	LogBackend     *string         `json:"log_backend"`
	LogLevel       *string         `json:"log_level"`
	MetricsAddr    *string         `json:"metrics_addr"`
	RedisURL       *string         `json:"redis_url"`
	EventsChannel  *string         `json:"events_channel"`
}

// parseJson overlays the file named by -c / -config, if any.
func parseJson(config *Config, args []string) error {
	path := flagx.JsonConfigFlags(args)

	// nothing to load
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.LogBackend, c.LogBackend)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.MetricsAddr, c.MetricsAddr)
	setString(&config.RedisURL, c.RedisURL)
	setString(&config.EventsChannel, c.EventsChannel)
	if c.StoreTimeout != nil {
		config.StoreTimeout = c.StoreTimeout.Duration
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
