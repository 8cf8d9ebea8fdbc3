// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"FEATREQ_DB_PATH" envDefault:"./data/featreq.db"`
	ServerHost string `env:"FEATREQ_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"FEATREQ_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"FEATREQ_ENV" envDefault:"development"`
	LogLevel   string `env:"FEATREQ_LOG_LEVEL" envDefault:"info"`

	// Session configuration
	RedisURL      string `env:"FEATREQ_REDIS_URL"`                        // Optional Redis URL for distributed session storage
	SessionPrefix string `env:"FEATREQ_SESSION_PREFIX" envDefault:"featreq:"` // Redis key prefix
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisSessions returns true if Redis session storage is configured.
func (c Config) UseRedisSessions() bool {
	return c.RedisURL != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("FEATREQ_SERVER_PORT must be between 1 and 65535, got %d", cfg.ServerPort)
	}

	return cfg, nil
}
