// Copyright (c) 2026 The Landing Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the server configuration from LANDING_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage backends.
const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Session store backends.
const (
	SessionStoreDatabase = "database"
	SessionStoreRedis    = "redis"
	SessionStoreMemory   = "memory"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Env        string `env:"LANDING_ENV" envDefault:"development"`
	ServerHost string `env:"LANDING_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"LANDING_SERVER_PORT" envDefault:"5000"`
	LogLevel   string `env:"LANDING_LOG_LEVEL" envDefault:"info"`

	// Storage configuration
	Storage     string `env:"LANDING_STORAGE" envDefault:"sqlite"`
	DBPath      string `env:"LANDING_DB_PATH" envDefault:"./data/landing.db"`
	DatabaseURL string `env:"LANDING_DATABASE_URL"` // falls back to DATABASE_URL

	// Session configuration
	SessionStore  string `env:"LANDING_SESSION_STORE" envDefault:"database"`
	RedisURL      string `env:"LANDING_REDIS_URL"`
	SessionSecret string `env:"LANDING_SESSION_SECRET,required"`

	AdminPassword  string        `env:"LANDING_ADMIN_PASSWORD"`
	CORSOrigins    []string      `env:"LANDING_CORS_ORIGINS" envSeparator:","`
	RequestTimeout time.Duration `env:"LANDING_REQUEST_TIMEOUT" envDefault:"30s"`

	// Seeding configuration
	DoSeed bool `env:"LANDING_DO_SEED" envDefault:"false"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// StorageTarget returns the DSN or file path for the configured SQL storage.
func (c Config) StorageTarget() string {
	if c.Storage == StoragePostgres {
		return c.DatabaseURL
	}
	return c.DBPath
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a validated Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	cfg.CORSOrigins = trimEmpty(cfg.CORSOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("LANDING_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// Validate checks option values and their combinations.
func (c *Config) Validate() error {
	if len(c.SessionSecret) < MinSessionSecretLength {
		return fmt.Errorf("LANDING_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(c.SessionSecret))
	}
	for _, weak := range knownWeakSecrets {
		if c.SessionSecret == weak {
			return errors.New("LANDING_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	switch c.Env {
	case "development", "production":
	default:
		return fmt.Errorf("LANDING_ENV must be development or production, got %q", c.Env)
	}

	switch c.Storage {
	case StorageSQLite, StorageMemory:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return errors.New("LANDING_DATABASE_URL (or DATABASE_URL) is required when LANDING_STORAGE=postgres")
		}
	default:
		return fmt.Errorf("LANDING_STORAGE must be sqlite, postgres or memory, got %q", c.Storage)
	}

	switch c.SessionStore {
	case SessionStoreDatabase:
		if c.Storage == StorageMemory {
			return errors.New("LANDING_SESSION_STORE=database needs SQL storage; use memory or redis with LANDING_STORAGE=memory")
		}
	case SessionStoreRedis:
		if c.RedisURL == "" {
			return errors.New("LANDING_REDIS_URL is required when LANDING_SESSION_STORE=redis")
		}
	case SessionStoreMemory:
	default:
		return fmt.Errorf("LANDING_SESSION_STORE must be database, redis or memory, got %q", c.SessionStore)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("LANDING_REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

func trimEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
