// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (cache stores, resolver) via constructors.
  - Zero Hidden State: No global variables are used to store config.

Both binaries (cmd/api and cmd/transcript) share this schema.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Cache Backends

const (
	CacheMemory   = "memory"
	CacheRedis    = "redis"
	CachePostgres = "postgres"
	CacheSQLite   = "sqlite"
)

// # Configuration Schema

// Config holds all runtime configuration for the gradetex binaries.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// CacheBackend selects the persistent title cache (memory, redis, postgres, sqlite).
	CacheBackend string `env:"CACHE_BACKEND" envDefault:"memory"`

	// Relational Database (PostgreSQL), required by the postgres backend.
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis), required by the redis backend.
	RedisURL string `env:"REDIS_URL"`

	// CacheTTL bounds the lifetime of Redis title entries. Zero keeps them forever.
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"0s"`

	// SQLitePath is the local cache file used by the sqlite backend.
	SQLitePath string `env:"SQLITE_PATH" envDefault:"./data/titles.db"`

	// DatasetDir overrides the embedded course title dataset with files on disk.
	DatasetDir string `env:"DATASET_DIR"`

	// Remote title service
	RemoteBaseURL   string        `env:"REMOTE_BASE_URL"         envDefault:"https://ubcgrades.com/api"`
	RemoteTimeout   time.Duration `env:"REMOTE_TIMEOUT"          envDefault:"5s"`
	RemoteRateLimit float64       `env:"REMOTE_RATE_LIMIT_RPS"   envDefault:"10"`
	RemoteRateBurst int           `env:"REMOTE_RATE_LIMIT_BURST" envDefault:"5"`
	RemoteDisabled  bool          `env:"REMOTE_DISABLED"         envDefault:"false"`

	// LogoPath is an image printed in the top-left corner of every transcript page.
	LogoPath string `env:"LOGO_PATH"`

	// ResolveWorkers bounds the number of concurrent title resolutions per transcript.
	ResolveWorkers int `env:"RESOLVE_CONCURRENCY" envDefault:"8"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the backend-specific requirements that struct tags cannot express.
func (c *Config) Validate() error {
	switch c.CacheBackend {
	case CacheMemory:
	case CacheRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config: REDIS_URL is required for the %q cache backend", c.CacheBackend)
		}
	case CachePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required for the %q cache backend", c.CacheBackend)
		}
	case CacheSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("config: SQLITE_PATH is required for the %q cache backend", c.CacheBackend)
		}
	default:
		return fmt.Errorf("config: unknown CACHE_BACKEND %q", c.CacheBackend)
	}

	if c.ResolveWorkers < 1 {
		return fmt.Errorf("config: RESOLVE_CONCURRENCY must be positive, got %d", c.ResolveWorkers)
	}

	if c.RemoteTimeout <= 0 {
		return fmt.Errorf("config: REMOTE_TIMEOUT must be positive, got %s", c.RemoteTimeout)
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
