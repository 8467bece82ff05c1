// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package bootstrap assembles the title resolver from configuration.

Both binaries share it: cmd/api wires the result into the HTTP server, and
cmd/transcript uses it for one-off builds.

Cache Backends:

  - memory: process lifetime only; the default.
  - redis: shared across server replicas, optional TTL.
  - postgres: durable; migrations run before the pool is handed out.
  - sqlite: durable local file, intended for the CLI.
*/
package bootstrap

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/taibuivan/gradetex/internal/platform/config"
	"github.com/taibuivan/gradetex/internal/platform/migration"
	pgstore "github.com/taibuivan/gradetex/internal/platform/postgres"
	redisstore "github.com/taibuivan/gradetex/internal/platform/redis"
	"github.com/taibuivan/gradetex/internal/platform/sqlite"
	"github.com/taibuivan/gradetex/internal/title"
)

// CacheBackend is an opened title cache and its lifecycle hooks.
type CacheBackend struct {
	// Name is the configured backend, e.g. "redis".
	Name string

	Cache title.Cache

	// Check pings the backing store. It is nil for the memory backend.
	Check func(context.Context) error

	// Close releases connections. It is always safe to call.
	Close func()
}

/*
OpenCache connects to the configured cache backend.

Returns:
  - *CacheBackend: The ready cache
  - error: Connection, migration, or schema failures
*/
func OpenCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*CacheBackend, error) {
	backend := &CacheBackend{Name: cfg.CacheBackend, Close: func() {}}

	switch cfg.CacheBackend {
	case config.CacheMemory:
		backend.Cache = title.NewMemoryCache()

	case config.CacheRedis:
		client, err := redisstore.NewClient(ctx, cfg.RedisURL, logger)
		if err != nil {
			return nil, err
		}
		backend.Cache = title.NewRedisCache(client, cfg.CacheTTL)
		backend.Check = func(ctx context.Context) error { return redisstore.Ping(ctx, client) }
		backend.Close = func() {
			if err := client.Close(); err != nil {
				logger.Error("redis_close_failed", slog.Any("error", err))
			}
		}

	case config.CachePostgres:
		if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger); err != nil {
			return nil, err
		}
		pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		backend.Cache = title.NewPostgresCache(pool)
		backend.Check = func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }
		backend.Close = pool.Close

	case config.CacheSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		backend.Cache = title.NewSQLiteCache(db)
		backend.Check = db.PingContext
		backend.Close = func() {
			if err := db.Close(); err != nil {
				logger.Error("sqlite_close_failed", slog.Any("error", err))
			}
		}

	default:
		return nil, fmt.Errorf("bootstrap: unknown cache backend %q", cfg.CacheBackend)
	}

	logger.Info("title_cache_ready", slog.String("backend", backend.Name))
	return backend, nil
}

// Dataset returns the dataset partitions: DatasetDir when set, the embedded copy otherwise.
func Dataset(cfg *config.Config) fs.FS {
	if cfg.DatasetDir != "" {
		return os.DirFS(cfg.DatasetDir)
	}
	return title.EmbeddedDataset()
}

// NewResolver builds the cache, dataset, and (unless disabled) remote tiers.
func NewResolver(cfg *config.Config, cache title.Cache, logger *slog.Logger) *title.Resolver {
	tiers := []title.Strategy{title.NewDatasetStrategy(Dataset(cfg))}

	if !cfg.RemoteDisabled {
		tiers = append(tiers, title.NewRemoteStrategy(title.RemoteConfig{
			BaseURL:   cfg.RemoteBaseURL,
			Timeout:   cfg.RemoteTimeout,
			RateLimit: cfg.RemoteRateLimit,
			RateBurst: cfg.RemoteRateBurst,
			Client:    &http.Client{Transport: http.DefaultTransport},
		}))
	}

	logger.Info("title_resolver_ready",
		slog.Int("tiers", len(tiers)+1),
		slog.Bool("remote", !cfg.RemoteDisabled),
		slog.String("remote_base_url", cfg.RemoteBaseURL),
	)
	return title.NewResolver(cache, logger, tiers...)
}
