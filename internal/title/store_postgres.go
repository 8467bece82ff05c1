// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/gradetex/internal/platform/constants"
	"github.com/taibuivan/gradetex/internal/platform/dberr"
)

// PostgresCache implements [Cache] over the course_titles table.
//
// The table is created by the migrations under data/migrations.
type PostgresCache struct {
	pool *pgxpool.Pool
}

// NewPostgresCache creates a PostgreSQL implementation of the title cache.
func NewPostgresCache(pool *pgxpool.Pool) *PostgresCache {
	return &PostgresCache{pool: pool}
}

var (
	postgresSelectTitle = fmt.Sprintf(`SELECT title FROM %s WHERE cache_key = $1`, constants.TableCourseTitles)

	postgresUpsertTitle = fmt.Sprintf(`
		INSERT INTO %s (cache_key, title, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (cache_key) DO UPDATE
		SET title = EXCLUDED.title, updated_at = EXCLUDED.updated_at`, constants.TableCourseTitles)
)

// Get retrieves a cached title by key.
func (repository *PostgresCache) Get(context context.Context, key string) (string, bool, error) {
	var value string
	err := repository.pool.QueryRow(context, postgresSelectTitle, key).Scan(&value)
	if err != nil {
		if dberr.IsMiss(err) {
			return "", false, nil
		}
		return "", false, dberr.Wrap(err, "postgres_title_get_failed")
	}

	return value, true, nil
}

// Set inserts or replaces the title stored under key.
func (repository *PostgresCache) Set(context context.Context, key, value string) error {
	if _, err := repository.pool.Exec(context, postgresUpsertTitle, key, value); err != nil {
		return dberr.Wrap(err, "postgres_title_set_failed")
	}
	return nil
}
