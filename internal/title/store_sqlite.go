// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/taibuivan/gradetex/internal/platform/constants"
	"github.com/taibuivan/gradetex/internal/platform/dberr"
)

// SQLiteCache implements [Cache] over a local SQLite file opened by platform/sqlite.
type SQLiteCache struct {
	db *sql.DB
}

// NewSQLiteCache wraps an open database whose schema is already applied.
func NewSQLiteCache(db *sql.DB) *SQLiteCache {
	return &SQLiteCache{db: db}
}

var (
	sqliteSelectTitle = fmt.Sprintf(`SELECT title FROM %s WHERE cache_key = ?`, constants.TableCourseTitles)

	sqliteUpsertTitle = fmt.Sprintf(`
		INSERT INTO %s (cache_key, title, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(cache_key) DO UPDATE
		SET title = excluded.title, updated_at = excluded.updated_at`, constants.TableCourseTitles)
)

func (repository *SQLiteCache) Get(context context.Context, key string) (string, bool, error) {
	var value string
	err := repository.db.QueryRowContext(context, sqliteSelectTitle, key).Scan(&value)
	if err != nil {
		if dberr.IsMiss(err) {
			return "", false, nil
		}
		return "", false, dberr.Wrap(err, "sqlite_title_get_failed")
	}
	return value, true, nil
}

func (repository *SQLiteCache) Set(context context.Context, key, value string) error {
	if _, err := repository.db.ExecContext(context, sqliteUpsertTitle, key, value); err != nil {
		return dberr.Wrap(err, "sqlite_title_set_failed")
	}
	return nil
}
