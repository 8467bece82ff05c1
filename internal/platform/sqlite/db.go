// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sqlite opens the local SQLite file used by the sqlite title cache backend.
//
// The driver is modernc's pure-Go build; no cgo toolchain is needed.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	// modernc registers the "sqlite" driver name.
	_ "modernc.org/sqlite"

	"github.com/taibuivan/gradetex/internal/platform/constants"
)

// schema is applied on every open; statements are idempotent.
var schema = fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	cache_key  TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`, constants.TableCourseTitles)

// Open creates (if needed) and opens the database at path.
//
// The special path ":memory:" opens a private in-memory database, which tests use.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open database: %w", err)
	}

	// One writer at a time, otherwise concurrent upserts return SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: failed to apply schema: %w", err)
	}

	logger.Info("sqlite cache opened", slog.String("path", path))
	return db, nil
}
