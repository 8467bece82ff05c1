// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr classifies low-level storage errors for the title cache stores.
package dberr

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
)

// IsMiss reports whether err means "no such key" for any of the cache backends.
func IsMiss(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) ||
		errors.Is(err, sql.ErrNoRows) ||
		errors.Is(err, redis.Nil)
}

// Wrap annotates a storage error with the failed action.
//
// Misses are passed through untouched so callers can still test them with [IsMiss].
func Wrap(err error, action string) error {
	if err == nil || IsMiss(err) {
		return err
	}
	return fmt.Errorf("%s: %w", action, err)
}
