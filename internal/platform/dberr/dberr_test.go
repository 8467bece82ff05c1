// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/gradetex/internal/platform/dberr"
)

func TestIsMiss(t *testing.T) {
	assert.True(t, dberr.IsMiss(pgx.ErrNoRows))
	assert.True(t, dberr.IsMiss(sql.ErrNoRows))
	assert.True(t, dberr.IsMiss(redis.Nil))
	assert.False(t, dberr.IsMiss(errors.New("connection refused")))
}

func TestWrap(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "get_title"))
	assert.Equal(t, redis.Nil, dberr.Wrap(redis.Nil, "get_title"))

	cause := errors.New("connection refused")
	err := dberr.Wrap(cause, "get_title")
	assert.ErrorIs(t, err, cause)
	assert.EqualError(t, err, "get_title: connection refused")
}
