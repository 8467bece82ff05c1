// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/gradetex/internal/platform/postgres"
	"github.com/taibuivan/gradetex/internal/platform/redis"
	"github.com/taibuivan/gradetex/internal/platform/sqlite"
	"github.com/taibuivan/gradetex/internal/record"
	"github.com/taibuivan/gradetex/internal/title"
)

func identity(campus record.Campus, name string) record.CourseIdentity {
	return record.Course{Name: name}.Identity(campus)
}

func TestCacheKey(t *testing.T) {
	tests := []struct {
		name     string
		identity record.CourseIdentity
		want     string
	}{
		{"vancouver", identity(record.CampusVancouver, "MATH 200"), "UBCV-MATH-200"},
		{"okanagan", identity(record.CampusOkanagan, "COSC 111"), "UBCO-COSC-111"},
		{"suffix_dropped", identity(record.CampusVancouver, "CPSC 110A"), "UBCV-CPSC-110"},
		{"nbsp_separator", identity(record.CampusVancouver, "MATH\u00a0200"), "UBCV-MATH-200"},
		{"unknown_campus", identity(record.CampusUnknown, "MATH 200"), ""},
		{"blank_name", identity(record.CampusVancouver, ""), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, title.CacheKey(tt.identity))
		})
	}
}

// exerciseCache runs the shared Cache contract against an implementation.
func exerciseCache(t *testing.T, cache title.Cache) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "UBCV-MATH-999")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "UBCV-MATH-200", `Calculus \& More`))
	value, ok, err := cache.Get(ctx, "UBCV-MATH-200")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `Calculus \& More`, value)

	// Overwrite
	require.NoError(t, cache.Set(ctx, "UBCV-MATH-200", "Calculus III"))
	value, _, err = cache.Get(ctx, "UBCV-MATH-200")
	require.NoError(t, err)
	assert.Equal(t, "Calculus III", value)
}

func TestMemoryCache(t *testing.T) {
	cache := title.NewMemoryCache()
	exerciseCache(t, cache)
	assert.Equal(t, 1, cache.Len())
}

func TestSQLiteCache(t *testing.T) {
	db, err := sqlite.Open(context.Background(), ":memory:", discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	exerciseCache(t, title.NewSQLiteCache(db))
}

func TestSQLiteCache_FileSurvivesReopen(t *testing.T) {
	path := t.TempDir() + "/cache/titles.db"
	ctx := context.Background()

	db, err := sqlite.Open(ctx, path, discardLogger())
	require.NoError(t, err)
	require.NoError(t, title.NewSQLiteCache(db).Set(ctx, "UBCO-COSC-111", "Computer Programming I"))
	require.NoError(t, db.Close())

	db, err = sqlite.Open(ctx, path, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	value, ok, err := title.NewSQLiteCache(db).Get(ctx, "UBCO-COSC-111")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Computer Programming I", value)
}

// TestRedisCache runs only when TEST_REDIS_URL points at a disposable server.
func TestRedisCache(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	client, err := redis.NewClient(context.Background(), url, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	exerciseCache(t, title.NewRedisCache(client, time.Minute))
}

// TestPostgresCache runs only when TEST_DATABASE_URL points at a migrated database.
func TestPostgresCache(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := postgres.NewPool(context.Background(), dsn, discardLogger())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	exerciseCache(t, title.NewPostgresCache(pool))
}

func TestCacheStrategy(t *testing.T) {
	ctx := context.Background()
	cache := title.NewMemoryCache()
	require.NoError(t, cache.Set(ctx, "UBCV-MATH-200", `Calculus \& More`))

	strategy := title.NewCacheStrategy(cache)

	result, err := strategy.Lookup(ctx, identity(record.CampusVancouver, "MATH 200"), "2020W")
	require.NoError(t, err)
	assert.Equal(t, title.Result{Title: `Calculus \& More`, Found: true, Escaped: true}, result)

	result, err = strategy.Lookup(ctx, identity(record.CampusOkanagan, "MATH 200"), "2020W")
	require.NoError(t, err)
	assert.False(t, result.Found)
}
