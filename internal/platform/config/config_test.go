// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/gradetex/internal/platform/config"
)

/*
TestLoad_Defaults verifies that an empty environment yields a usable in-memory setup.
*/
func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, config.CacheMemory, cfg.CacheBackend)
	assert.Equal(t, 5*time.Second, cfg.RemoteTimeout)
	assert.Equal(t, 8, cfg.ResolveWorkers)
	assert.Equal(t, "https://ubcgrades.com/api", cfg.RemoteBaseURL)
	assert.True(t, cfg.IsDevelopment())
}

/*
TestLoad_BackendRequirements verifies that each persistent backend demands its connection setting.
*/
func TestLoad_BackendRequirements(t *testing.T) {
	cases := []struct {
		backend string
		env     string
	}{
		{config.CacheRedis, "REDIS_URL"},
		{config.CachePostgres, "DATABASE_URL"},
	}

	for _, tc := range cases {
		t.Run(tc.backend, func(t *testing.T) {
			t.Setenv("CACHE_BACKEND", tc.backend)
			t.Setenv(tc.env, "")

			_, err := config.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.env)
		})
	}
}

/*
TestValidate_RejectsUnknownBackend verifies that typos in CACHE_BACKEND fail fast.
*/
func TestValidate_RejectsUnknownBackend(t *testing.T) {
	cfg := &config.Config{CacheBackend: "memcached", ResolveWorkers: 1, RemoteTimeout: time.Second}
	assert.ErrorContains(t, cfg.Validate(), "memcached")

	cfg.CacheBackend = config.CacheMemory
	cfg.ResolveWorkers = 0
	assert.ErrorContains(t, cfg.Validate(), "RESOLVE_CONCURRENCY")
}
