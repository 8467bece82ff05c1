// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/gradetex/internal/platform/constants"
	"github.com/taibuivan/gradetex/internal/platform/dberr"
)

// RedisCache implements [Cache] using Redis string keys under the "title:" prefix.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed cache. A zero ttl keeps entries forever.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

/*
Get returns the cached title for key.

Returns:
  - string: The escaped title
  - bool: false when the key is absent or expired
  - error: Connectivity errors
*/
func (repository *RedisCache) Get(context context.Context, key string) (string, bool, error) {
	value, err := repository.client.Get(context, constants.RedisPrefixTitle+key).Result()
	if err != nil {
		if dberr.IsMiss(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis_title_get_failed: %w", err)
	}

	return value, true, nil
}

// Set stores value under key with the configured TTL.
func (repository *RedisCache) Set(context context.Context, key, value string) error {
	if err := repository.client.Set(context, constants.RedisPrefixTitle+key, value, repository.ttl).Err(); err != nil {
		return fmt.Errorf("redis_title_set_failed: %w", err)
	}
	return nil
}
