// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"sync"

	"github.com/taibuivan/gradetex/internal/record"
)

// # Cache Contract

// Cache is persistent storage for resolved, already escaped titles.
//
// Get reports a miss with ok == false and a nil error. Implementations must be
// safe for concurrent use.
type Cache interface {
	Get(context context.Context, key string) (value string, ok bool, err error)
	Set(context context.Context, key, value string) error
}

// CacheKey builds "UBCV-MATH-200" from a course identity. Only the first three
// characters of the code take part, so "MATH 110A" and "MATH 110" share an entry.
//
// The key is empty for an unknown campus; such courses are never cached.
func CacheKey(identity record.CourseIdentity) string {
	campus := identity.Campus.Abbreviation()
	if campus == "" || identity.Subject == "" {
		return ""
	}
	return campus + "-" + identity.Subject + "-" + identity.LookupCode()
}

// # Cache Strategy

// CacheStrategy is the first resolver tier. Cached titles are stored escaped.
type CacheStrategy struct {
	cache Cache
}

// NewCacheStrategy wraps cache as a resolver tier.
func NewCacheStrategy(cache Cache) *CacheStrategy {
	return &CacheStrategy{cache: cache}
}

func (strategy *CacheStrategy) Name() string { return "cache" }

// Lookup ignores the session: a cached title is whatever was resolved first.
func (strategy *CacheStrategy) Lookup(context context.Context, identity record.CourseIdentity, _ record.SessionKey) (Result, error) {
	key := CacheKey(identity)
	if key == "" {
		return miss, nil
	}

	value, ok, err := strategy.cache.Get(context, key)
	if err != nil || !ok {
		return miss, err
	}

	return Result{Title: value, Found: true, Escaped: true}, nil
}

// # In-Memory Cache

// MemoryCache keeps titles in a map for the lifetime of the process.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryCache returns an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]string)}
}

func (cache *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	cache.mu.RLock()
	defer cache.mu.RUnlock()

	value, ok := cache.entries[key]
	return value, ok, nil
}

func (cache *MemoryCache) Set(_ context.Context, key, value string) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	cache.entries[key] = value
	return nil
}

// Len returns the number of cached titles.
func (cache *MemoryCache) Len() int {
	cache.mu.RLock()
	defer cache.mu.RUnlock()
	return len(cache.entries)
}
