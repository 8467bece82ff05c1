// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/gradetex/internal/record"
	"github.com/taibuivan/gradetex/internal/title"
)

// stubStrategy returns a fixed result and counts its calls.
type stubStrategy struct {
	name   string
	result title.Result
	err    error
	gate   chan struct{}
	calls  atomic.Int32
}

func (stub *stubStrategy) Name() string { return stub.name }

func (stub *stubStrategy) Lookup(context.Context, record.CourseIdentity, record.SessionKey) (title.Result, error) {
	stub.calls.Add(1)
	if stub.gate != nil {
		<-stub.gate
	}
	return stub.result, stub.err
}

func found(value string) title.Result {
	return title.Result{Title: value, Found: true}
}

// failingCache rejects every write.
type failingCache struct{ *title.MemoryCache }

func (failingCache) Set(context.Context, string, string) error {
	return errors.New("cache unavailable")
}

var mathIdentity = record.CourseIdentity{Campus: record.CampusVancouver, Subject: "MATH", Code: "200"}

func TestResolver_CacheHitShortCircuits(t *testing.T) {
	ctx := context.Background()
	cache := title.NewMemoryCache()
	require.NoError(t, cache.Set(ctx, "UBCV-MATH-200", `Calculus \& More`))

	dataset := &stubStrategy{name: "dataset", result: found("ignored")}
	resolver := title.NewResolver(cache, discardLogger(), dataset)

	resolution := resolver.Explain(ctx, mathIdentity, "2020W")

	assert.Equal(t, `Calculus \& More`, resolution.Title)
	assert.Equal(t, "cache", resolution.Source)
	assert.Zero(t, dataset.calls.Load())
}

/*
TestResolver_EscapesAndWritesBack verifies that a lower-tier hit is escaped once,
stored in the cache, and served from the cache afterwards without re-escaping.
*/
func TestResolver_EscapesAndWritesBack(t *testing.T) {
	ctx := context.Background()
	cache := title.NewMemoryCache()
	dataset := &stubStrategy{name: "dataset", result: found("Science & Society 100%")}
	resolver := title.NewResolver(cache, discardLogger(), dataset)

	first := resolver.Explain(ctx, mathIdentity, "2020W")
	assert.Equal(t, `Science \& Society 100\%`, first.Title)
	assert.Equal(t, "dataset", first.Source)

	stored, ok, err := cache.Get(ctx, "UBCV-MATH-200")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `Science \& Society 100\%`, stored)

	second := resolver.Explain(ctx, mathIdentity, "2020W")
	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, "cache", second.Source)
	assert.Equal(t, int32(1), dataset.calls.Load())
}

func TestResolver_AlreadyEscapedNotReescaped(t *testing.T) {
	remote := &stubStrategy{name: "remote", result: title.Result{Title: `R\&D`, Found: true, Escaped: true}}
	resolver := title.NewResolver(title.NewMemoryCache(), discardLogger(), remote)

	assert.Equal(t, `R\&D`, resolver.Resolve(context.Background(), mathIdentity, "2020W"))
}

func TestResolver_TierOrder(t *testing.T) {
	dataset := &stubStrategy{name: "dataset"}
	remote := &stubStrategy{name: "remote", result: found("From Remote")}
	resolver := title.NewResolver(title.NewMemoryCache(), discardLogger(), dataset, remote)

	resolution := resolver.Explain(context.Background(), mathIdentity, "2020W")

	assert.Equal(t, "From Remote", resolution.Title)
	assert.Equal(t, "remote", resolution.Source)
	assert.Equal(t, int32(1), dataset.calls.Load())
}

func TestResolver_SentinelNeverCached(t *testing.T) {
	cache := title.NewMemoryCache()
	resolver := title.NewResolver(cache, discardLogger(), &stubStrategy{name: "dataset"}, &stubStrategy{name: "remote"})

	resolution := resolver.Explain(context.Background(), mathIdentity, "2020W")

	assert.Equal(t, title.Sentinel, resolution.Title)
	assert.False(t, resolution.Resolved())
	assert.Zero(t, cache.Len())
}

func TestResolver_ErrorsAreMisses(t *testing.T) {
	broken := &stubStrategy{name: "dataset", err: errors.New("disk on fire")}
	remote := &stubStrategy{name: "remote", result: found("Calculus III")}
	resolver := title.NewResolver(title.NewMemoryCache(), discardLogger(), broken, remote)

	assert.Equal(t, "Calculus III", resolver.Resolve(context.Background(), mathIdentity, "2020W"))
}

func TestResolver_CacheWriteFailureKeepsResult(t *testing.T) {
	cache := failingCache{title.NewMemoryCache()}
	resolver := title.NewResolver(cache, discardLogger(), &stubStrategy{name: "dataset", result: found("Calculus III")})

	assert.Equal(t, "Calculus III", resolver.Resolve(context.Background(), mathIdentity, "2020W"))
}

func TestResolver_NilCache(t *testing.T) {
	resolver := title.NewResolver(nil, discardLogger(), &stubStrategy{name: "dataset", result: found("A & B")})

	assert.Equal(t, `A \& B`, resolver.Resolve(context.Background(), mathIdentity, "2020W"))
}

func TestResolver_CancelledContextYieldsSentinel(t *testing.T) {
	dataset := &stubStrategy{name: "dataset", result: found("Calculus III")}
	resolver := title.NewResolver(title.NewMemoryCache(), discardLogger(), dataset)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, title.Sentinel, resolver.Resolve(ctx, mathIdentity, "2020W"))
	assert.Zero(t, dataset.calls.Load())
}

/*
TestResolver_CollapsesConcurrentLookups verifies that concurrent resolutions of the
same course and session share a single pass through the tiers.
*/
func TestResolver_CollapsesConcurrentLookups(t *testing.T) {
	dataset := &stubStrategy{name: "dataset", result: found("Calculus III"), gate: make(chan struct{})}
	resolver := title.NewResolver(title.NewMemoryCache(), discardLogger(), dataset)

	const callers = 8
	results := make([]string, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = resolver.Resolve(context.Background(), mathIdentity, "2020W")
		}()
	}

	// Let every caller join the in-flight lookup before releasing it
	require.Eventually(t, func() bool { return dataset.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(dataset.gate)
	wg.Wait()

	assert.Equal(t, int32(1), dataset.calls.Load())
	for _, result := range results {
		assert.Equal(t, "Calculus III", result)
	}
}

/*
TestResolver_CancelledCallerDoesNotAffectOthers verifies that when the caller who
started a shared lookup goes away, callers still waiting on the same course get the
resolved title instead of the sentinel.
*/
func TestResolver_CancelledCallerDoesNotAffectOthers(t *testing.T) {
	dataset := &stubStrategy{name: "dataset", result: found("Calculus III"), gate: make(chan struct{})}
	resolver := title.NewResolver(title.NewMemoryCache(), discardLogger(), dataset)

	// 1. First caller starts the lookup with a context it later cancels
	firstCtx, cancelFirst := context.WithCancel(context.Background())
	first := make(chan string, 1)
	go func() { first <- resolver.Resolve(firstCtx, mathIdentity, "2020W") }()
	require.Eventually(t, func() bool { return dataset.calls.Load() == 1 }, time.Second, time.Millisecond)

	// 2. Second caller joins with a live context
	second := make(chan string, 1)
	go func() { second <- resolver.Resolve(context.Background(), mathIdentity, "2020W") }()
	time.Sleep(50 * time.Millisecond)

	// 3. The first caller leaves before the tier answers
	cancelFirst()
	assert.Equal(t, title.Sentinel, <-first)

	close(dataset.gate)
	assert.Equal(t, "Calculus III", <-second)
	assert.Equal(t, int32(1), dataset.calls.Load())
}

/*
TestResolver_EmbeddedDataset wires the real dataset tier and checks that the
session picks the matching revision and the stored title is escaped.
*/
func TestResolver_EmbeddedDataset(t *testing.T) {
	ctx := context.Background()
	resolver := title.NewResolver(title.NewMemoryCache(), discardLogger(), title.NewDatasetStrategy(title.EmbeddedDataset()))
	cpsc221 := record.CourseIdentity{Campus: record.CampusVancouver, Subject: "CPSC", Code: "221"}

	assert.Equal(t, `Basic Algorithms \& Data Structures`, resolver.Resolve(ctx, cpsc221, "2010W"))
	assert.Equal(t, "Computer Programming I",
		resolver.Resolve(ctx, record.CourseIdentity{Campus: record.CampusOkanagan, Subject: "COSC", Code: "111"}, "2020W"))
	assert.Equal(t, title.Sentinel,
		resolver.Resolve(ctx, record.CourseIdentity{Campus: record.CampusUnknown, Subject: "CPSC", Code: "110"}, "2020W"))
}
