// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package title resolves the human-readable title of a course in a given session.

# Tiers

A [Resolver] consults its strategies in order and stops at the first hit:

 1. Cache: titles resolved earlier, stored escaped.
 2. Dataset: the bundled catalogue, which records renames by session.
 3. Remote: the public grades API, newest version first.

When every tier misses the resolver returns [Sentinel]. Resolution never fails;
infrastructure errors are logged and treated as misses.

# Cache Write-Back

A title found below the cache tier is escaped for LaTeX and written back to the
cache. The write is best effort and never delays or changes the result. The
sentinel is never cached so a later run may still resolve the course.
*/
package title

import (
	stdctx "context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/taibuivan/gradetex/internal/latex"
	"github.com/taibuivan/gradetex/internal/platform/constants"
	"github.com/taibuivan/gradetex/internal/platform/ctxutil"
	"github.com/taibuivan/gradetex/internal/record"
)

// Sentinel is printed in place of a title no tier could resolve.
const Sentinel = "---"

// SourceNone is the Resolution source when every tier missed.
const SourceNone = "none"

// Resolution is a resolved title and the name of the tier that produced it.
type Resolution struct {
	Title  string `json:"title"`
	Source string `json:"source"`
}

// unresolved is the Resolution returned when no tier produced a title.
var unresolved = Resolution{Title: Sentinel, Source: SourceNone}

// Resolved reports whether a tier produced the title.
func (resolution Resolution) Resolved() bool {
	return resolution.Source != SourceNone
}

// Resolver runs the tier chain. It is safe for concurrent use.
type Resolver struct {
	cache  Cache
	tiers  []Strategy
	logger *slog.Logger

	// inflight collapses concurrent lookups of the same course and session.
	inflight singleflight.Group
}

// NewResolver builds a resolver whose first tier reads cache and whose remaining
// tiers are consulted in the given order. A nil cache disables caching entirely.
func NewResolver(cache Cache, logger *slog.Logger, tiers ...Strategy) *Resolver {
	chain := make([]Strategy, 0, len(tiers)+1)
	if cache != nil {
		chain = append(chain, NewCacheStrategy(cache))
	}
	chain = append(chain, tiers...)

	return &Resolver{cache: cache, tiers: chain, logger: logger}
}

// Resolve returns the document-safe title of identity in session, or [Sentinel].
func (resolver *Resolver) Resolve(context stdctx.Context, identity record.CourseIdentity, session record.SessionKey) string {
	return resolver.Explain(context, identity, session).Title
}

// Explain is [Resolver.Resolve] plus the name of the tier that answered.
//
// Callers of the same course and session share one lookup. The shared lookup is
// detached from every caller's cancellation and bounded by [constants.TitleResolveTimeout];
// a caller whose own context ends stops waiting and gets [Sentinel].
func (resolver *Resolver) Explain(context stdctx.Context, identity record.CourseIdentity, session record.SessionKey) Resolution {
	if context.Err() != nil {
		return unresolved
	}

	key := identity.String() + "@" + string(session)

	results := resolver.inflight.DoChan(key, func() (any, error) {
		shared, cancel := stdctx.WithTimeout(stdctx.WithoutCancel(context), constants.TitleResolveTimeout)
		defer cancel()

		return resolver.resolve(shared, identity, session), nil
	})

	select {
	case result := <-results:
		return result.Val.(Resolution)
	case <-context.Done():
		return unresolved
	}
}

func (resolver *Resolver) resolve(context stdctx.Context, identity record.CourseIdentity, session record.SessionKey) Resolution {
	logger := ctxutil.LoggerOr(context, resolver.logger)

	for _, tier := range resolver.tiers {
		if context.Err() != nil {
			break
		}

		result, err := tier.Lookup(context, identity, session)
		if err != nil {
			logger.Warn("title_lookup_failed",
				slog.String("tier", tier.Name()),
				slog.String("course", identity.String()),
				slog.String("session", string(session)),
				slog.Any("error", err),
			)
			continue
		}
		if !result.Found || result.Title == "" {
			continue
		}

		value := result.Title
		if !result.Escaped {
			value = latex.Escape(value)
		}

		if _, fromCache := tier.(*CacheStrategy); !fromCache {
			resolver.remember(context, identity, value)
		}

		return Resolution{Title: value, Source: tier.Name()}
	}

	logger.Warn("title_unresolved",
		slog.String("course", identity.String()),
		slog.String("session", string(session)),
	)
	return unresolved
}

// remember writes an escaped title back to the cache. Failures are only logged.
func (resolver *Resolver) remember(parent stdctx.Context, identity record.CourseIdentity, value string) {
	key := CacheKey(identity)
	if resolver.cache == nil || key == "" {
		return
	}

	// The write outlives a cancelled request but not the statement timeout
	context, cancel := stdctx.WithTimeout(stdctx.WithoutCancel(parent), constants.CacheStatementTimeout)
	defer cancel()

	if err := resolver.cache.Set(context, key, value); err != nil {
		ctxutil.LoggerOr(parent, resolver.logger).Warn("title_cache_write_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}
