// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	stdctx "context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/gradetex/internal/record"
)

// # API Versions

// APIVersion describes one generation of the remote grades API and the data it covers.
type APIVersion struct {
	Name string

	// MinSession is the earliest session the version has data for. Empty means no bound.
	MinSession record.SessionKey

	// Campuses restricts the version to some campuses. Empty means every campus.
	Campuses []record.Campus
}

// Covers reports whether the version can answer for campus and session.
func (version APIVersion) Covers(campus record.Campus, session record.SessionKey) bool {
	if version.MinSession != "" && !session.AtLeast(version.MinSession) {
		return false
	}
	return len(version.Campuses) == 0 || slices.Contains(version.Campuses, campus)
}

// DefaultAPIVersions lists the versions newest first; v1 only ever covered Vancouver.
func DefaultAPIVersions() []APIVersion {
	return []APIVersion{
		{Name: "v3", MinSession: "2014S"},
		{Name: "v2", MinSession: "1996S"},
		{Name: "v1", Campuses: []record.Campus{record.CampusVancouver}},
	}
}

// # Remote Strategy

// RemoteConfig configures [NewRemoteStrategy].
type RemoteConfig struct {
	BaseURL string

	// Timeout bounds each HTTP call, not the whole fallback sequence.
	Timeout time.Duration

	// RateLimit and RateBurst throttle outbound calls. A zero RateLimit disables throttling.
	RateLimit float64
	RateBurst int

	// Versions defaults to [DefaultAPIVersions].
	Versions []APIVersion

	// Client defaults to a plain http.Client.
	Client *http.Client
}

// RemoteStrategy is the third resolver tier: the public grades API, which reports the
// title a course had in a given session.
type RemoteStrategy struct {
	baseURL  string
	timeout  time.Duration
	versions []APIVersion
	client   *http.Client
	limiter  *rate.Limiter
}

// NewRemoteStrategy builds the remote tier from cfg.
func NewRemoteStrategy(cfg RemoteConfig) *RemoteStrategy {
	strategy := &RemoteStrategy{
		baseURL:  cfg.BaseURL,
		timeout:  cfg.Timeout,
		versions: cfg.Versions,
		client:   cfg.Client,
		limiter:  rate.NewLimiter(rate.Inf, 0),
	}

	if len(strategy.versions) == 0 {
		strategy.versions = DefaultAPIVersions()
	}
	if strategy.client == nil {
		strategy.client = &http.Client{}
	}
	if cfg.RateLimit > 0 {
		strategy.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), max(cfg.RateBurst, 1))
	}

	return strategy
}

func (strategy *RemoteStrategy) Name() string { return "remote" }

// gradeRow is the only field of a grades API row the resolver reads.
type gradeRow struct {
	CourseTitle string `json:"course_title"`
}

// errUnusable marks a response that should send the lookup on to the next version.
var errUnusable = errors.New("unusable response")

/*
Lookup tries every version that covers the session, newest first.

A non-2xx status or an empty result moves on to the next version. Transport
failures do too, but the last one is returned if no version answers.
*/
func (strategy *RemoteStrategy) Lookup(context stdctx.Context, identity record.CourseIdentity, session record.SessionKey) (Result, error) {
	campus := identity.Campus.Abbreviation()
	if campus == "" || identity.Subject == "" || identity.Code == "" {
		return miss, nil
	}

	var lastErr error
	for _, version := range strategy.versions {
		if !version.Covers(identity.Campus, session) {
			continue
		}

		// 1. Respect the outbound budget; a cancelled request stops the sequence
		if err := strategy.limiter.Wait(context); err != nil {
			return miss, fmt.Errorf("title: remote throttle: %w", err)
		}

		// 2. Query this version
		value, err := strategy.fetch(context, version.Name, campus, identity, session)
		switch {
		case err == nil:
			return Result{Title: value, Found: true}, nil
		case errors.Is(err, errUnusable):
			continue
		case context.Err() != nil:
			return miss, context.Err()
		default:
			lastErr = err
		}
	}

	return miss, lastErr
}

func (strategy *RemoteStrategy) fetch(parent stdctx.Context, version, campus string, identity record.CourseIdentity, session record.SessionKey) (string, error) {
	endpoint, err := url.JoinPath(strategy.baseURL, version, "grades", campus, string(session), identity.Subject, identity.Code)
	if err != nil {
		return "", fmt.Errorf("title: invalid remote url: %w", err)
	}

	context := parent
	if strategy.timeout > 0 {
		var cancel stdctx.CancelFunc
		context, cancel = stdctx.WithTimeout(parent, strategy.timeout)
		defer cancel()
	}

	request, err := http.NewRequestWithContext(context, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("title: failed to build request: %w", err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := strategy.client.Do(request)
	if err != nil {
		return "", fmt.Errorf("title: remote %s request failed: %w", version, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return "", errUnusable
	}

	var rows []gradeRow
	if err := json.NewDecoder(response.Body).Decode(&rows); err != nil {
		return "", errUnusable
	}
	if len(rows) == 0 || rows[0].CourseTitle == "" {
		return "", errUnusable
	}

	return rows[0].CourseTitle, nil
}
