// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/taibuivan/gradetex/internal/record"
)

// Title is a course title as recorded by the dataset: either a single constant
// value or a history of renames keyed by the session each name took effect.
//
// The interface is sealed; [Constant] and [Versioned] are the only variants.
type Title interface {
	// For returns the title in effect for session. Empty means no title is known.
	For(session record.SessionKey) string

	sealed()
}

// Constant is a title that never changed.
type Constant string

// For returns the constant regardless of session.
func (c Constant) For(record.SessionKey) string { return string(c) }

func (Constant) sealed() {}

// Revision is one entry of a title history.
type Revision struct {
	Session record.SessionKey
	Title   string
}

// Versioned is a title history ordered from the newest revision to the oldest.
type Versioned []Revision

// NewVersioned sorts revisions newest first.
func NewVersioned(revisions ...Revision) Versioned {
	sorted := slices.Clone(revisions)
	slices.SortStableFunc(sorted, func(a, b Revision) int {
		return strings.Compare(string(b.Session), string(a.Session))
	})
	return Versioned(sorted)
}

// For returns the newest revision that took effect on or before session.
//
// Sessions older than every revision get the oldest title: the history starts
// when the data was collected, not when the course was created.
func (v Versioned) For(session record.SessionKey) string {
	if len(v) == 0 {
		return ""
	}
	for _, revision := range v {
		if session.AtLeast(revision.Session) {
			return revision.Title
		}
	}
	return v[len(v)-1].Title
}

func (Versioned) sealed() {}

// UnmarshalJSON decodes the dataset encoding [["2018W","New"],["2010W","Old"]].
func (v *Versioned) UnmarshalJSON(data []byte) error {
	var pairs [][2]string
	if err := json.Unmarshal(data, &pairs); err != nil {
		return fmt.Errorf("title: invalid revision list: %w", err)
	}

	revisions := make([]Revision, 0, len(pairs))
	for _, pair := range pairs {
		revisions = append(revisions, Revision{Session: record.SessionKey(pair[0]), Title: pair[1]})
	}

	*v = NewVersioned(revisions...)
	return nil
}

// Decode picks the variant from the JSON token kind: a string is a [Constant],
// an array is a [Versioned] history.
func Decode(raw json.RawMessage) (Title, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("title: empty value")
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, fmt.Errorf("title: invalid constant: %w", err)
		}
		return Constant(s), nil
	case '[':
		var v Versioned
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("title: unexpected value %.20s", trimmed)
	}
}
