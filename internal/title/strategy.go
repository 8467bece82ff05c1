// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"

	"github.com/taibuivan/gradetex/internal/record"
)

// Result is the outcome of one strategy lookup.
type Result struct {
	Title string

	// Found is false on a miss; Title is then meaningless.
	Found bool

	// Escaped marks a title that is already safe to place in a document.
	Escaped bool
}

// Strategy is one tier of the resolver chain.
//
// Lookup returns an error only for infrastructure failures. The resolver logs
// those and moves on to the next tier exactly as it would after a miss.
type Strategy interface {
	Name() string
	Lookup(context context.Context, identity record.CourseIdentity, session record.SessionKey) (Result, error)
}

// miss is the zero Result, spelled out where it reads better.
var miss = Result{}
