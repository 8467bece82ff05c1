// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package record

// DefaultTitle is printed at the top of the transcript when no title is given.
const DefaultTitle = "Grades Summary"

// Options is the closed set of layout toggles. Zero values mean "off".
type Options struct {
	// Title is the document heading.
	Title string `json:"title" yaml:"title"`

	// GroupBySession emits one table per session instead of one table for all sessions.
	GroupBySession bool `json:"groupBySession" yaml:"groupBySession"`

	BordersAroundTables bool `json:"bordersAroundTables" yaml:"bordersAroundTables"`
	BordersBetweenRows  bool `json:"bordersBetweenRows"  yaml:"bordersBetweenRows"`

	// DropWCourses removes withdrawn courses (standing starting with W).
	DropWCourses bool `json:"dropWCourses" yaml:"dropWCourses"`

	// DropCdfCourses removes courses whose standing starts with C, D, or F.
	DropCdfCourses bool `json:"dropCdfCourses" yaml:"dropCdfCourses"`

	// DropEmptyStdgCol removes the standing column when no remaining course has a standing.
	DropEmptyStdgCol bool `json:"dropEmptyStdgCol" yaml:"dropEmptyStdgCol"`
}

// DefaultOptions returns the options a fresh installation starts with.
func DefaultOptions() Options {
	return Options{Title: DefaultTitle}
}

// WithDefaults fills in the title when it was left blank.
func (o Options) WithDefaults() Options {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	return o
}
