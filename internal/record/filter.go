// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package record

import (
	"strings"

	"github.com/taibuivan/gradetex/pkg/slice"
)

// Standing codes are matched on their first character.
const (
	standingWithdrawn = 'W'
	failingStandings  = "CDF"
)

// Filter applies the DropWCourses and DropCdfCourses policies and reports whether
// the standing column is empty over exactly the courses that remain.
//
// The input is not modified; each returned session carries a fresh course slice.
func Filter(sessions []Session, options Options) (filtered []Session, standingEmpty bool) {
	filtered = make([]Session, len(sessions))
	standingEmpty = true

	for i, session := range sessions {
		session.Courses = slice.Filter(session.Courses, func(course Course) bool {
			return keep(course, options)
		})
		if session.Courses == nil {
			session.Courses = []Course{}
		}

		for _, course := range session.Courses {
			if strings.TrimSpace(course.Standing) != "" {
				standingEmpty = false
			}
		}
		filtered[i] = session
	}

	return filtered, standingEmpty
}

// keep reports whether course survives the drop policies.
func keep(course Course, options Options) bool {
	standing := strings.TrimSpace(course.Standing)
	if standing == "" {
		return true
	}

	first := standing[0]
	if options.DropWCourses && first == standingWithdrawn {
		return false
	}
	if options.DropCdfCourses && strings.IndexByte(failingStandings, first) >= 0 {
		return false
	}
	return true
}
