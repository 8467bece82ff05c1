// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package record

import (
	"fmt"
	"strconv"
)

// SeasonSummer is the season code of summer sessions. Every other code is a winter session.
const SeasonSummer = "S"

// SessionKey identifies an academic session, e.g. "2020W" or "2014S".
//
// Keys compare lexically and that order is chronological: the year leads and
// within a year "S" (summer) sorts before "W" (winter).
type SessionKey string

// Year returns everything before the trailing season code.
func (k SessionKey) Year() string {
	if len(k) == 0 {
		return ""
	}
	return string(k[:len(k)-1])
}

// Season returns the trailing season code.
func (k SessionKey) Season() string {
	if len(k) == 0 {
		return ""
	}
	return string(k[len(k)-1:])
}

// DisplayName renders "Summer Session 2019" or "Winter Session 2020 - 2021".
func (k SessionKey) DisplayName() string {
	year := k.Year()
	if k.Season() == SeasonSummer {
		return fmt.Sprintf("Summer Session %s", year)
	}

	start, err := strconv.Atoi(year)
	if err != nil {
		return fmt.Sprintf("Winter Session %s", year)
	}
	return fmt.Sprintf("Winter Session %d - %d", start, start+1)
}

// AtLeast reports whether k is the same session as other or a later one.
func (k SessionKey) AtLeast(other SessionKey) bool {
	return k >= other
}
