// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package record

import "strings"

// Campus identifies one of the two university locations; each has its own course catalogue.
type Campus int

const (
	CampusUnknown Campus = iota
	CampusVancouver
	CampusOkanagan
)

// ParseCampus accepts the display name, the institution abbreviation, or the single letter.
// Anything else is [CampusUnknown].
func ParseCampus(s string) Campus {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "VANCOUVER", "UBCV", "V":
		return CampusVancouver
	case "OKANAGAN", "UBCO", "O":
		return CampusOkanagan
	default:
		return CampusUnknown
	}
}

// Abbreviation returns the institution code used in cache keys and remote API paths.
// It is empty for [CampusUnknown].
func (c Campus) Abbreviation() string {
	switch c {
	case CampusVancouver:
		return "UBCV"
	case CampusOkanagan:
		return "UBCO"
	default:
		return ""
	}
}

// String returns the display name printed in table headings.
func (c Campus) String() string {
	switch c {
	case CampusVancouver:
		return "Vancouver"
	case CampusOkanagan:
		return "Okanagan"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the campus by display name.
func (c Campus) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes any form accepted by [ParseCampus].
func (c *Campus) UnmarshalText(text []byte) error {
	*c = ParseCampus(string(text))
	return nil
}
