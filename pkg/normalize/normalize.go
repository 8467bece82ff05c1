// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package normalize cleans strings scraped from rendered HTML.
//
// # Usage
//
// Grade reports separate subject and code with a non-breaking space
// ("MATH&nbsp;200") and pad cells with assorted Unicode whitespace. These
// helpers fold such text into plain, single-spaced strings.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Text applies NFKC compatibility folding (which maps U+00A0 to a plain space),
// collapses whitespace runs to one space, and trims both ends.
func Text(s string) string {
	folded := norm.NFKC.String(s)
	return strings.Join(strings.FieldsFunc(folded, unicode.IsSpace), " ")
}

// CamelCase converts a label such as "Year Level" into "yearLevel".
func CamelCase(label string) string {
	words := strings.Fields(Text(label))

	var builder strings.Builder
	for i, word := range words {
		lower := strings.ToLower(word)
		if i == 0 {
			builder.WriteString(lower)
			continue
		}
		runes := []rune(lower)
		runes[0] = unicode.ToUpper(runes[0])
		builder.WriteString(string(runes))
	}
	return builder.String()
}
