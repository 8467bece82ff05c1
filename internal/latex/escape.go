// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package latex

import "strings"

// escaper maps each reserved character to its LaTeX form.
var escaper = strings.NewReplacer(
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// unescaper reverses escaper. Every replacement above is distinct, so the mapping is exact.
var unescaper = strings.NewReplacer(
	`\&`, `&`,
	`\%`, `%`,
	`\$`, `$`,
	`\#`, `#`,
	`\_`, `_`,
	`\{`, `{`,
	`\}`, `}`,
	`\textasciitilde{}`, `~`,
	`\textasciicircum{}`, `^`,
)

// Escape makes s safe to place in document text.
//
// Escape is not idempotent: apply it exactly once, when text enters the document
// from an untrusted source.
func Escape(s string) string {
	return escaper.Replace(s)
}

// unescape recovers the text Escape was given. It is used only to order rows by
// their source text.
func unescape(s string) string {
	return unescaper.Replace(s)
}
