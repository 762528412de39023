// Copyright © 2025 Ansisnap contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: svg/escape.go
// Summary: XML escaping helpers for SVG text and URLs.

package svg

import "strings"

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Escape escapes s for use as XML character data or attribute content.
func Escape(s string) string {
	return textEscaper.Replace(s)
}

// EscapeURL escapes s for embedding in a CSS url() inside an XML document.
// Only ampersands need rewriting there.
func EscapeURL(s string) string {
	return strings.ReplaceAll(s, "&", "&amp;")
}
