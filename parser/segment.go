// Copyright © 2025 Ansisnap contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/segment.go
// Summary: Styled segment and line records produced by the SGR parser.
// Notes: Keeps parsing concerns isolated from rendering.

package parser

// Segment is a contiguous run of codepoints sharing one style. Immutable
// once produced.
type Segment struct {
	// Text holds the literal bytes of the run.
	Text string
	// FG is the foreground color token (a palette hex value, or the
	// configured default text color).
	FG string
	// BG is the background color token; empty means no background.
	BG string
	// Bold reports whether SGR bold is active for the run.
	Bold bool
	// Pos is the zero-based visible column of the run's first character,
	// counted in decoded codepoints, not bytes.
	Pos int
}

// Line is the parse result for one input line: its segments in left-to-right
// order plus the total visible codepoint count.
//
// Invariants: segment positions are non-decreasing, segments never overlap,
// and no segment extends past VisibleLength. When the per-line segment cap
// suppresses emission, VisibleLength still counts the suppressed text, so it
// always equals the line's full visible width.
type Line struct {
	Segments      []Segment
	VisibleLength int
}

// ansiColors maps SGR foreground codes 30-37 and 90-97 to the fixed
// 16-entry palette (8 standard + 8 bright). Background codes 40-47 reuse
// the entry for code-10.
var ansiColors = map[int]string{
	30: "#000000", // Black
	31: "#cd3131", // Red
	32: "#0dbc79", // Green
	33: "#e5e510", // Yellow
	34: "#2472c8", // Blue
	35: "#bc3fbc", // Magenta
	36: "#11a8cd", // Cyan
	37: "#e5e5e5", // White
	90: "#666666", // Bright Black (Gray)
	91: "#f14c4c", // Bright Red
	92: "#23d18b", // Bright Green
	93: "#f5f543", // Bright Yellow
	94: "#3b8eea", // Bright Blue
	95: "#d670d6", // Bright Magenta
	96: "#29b8db", // Bright Cyan
	97: "#e5e5e5", // Bright White
}

// PaletteColor returns the palette entry for an SGR foreground code, and
// whether the code has one.
func PaletteColor(code int) (string, bool) {
	c, ok := ansiColors[code]
	return c, ok
}
