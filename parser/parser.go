// Copyright © 2025 Ansisnap contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/parser.go
// Summary: SGR escape-sequence state machine for one line of terminal output.
//
// The parser interprets only the SGR family (colors and bold). Every other
// control sequence degrades to literal text or is consumed inert; parsing
// never fails on malformed input.

package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultMaxSegments caps the number of segments emitted per line. Once the
// cap is reached further emission is suppressed; suppressed text still
// advances the visible length.
const DefaultMaxSegments = 1000

// Parser turns raw lines into styled Line records. Style state lives only
// within a single line and is reset at each ParseLine call.
type Parser struct {
	// DefaultFG is the color token applied to text outside any escape
	// sequence, and restored by SGR reset.
	DefaultFG string
	// MaxSegments caps segments per line; zero means DefaultMaxSegments.
	MaxSegments int
}

// New returns a Parser with the given default text color.
func New(defaultFG string) *Parser {
	return &Parser{DefaultFG: defaultFG, MaxSegments: DefaultMaxSegments}
}

// ParseLine scans one tab-expanded line left to right and returns its styled
// segments. It never returns an error: unterminated or unrecognized escape
// bodies are consumed and discarded, and their bytes are not re-emitted.
func (p *Parser) ParseLine(line string) Line {
	maxSegments := p.MaxSegments
	if maxSegments <= 0 {
		maxSegments = DefaultMaxSegments
	}

	var out Line
	fg := p.DefaultFG
	bg := ""
	bold := false
	visiblePos := 0

	var text strings.Builder

	flush := func() {
		if text.Len() == 0 {
			return
		}
		run := text.String()
		if len(out.Segments) < maxSegments {
			out.Segments = append(out.Segments, Segment{
				Text: run,
				FG:   fg,
				BG:   bg,
				Bold: bold,
				Pos:  visiblePos,
			})
		}
		visiblePos += utf8.RuneCountInString(run)
		text.Reset()
	}

	for i := 0; i < len(line); {
		if line[i] == 0x1b && i+1 < len(line) && line[i+1] == '[' {
			flush()
			i += 2

			// Collect the escape body up to the terminating 'm'. If no
			// terminator appears before end of line the whole remainder
			// is consumed inert.
			end := strings.IndexByte(line[i:], 'm')
			if end < 0 {
				break
			}
			fg, bg, bold = p.applySGR(line[i:i+end], fg, bg, bold)
			i += end + 1
			continue
		}
		text.WriteByte(line[i])
		i++
	}
	flush()

	out.VisibleLength = visiblePos
	return out
}

// applySGR applies a semicolon-separated SGR parameter list to the current
// style and returns the updated style. An empty list is the reset code.
// Codes outside the understood set are ignored.
func (p *Parser) applySGR(body, fg, bg string, bold bool) (string, string, bool) {
	if body == "" {
		return p.DefaultFG, "", false
	}
	for _, tok := range strings.Split(body, ";") {
		if tok == "" {
			continue
		}
		code, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		switch {
		case code == 0:
			fg, bg, bold = p.DefaultFG, "", false
		case code == 1:
			bold = true
		case (code >= 30 && code <= 37) || (code >= 90 && code <= 97):
			if c, ok := PaletteColor(code); ok {
				fg = c
			}
		case code >= 40 && code <= 47:
			if c, ok := PaletteColor(code - 10); ok {
				bg = c
			}
		}
	}
	return fg, bg, bold
}

// ExpandTabs replaces every tab with tabSize spaces. Input lines are
// expanded before parsing so visible positions are plain codepoint counts.
func ExpandTabs(line string, tabSize int) string {
	if tabSize <= 0 || !strings.ContainsRune(line, '\t') {
		return line
	}
	return strings.ReplaceAll(line, "\t", strings.Repeat(" ", tabSize))
}
