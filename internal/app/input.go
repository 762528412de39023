// Copyright © 2025 Ansisnap contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/app/input.go
// Summary: Input line reading with limit enforcement and tab expansion.

package app

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/framegrace/ansisnap/cache"
	"github.com/framegrace/ansisnap/parser"
)

// readLines consumes r into tab-expanded lines, enforcing limits. Over-limit
// input is truncated, never rejected; truncation counts land in stats so the
// caller can surface them. Lines of any raw length are accepted, so a single
// pathological line cannot abort the run.
func readLines(r io.Reader, tabSize int, limits Limits, stats *cache.Stats) ([]string, error) {
	br := bufio.NewReaderSize(r, 64*1024)

	var lines []string
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if line == "" && err == io.EOF {
			break
		}

		if len(lines) >= limits.MaxLines {
			stats.DroppedLines++
		} else {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			if len(line) > limits.MaxLineLength {
				line = truncateAtRune(line, limits.MaxLineLength)
				stats.TruncatedLines++
			}
			lines = append(lines, parser.ExpandTabs(line, tabSize))
		}

		if err == io.EOF {
			break
		}
	}
	return lines, nil
}

// truncateAtRune cuts s to at most max bytes without splitting a codepoint.
func truncateAtRune(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
