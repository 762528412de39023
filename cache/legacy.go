// Copyright © 2025 Ansisnap contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cache/legacy.go
// Summary: Decoder for the original pipe-joined segment payload form.

package cache

import (
	"strconv"
	"strings"

	"github.com/framegrace/ansisnap/parser"
)

// parseLegacySegment decodes "text|fg|bg|bold|pos". The split is on a fixed
// field count: empty fields are significant (an empty bg is a real value),
// so a tokenizer that collapses empty tokens would corrupt the record.
// Missing trailing fields default: bold to false, pos to 0.
func parseLegacySegment(s string) parser.Segment {
	parts := strings.SplitN(s, "|", 5)
	var seg parser.Segment
	if len(parts) > 0 {
		seg.Text = parts[0]
	}
	if len(parts) > 1 {
		seg.FG = parts[1]
	}
	if len(parts) > 2 {
		seg.BG = parts[2]
	}
	if len(parts) > 3 {
		seg.Bold = parts[3] == "true"
	}
	if len(parts) > 4 {
		if pos, err := strconv.Atoi(parts[4]); err == nil {
			seg.Pos = pos
		}
	}
	return seg
}
