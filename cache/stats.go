// Copyright © 2025 Ansisnap contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cache/stats.go
// Summary: Hit/miss accumulator threaded explicitly through a run.

package cache

// Stats counts cache outcomes for one run. It is owned by the caller and
// passed down the call chain rather than living in package state, so a run
// (or a future parallel parse) has a single writer by construction.
type Stats struct {
	SegmentHits    int `json:"segment_hits"`
	SegmentMisses  int `json:"segment_misses"`
	FragmentHits   int `json:"svg_hits"`
	FragmentMisses int `json:"svg_misses"`

	// Input truncation diagnostics; not part of the persisted payload.
	TruncatedLines int `json:"-"`
	DroppedLines   int `json:"-"`
}
