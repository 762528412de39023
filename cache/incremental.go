// Copyright © 2025 Ansisnap contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cache/incremental.go
// Summary: Whole-input incremental cache: global fingerprint plus run stats.
//
// The incremental file records enough of the previous run to tell whether
// the current input is byte-identical (same lines, same order). Saves go
// through a temp file and rename so a crash mid-write cannot corrupt the
// previous valid state.

package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/framegrace/ansisnap/checksum"
)

// IncrementalState is the persisted record of one run.
type IncrementalState struct {
	GlobalInputHash string   `json:"global_input_hash"`
	ConfigHash      string   `json:"config_hash"`
	LineCount       int      `json:"line_count"`
	LineHashes      []string `json:"line_hashes"`
	Timestamp       int64    `json:"timestamp"`
	Stats           Stats    `json:"cache_stats"`
}

// Incremental reads and writes the incremental cache file.
type Incremental struct {
	path string
}

// NewIncremental returns an Incremental backed by path.
func NewIncremental(path string) *Incremental {
	return &Incremental{path: path}
}

// GlobalFingerprint hashes the ordered concatenation of the per-line hashes.
// It is unchanged across runs with byte-identical input in the same order,
// and changes when any line changes or two distinct lines are reordered.
func GlobalFingerprint(lineHashes []string) string {
	joined := strings.Join(lineHashes, "")
	return checksum.Format(checksum.CksumString(joined))
}

// Load returns the previous run's state, or nil if there is none or it is
// unreadable. A missing or corrupt file is not an error; it simply means no
// prior run can be reused.
func (inc *Incremental) Load() *IncrementalState {
	data, err := os.ReadFile(inc.path)
	if err != nil {
		return nil
	}
	var state IncrementalState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil
	}
	return &state
}

// Save persists the current run's state atomically.
func (inc *Incremental) Save(globalHash, configHash string, lineHashes []string, stats Stats) error {
	state := IncrementalState{
		GlobalInputHash: globalHash,
		ConfigHash:      configHash,
		LineCount:       len(lineHashes),
		LineHashes:      lineHashes,
		Timestamp:       time.Now().Unix(),
		Stats:           stats,
	}
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode incremental state: %w", err)
	}

	tmpPath := inc.path + ".tmp"
	if err := os.WriteFile(tmpPath, payload, 0o644); err != nil {
		return fmt.Errorf("write temp incremental file: %w", err)
	}
	if err := os.Rename(tmpPath, inc.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename incremental file: %w", err)
	}
	return nil
}
