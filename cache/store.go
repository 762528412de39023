// Copyright © 2025 Ansisnap contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cache/store.go
// Summary: Content-addressed per-line segment cache, one JSON file per key.
//
// Every payload (aside from its timestamp) is a pure function of its key, so
// concurrent invocations racing on the same cache directory converge on
// byte-identical payloads; the store therefore takes no locks. Caching is
// best-effort throughout: a corrupt or unreadable record is a miss, and a
// failed write never surfaces to the caller.

package cache

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/framegrace/ansisnap/parser"
)

// DefaultMaxPathLength bounds cache file paths; keys that would exceed it
// are skipped rather than rejected.
const DefaultMaxPathLength = 512

// Key builds the per-line cache key from the config and line fingerprints.
func Key(lineHash, configHash string) string {
	return configHash + "_" + lineHash
}

// Store is the persistent segment cache. The zero value is unusable; create
// one with NewStore.
type Store struct {
	dir string

	// MaxPathLength bounds the full payload path; zero means
	// DefaultMaxPathLength.
	MaxPathLength int

	debug bool
}

// NewStore returns a Store rooted at dir. The directory is created lazily on
// the first Put.
func NewStore(dir string) *Store {
	return &Store{dir: dir, MaxPathLength: DefaultMaxPathLength}
}

// SetDebug enables per-key hit/miss logging.
func (s *Store) SetDebug(on bool) { s.debug = on }

// storedSegment is the durable five-field segment record. Empty color fields
// are significant and preserved exactly; on read, absent optional fields take
// their zero defaults (bold false, pos 0).
type storedSegment struct {
	Text string `json:"text"`
	FG   string `json:"fg"`
	BG   string `json:"bg"`
	Bold bool   `json:"bold"`
	Pos  int    `json:"pos"`
}

// storedLine is the on-disk payload for one cache key.
type storedLine struct {
	CacheKey      string `json:"cache_key"`
	VisibleLength int    `json:"visible_length"`
	// Segments holds structured records on write. Older cache directories
	// carry pipe-joined strings instead; both forms decode.
	Segments  []json.RawMessage `json:"segments"`
	Timestamp int64             `json:"timestamp"`
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *Store) maxPath() int {
	if s.MaxPathLength > 0 {
		return s.MaxPathLength
	}
	return DefaultMaxPathLength
}

// Get looks up the parsed line for (lineHash, configHash). Any failure --
// missing file, unreadable payload, malformed record -- is reported as a
// miss, never as an error.
func (s *Store) Get(lineHash, configHash string, stats *Stats) (parser.Line, bool) {
	key := Key(lineHash, configHash)
	path := s.path(key)
	if len(path) > s.maxPath() {
		if s.debug {
			log.Printf("Cache: path too long for key %s, treating as miss", key)
		}
		stats.SegmentMisses++
		return parser.Line{}, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		stats.SegmentMisses++
		return parser.Line{}, false
	}

	var stored storedLine
	if err := json.Unmarshal(data, &stored); err != nil {
		if s.debug {
			log.Printf("Cache: malformed payload for key %s: %v", key, err)
		}
		stats.SegmentMisses++
		return parser.Line{}, false
	}

	line := parser.Line{VisibleLength: stored.VisibleLength}
	for _, raw := range stored.Segments {
		seg, ok := decodeSegment(raw)
		if !ok {
			stats.SegmentMisses++
			return parser.Line{}, false
		}
		line.Segments = append(line.Segments, seg)
	}

	stats.SegmentHits++
	if s.debug {
		log.Printf("Cache: hit %s (%d segments)", key, len(line.Segments))
	}
	return line, true
}

// Put persists the parsed line under (lineHash, configHash). Failures are
// logged and swallowed: the computed result is still valid for the caller.
func (s *Store) Put(lineHash, configHash string, line parser.Line) {
	key := Key(lineHash, configHash)
	path := s.path(key)
	if len(path) > s.maxPath() {
		log.Printf("Cache: path too long for key %s, skipping save", key)
		return
	}

	stored := storedLine{
		CacheKey:      key,
		VisibleLength: line.VisibleLength,
		Segments:      make([]json.RawMessage, 0, len(line.Segments)),
		Timestamp:     time.Now().Unix(),
	}
	for _, seg := range line.Segments {
		raw, err := json.Marshal(storedSegment{
			Text: seg.Text,
			FG:   seg.FG,
			BG:   seg.BG,
			Bold: seg.Bold,
			Pos:  seg.Pos,
		})
		if err != nil {
			log.Printf("Cache: failed to encode segment for key %s: %v", key, err)
			return
		}
		stored.Segments = append(stored.Segments, raw)
	}

	payload, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		log.Printf("Cache: failed to encode payload for key %s: %v", key, err)
		return
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		log.Printf("Cache: cannot create cache dir %s: %v", s.dir, err)
		return
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		log.Printf("Cache: failed to write %s: %v", path, err)
	}
}

// decodeSegment accepts either the structured object form or the legacy
// pipe-joined string form.
func decodeSegment(raw json.RawMessage) (parser.Segment, bool) {
	var legacy string
	if err := json.Unmarshal(raw, &legacy); err == nil {
		return parseLegacySegment(legacy), true
	}
	var seg storedSegment
	if err := json.Unmarshal(raw, &seg); err != nil {
		return parser.Segment{}, false
	}
	return parser.Segment{Text: seg.Text, FG: seg.FG, BG: seg.BG, Bold: seg.Bold, Pos: seg.Pos}, true
}
