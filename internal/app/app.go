// Copyright © 2025 Ansisnap contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/app/app.go
// Summary: Run orchestration: input, hashing, caches, parsing, rendering.
//
// One Run is one process invocation. All mutable state (stats, line tables,
// hash tables) is owned by the Run and passed explicitly; nothing lives in
// package globals, so per-line parsing could be parallelized later with the
// Run as the single synchronization point.

package app

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/framegrace/ansisnap/cache"
	"github.com/framegrace/ansisnap/checksum"
	"github.com/framegrace/ansisnap/config"
	"github.com/framegrace/ansisnap/highlight"
	"github.com/framegrace/ansisnap/parser"
	"github.com/framegrace/ansisnap/svg"
)

// Run carries the state of one invocation.
type Run struct {
	cfg    *config.Config
	limits Limits
	start  time.Time
	stats  cache.Stats

	// CacheDir overrides the user cache directory; empty means the
	// platform default.
	CacheDir string
}

// New returns a Run for cfg.
func New(cfg *config.Config, limits Limits) *Run {
	return &Run{cfg: cfg, limits: limits, start: time.Now()}
}

// progress writes an elapsed-time-stamped status line to stderr.
func (r *Run) progress(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%07.3f - %s\n", time.Since(r.start).Seconds(), fmt.Sprintf(format, args...))
}

// debugf is progress gated by --debug.
func (r *Run) debugf(format string, args ...any) {
	if r.cfg.Debug {
		r.progress(format, args...)
	}
}

// cachePaths resolves the cache layout: per-line JSON payloads in the root,
// the fragment database and incremental state beside them.
func (r *Run) cachePaths() (dir, fragmentDB, incremental string, err error) {
	dir = r.CacheDir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return "", "", "", fmt.Errorf("resolve user cache dir: %w", err)
		}
		dir = filepath.Join(base, "ansisnap")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", "", fmt.Errorf("create cache dir %s: %w", dir, err)
	}
	return dir, filepath.Join(dir, "fragments.db"), filepath.Join(dir, "incremental.json"), nil
}

// readInput produces the run's raw input bytes from, in order of precedence,
// a captured command, the input file, or stdin.
func (r *Run) readInput() ([]byte, string, error) {
	if r.cfg.Exec != "" {
		r.progress("Capturing output of %q under a pty", r.cfg.Exec)
		data, err := captureCommand(r.cfg.Exec, 50)
		return data, "exec:" + r.cfg.Exec, err
	}
	if r.cfg.InputFile != "" {
		data, err := os.ReadFile(r.cfg.InputFile)
		if err != nil {
			return nil, "", fmt.Errorf("input file %s: %w", r.cfg.InputFile, err)
		}
		return data, r.cfg.InputFile, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, "", fmt.Errorf("read stdin: %w", err)
	}
	return data, "stdin", nil
}

// Execute performs the whole run: read, hash, parse through the caches,
// render, and record the incremental state.
func (r *Run) Execute() error {
	inputName, outputName := r.cfg.InputFile, r.cfg.OutputFile
	if inputName == "" {
		inputName = "stdin"
	}
	if outputName == "" {
		outputName = "stdout"
	}
	r.progress("Parsed options:")
	r.progress("  Input: %s", inputName)
	r.progress("  Output: %s", outputName)
	r.progress("  Font: %s %dpx (width: %.2f, line height: %.2f, weight: %d)",
		r.cfg.FontFamily, r.cfg.FontSize, r.cfg.FontWidth, r.cfg.FontHeight, r.cfg.FontWeight)
	r.progress("  Grid: %dx%d", r.cfg.Width, r.cfg.Height)
	r.progress("  Wrap: %t", r.cfg.Wrap)
	r.progress("  Tab size: %d", r.cfg.TabSize)

	r.progress("Reading source input")
	raw, sourceName, err := r.readInput()
	if err != nil {
		return err
	}

	if r.cfg.Lang != "" {
		r.progress("Highlighting input (lang: %s)", r.cfg.Lang)
		colored, err := highlight.Colorize(string(raw), r.cfg.InputFile, r.cfg.Lang, r.cfg.Theme)
		if err != nil {
			r.progress("Highlighting failed, rendering input as-is: %v", err)
		} else {
			raw = []byte(colored)
		}
	}

	lines, err := readLines(bytes.NewReader(raw), r.cfg.TabSize, r.limits, &r.stats)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	r.progress("Read %d lines from %s", len(lines), sourceName)
	if r.stats.TruncatedLines > 0 {
		r.progress("Warning: truncated %d over-long lines (limit %d bytes)", r.stats.TruncatedLines, r.limits.MaxLineLength)
	}
	if r.stats.DroppedLines > 0 {
		r.progress("Warning: dropped %d lines beyond the %d-line limit", r.stats.DroppedLines, r.limits.MaxLines)
	}
	if len(lines) == 0 {
		return fmt.Errorf("no input provided")
	}

	if r.cfg.Height == 0 {
		r.cfg.Height = len(lines)
	}

	r.progress("Hashing %d lines", len(lines))
	hashStart := time.Now()
	lineHashes := make([]string, len(lines))
	for i, line := range lines {
		lineHashes[i] = checksum.Format(checksum.CksumString(line))
	}
	hashElapsed := time.Since(hashStart).Seconds()
	r.progress("Hash time: %.3fs, Time per line: %.6fs", hashElapsed, hashElapsed/float64(len(lines)))

	configHash := r.cfg.Fingerprint()
	r.debugf("Config hash: %s", configHash)

	cacheDir, fragmentDB, incrementalPath, err := r.cachePaths()
	if err != nil {
		return err
	}

	store := cache.NewStore(cacheDir)
	store.MaxPathLength = r.limits.MaxPathLength
	store.SetDebug(r.cfg.Debug)

	fragments, err := cache.OpenFragmentStore(fragmentDB)
	if err != nil {
		// Fragment caching is an optimization; the run proceeds without it.
		r.progress("Fragment cache unavailable: %v", err)
		fragments = nil
	} else {
		fragments.SetDebug(r.cfg.Debug)
		defer fragments.Close()
	}

	incremental := cache.NewIncremental(incrementalPath)
	globalHash := cache.GlobalFingerprint(lineHashes)
	previous := incremental.Load()
	switch {
	case previous == nil:
		r.progress("First run - processing all %d lines", len(lines))
	case previous.GlobalInputHash != globalHash:
		r.progress("Input changed since previous run - processing all %d lines", len(lines))
	case previous.ConfigHash != configHash:
		r.progress("Configuration changed since previous run - re-rendering %d lines", len(lines))
	default:
		r.progress("Input unchanged since previous run - serving from cache")
	}

	p := parser.New(r.cfg.TextColor)
	p.MaxSegments = r.limits.MaxSegments

	parsed := make([]parser.Line, len(lines))
	maxWidth, maxWidthLine := 0, 0
	for i, line := range lines {
		if cached, ok := store.Get(lineHashes[i], configHash, &r.stats); ok {
			parsed[i] = cached
		} else {
			parsed[i] = p.ParseLine(line)
			store.Put(lineHashes[i], configHash, parsed[i])
		}
		if parsed[i].VisibleLength > maxWidth {
			maxWidth = parsed[i].VisibleLength
			maxWidthLine = i
		}
	}
	r.progress("Content analysis: longest line is %d characters (line %d)", maxWidth, maxWidthLine+1)

	renderer := svg.NewRenderer(r.cfg)
	renderer.Fragments = fragments

	out := os.Stdout
	if r.cfg.OutputFile != "" {
		f, err := os.Create(r.cfg.OutputFile)
		if err != nil {
			return fmt.Errorf("create output file %s: %w", r.cfg.OutputFile, err)
		}
		defer f.Close()
		out = f
	}

	if err := renderer.Render(out, parsed, lineHashes, configHash, &r.stats); err != nil {
		return fmt.Errorf("render SVG: %w", err)
	}
	if r.cfg.OutputFile != "" {
		r.progress("SVG written to: %s", r.cfg.OutputFile)
	}

	r.progress("Cache statistics: Segments %d/%d hits, SVG fragments %d/%d hits",
		r.stats.SegmentHits, r.stats.SegmentHits+r.stats.SegmentMisses,
		r.stats.FragmentHits, r.stats.FragmentHits+r.stats.FragmentMisses)

	if err := incremental.Save(globalHash, configHash, lineHashes, r.stats); err != nil {
		// Losing the incremental record only costs the next run a rebuild.
		r.progress("Failed to save incremental cache: %v", err)
	}
	return nil
}
