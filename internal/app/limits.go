// Copyright © 2025 Ansisnap contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/app/limits.go
// Summary: Resource bounds for one run.

package app

// Limits bounds the resources one run may consume. They are run parameters,
// not compile-time ceilings; inputs exceeding them are truncated with a
// logged diagnostic, never rejected.
type Limits struct {
	// MaxLineLength bounds a single line in bytes; longer lines are cut at
	// the last whole rune that fits.
	MaxLineLength int
	// MaxLines bounds the line count; further input is dropped.
	MaxLines int
	// MaxSegments bounds segments emitted per line.
	MaxSegments int
	// MaxPathLength bounds cache file paths.
	MaxPathLength int
}

// DefaultLimits returns the standard bounds.
func DefaultLimits() Limits {
	return Limits{
		MaxLineLength: 4096,
		MaxLines:      10000,
		MaxSegments:   1000,
		MaxPathLength: 512,
	}
}
