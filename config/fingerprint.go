// Copyright © 2025 Ansisnap contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/fingerprint.go
// Summary: Canonical serialization of the rendering parameters into a
// deterministic fingerprint for cache keying.

package config

import (
	"fmt"

	"github.com/framegrace/ansisnap/checksum"
)

// canonical returns the fully ordered, pipe-joined serialization of every
// parameter that affects rendering. Field order and formatting are fixed:
// floats at two decimals, booleans as "true"/"false". Equal configurations
// always serialize identically.
func (c *Config) canonical() string {
	wrap := "false"
	if c.Wrap {
		wrap = "true"
	}
	return fmt.Sprintf("%s|%d|%.2f|%.2f|%d|%d|%d|%s|%d|%s|%s|%d",
		c.FontFamily, c.FontSize, c.FontWidth, c.FontHeight,
		c.FontWeight, c.Width, c.Height, wrap, c.TabSize,
		c.BGColor, c.TextColor, c.Padding)
}

// Fingerprint returns the configuration hash as a decimal uint32 string.
// Two configurations with identical parameter values always yield the same
// fingerprint.
func (c *Config) Fingerprint() string {
	return checksum.Format(checksum.CksumString(c.canonical()))
}
