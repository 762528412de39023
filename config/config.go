// Copyright © 2025 Ansisnap contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Rendering configuration record and defaults.

package config

// Fixed rendering defaults.
const (
	DefaultFontFamily = "Consolas"
	DefaultFontSize   = 14
	DefaultFontWeight = 400
	DefaultWidth      = 80
	DefaultTabSize    = 8
	DefaultPadding    = 20
	BGColor           = "#1e1e1e"
	TextColor         = "#ffffff"
)

// Config holds the fully resolved rendering parameters for one run.
// The CLI layer owns validation; by the time a Config reaches the core it is
// assumed consistent.
type Config struct {
	InputFile  string
	OutputFile string

	FontFamily string
	FontSize   int
	FontWidth  float64
	FontHeight float64
	FontWeight int

	// Width and Height are the character grid dimensions. Height zero means
	// "use the input line count".
	Width  int
	Height int

	Wrap    bool
	TabSize int

	BGColor   string
	TextColor string
	Padding   int

	// FontWidthSet / FontHeightSet record whether the metrics were given
	// explicitly; unset metrics are derived from the font family ratio.
	FontWidthSet  bool
	FontHeightSet bool

	// Exec, when non-empty, is a command to run under a pseudo-terminal,
	// capturing its output as the input stream.
	Exec string

	// Lang enables the syntax-highlighting pre-pass; "auto" detects the
	// language from content. Theme selects the Chroma style.
	Lang  string
	Theme string

	Debug bool
}

// Default returns a Config with the standard defaults applied.
func Default() *Config {
	return &Config{
		FontFamily: DefaultFontFamily,
		FontSize:   DefaultFontSize,
		FontWeight: DefaultFontWeight,
		Width:      DefaultWidth,
		TabSize:    DefaultTabSize,
		BGColor:    BGColor,
		TextColor:  TextColor,
		Padding:    DefaultPadding,
	}
}

// ApplyFontMetrics fills in font width and height from the family's width
// ratio unless they were given explicitly.
func (c *Config) ApplyFontMetrics() {
	if !c.FontWidthSet {
		c.FontWidth = float64(c.FontSize) * float64(FontRatio(c.FontFamily)) / 100.0
	}
	if !c.FontHeightSet {
		c.FontHeight = float64(c.FontSize) * 1.2
	}
}
