// Copyright © 2025 Ansisnap contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/ansisnap/main.go
// Summary: CLI entry point: flag parsing, validation, and run dispatch.
// Usage: ansisnap [-i file] [-o file.svg] [options], or piped input on stdin.

package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/framegrace/ansisnap/config"
	"github.com/framegrace/ansisnap/internal/app"
)

const version = "1.0.0"

func main() {
	cfg := config.Default()

	flag.StringVar(&cfg.InputFile, "i", "", "Input file (default: stdin)")
	flag.StringVar(&cfg.InputFile, "input", "", "Input file (default: stdin)")
	flag.StringVar(&cfg.OutputFile, "o", "", "Output SVG file (default: stdout)")
	flag.StringVar(&cfg.OutputFile, "output", "", "Output SVG file (default: stdout)")
	flag.StringVar(&cfg.FontFamily, "font", config.DefaultFontFamily, "Font family")
	flag.IntVar(&cfg.FontSize, "font-size", config.DefaultFontSize, "Font size in pixels (8-72)")
	fontWidth := flag.Float64("font-width", 0, "Character cell width in pixels (default: derived from font)")
	fontHeight := flag.Float64("font-height", 0, "Line height in pixels (default: derived from font)")
	flag.IntVar(&cfg.FontWeight, "font-weight", config.DefaultFontWeight, "Font weight (100-900)")
	flag.IntVar(&cfg.Width, "width", config.DefaultWidth, "Grid width in characters")
	flag.IntVar(&cfg.Height, "height", 0, "Grid height in lines (default: input line count)")
	flag.BoolVar(&cfg.Wrap, "wrap", false, "Wrap long lines instead of clipping")
	flag.IntVar(&cfg.TabSize, "tab-size", config.DefaultTabSize, "Tab stop width (1-16)")
	flag.StringVar(&cfg.Exec, "exec", "", "Run a command under a pty and capture its output")
	flag.StringVar(&cfg.Lang, "lang", "", "Syntax-highlight input as this language (\"auto\" to detect)")
	flag.StringVar(&cfg.Theme, "theme", "", "Highlighting theme (default: monokai)")
	flag.BoolVar(&cfg.Debug, "debug", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ansisnap %s\n", version)
		return
	}

	// Invoked bare on a terminal there is nothing to read; show usage
	// instead of blocking on stdin.
	if flag.NFlag() == 0 && flag.NArg() == 0 && term.IsTerminal(int(os.Stdin.Fd())) {
		flag.Usage()
		return
	}

	if err := validate(cfg, *fontWidth, *fontHeight); err != nil {
		fmt.Fprintf(os.Stderr, "ansisnap: %v\n", err)
		os.Exit(2)
	}

	if *fontWidth > 0 {
		cfg.FontWidth = *fontWidth
		cfg.FontWidthSet = true
	}
	if *fontHeight > 0 {
		cfg.FontHeight = *fontHeight
		cfg.FontHeightSet = true
	}
	cfg.ApplyFontMetrics()

	if err := app.New(cfg, app.DefaultLimits()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ansisnap: %v\n", err)
		os.Exit(1)
	}
}

func validate(cfg *config.Config, fontWidth, fontHeight float64) error {
	if cfg.FontSize < 8 || cfg.FontSize > 72 {
		return fmt.Errorf("font size %d out of range (8-72)", cfg.FontSize)
	}
	if cfg.FontWeight < 100 || cfg.FontWeight > 900 {
		return fmt.Errorf("font weight %d out of range (100-900)", cfg.FontWeight)
	}
	if cfg.TabSize < 1 || cfg.TabSize > 16 {
		return fmt.Errorf("tab size %d out of range (1-16)", cfg.TabSize)
	}
	if cfg.Width < 1 {
		return fmt.Errorf("width must be at least 1, got %d", cfg.Width)
	}
	if cfg.Height < 0 {
		return fmt.Errorf("height must not be negative, got %d", cfg.Height)
	}
	if fontWidth != 0 && fontWidth < 1 {
		return fmt.Errorf("font width must be at least 1, got %g", fontWidth)
	}
	if fontHeight != 0 && fontHeight < 1 {
		return fmt.Errorf("font height must be at least 1, got %g", fontHeight)
	}
	if cfg.Exec != "" && cfg.InputFile != "" {
		return fmt.Errorf("-exec and -input are mutually exclusive")
	}
	return nil
}
