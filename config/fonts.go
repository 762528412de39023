// Copyright © 2025 Ansisnap contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/fonts.go
// Summary: Monospace font metric ratios and Google Fonts lookup.

package config

// fontRatios maps font families to their character width as a percentage of
// the font size. Unknown families fall back to 60.
var fontRatios = map[string]int{
	"Consolas":        60,
	"Monaco":          60,
	"Courier New":     60,
	"Inconsolata":     60,
	"JetBrains Mono":  55,
	"Source Code Pro": 55,
	"Fira Code":       58,
	"Roboto Mono":     60,
	"Ubuntu Mono":     50,
	"Menlo":           60,
}

// googleFonts maps families to their Google Fonts stylesheet URL for
// embedding in the output document. System fonts are absent.
var googleFonts = map[string]string{
	"Inconsolata":     "https://fonts.googleapis.com/css2?family=Inconsolata:wght@400;700&display=swap",
	"JetBrains Mono":  "https://fonts.googleapis.com/css2?family=JetBrains+Mono:wght@400;700&display=swap",
	"Source Code Pro": "https://fonts.googleapis.com/css2?family=Source+Code+Pro:wght@400;700&display=swap",
	"Fira Code":       "https://fonts.googleapis.com/css2?family=Fira+Code:wght@400;700&display=swap",
	"Roboto Mono":     "https://fonts.googleapis.com/css2?family=Roboto+Mono:wght@400;700&display=swap",
}

// FontRatio returns the width ratio (percentage of font size) for family.
func FontRatio(family string) int {
	if r, ok := fontRatios[family]; ok {
		return r
	}
	return 60
}

// GoogleFontURL returns the stylesheet URL for family, if it is a known
// Google Font.
func GoogleFontURL(family string) (string, bool) {
	url, ok := googleFonts[family]
	return url, ok
}
