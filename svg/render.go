// Copyright © 2025 Ansisnap contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: svg/render.go
// Summary: SVG document assembly from parsed, styled lines.
//
// The renderer consumes the ordered line records plus the fingerprint-bearing
// configuration and produces the final markup. It alone decides whether to
// consult the fragment cache: each line's markup is resolved cache-first
// under a key of config hash, line number, and line hash, so an unchanged
// line never re-renders.

package svg

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/framegrace/ansisnap/cache"
	"github.com/framegrace/ansisnap/config"
	"github.com/framegrace/ansisnap/parser"
)

// autoWidthCap bounds grid auto-detection so a single runaway line cannot
// blow up the canvas.
const autoWidthCap = 100

// Renderer builds the SVG document for one run.
type Renderer struct {
	cfg *config.Config

	// Fragments is the optional rendered-fragment cache; nil disables it.
	Fragments *cache.FragmentStore
}

// NewRenderer returns a Renderer for cfg.
func NewRenderer(cfg *config.Config) *Renderer {
	return &Renderer{cfg: cfg}
}

// GridWidth decides the character grid width: an explicit --width wins, and
// the default width auto-grows to the longest line, capped.
func (r *Renderer) GridWidth(maxLineWidth int) int {
	if r.cfg.Width == config.DefaultWidth && maxLineWidth > config.DefaultWidth {
		if maxLineWidth > autoWidthCap {
			return autoWidthCap
		}
		return maxLineWidth
	}
	return r.cfg.Width
}

// FontCSS returns the stylesheet for the configured font, importing the
// Google Fonts stylesheet for known families.
func FontCSS(family string) string {
	if url, ok := config.GoogleFontURL(family); ok {
		return fmt.Sprintf("@import url('%s'); .terminal-text { font-family: '%s', 'Consolas', 'Monaco', 'Courier New', monospace; }",
			EscapeURL(url), family)
	}
	return fmt.Sprintf(".terminal-text { font-family: '%s', 'Consolas', 'Monaco', 'Courier New', monospace; }", family)
}

// LineFragment renders the markup for a single line at yOffset. Cell width
// positions segments by their codepoint column; glyph runs containing wide
// characters are stretched over their display cells via textLength.
func (r *Renderer) LineFragment(line parser.Line, yOffset, cellWidth float64) string {
	var sb strings.Builder
	for _, seg := range line.Segments {
		if seg.Text == "" {
			continue
		}
		x := float64(r.cfg.Padding) + float64(seg.Pos)*cellWidth

		if seg.BG != "" {
			bgWidth := float64(utf8.RuneCountInString(seg.Text)) * cellWidth
			fmt.Fprintf(&sb, "  <rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\"/>\n",
				x, yOffset-float64(r.cfg.FontSize), bgWidth, r.cfg.FontHeight, seg.BG)
		}

		textWidth := float64(runewidth.StringWidth(seg.Text)) * cellWidth
		weight := ""
		if seg.Bold {
			weight = ` font-weight="700"`
		}
		fmt.Fprintf(&sb, "  <text x=\"%.2f\" y=\"%.2f\" font-size=\"%d\"%s class=\"terminal-text\" xml:space=\"preserve\" textLength=\"%.2f\" lengthAdjust=\"spacingAndGlyphs\" fill=\"%s\">%s</text>\n",
			x, yOffset, r.cfg.FontSize, weight, textWidth, seg.FG, Escape(seg.Text))
	}
	return sb.String()
}

// lineFragmentCached resolves one line's markup through the fragment cache.
func (r *Renderer) lineFragmentCached(line parser.Line, lineNo int, lineHash, configHash string, yOffset, cellWidth float64, stats *cache.Stats) string {
	if r.Fragments == nil {
		return r.LineFragment(line, yOffset, cellWidth)
	}
	key := cache.FragmentKey(configHash, lineNo, lineHash)
	if payload, ok := r.Fragments.Get(key, stats); ok {
		return string(payload)
	}
	frag := r.LineFragment(line, yOffset, cellWidth)
	r.Fragments.Put(key, []byte(frag))
	return frag
}

// Render writes the complete SVG document for lines to w. lineHashes holds
// the per-line content hashes aligned with lines; configHash is the run's
// configuration fingerprint.
func (r *Renderer) Render(w io.Writer, lines []parser.Line, lineHashes []string, configHash string, stats *cache.Stats) error {
	maxWidth := 0
	for _, line := range lines {
		if line.VisibleLength > maxWidth {
			maxWidth = line.VisibleLength
		}
	}

	gridWidth := r.GridWidth(maxWidth)
	height := r.cfg.Height
	if height == 0 {
		height = len(lines)
	}

	svgWidth := float64(2*r.cfg.Padding) + float64(gridWidth)*r.cfg.FontWidth
	svgHeight := float64(2*r.cfg.Padding) + float64(height)*r.cfg.FontHeight
	cellWidth := (svgWidth - float64(2*r.cfg.Padding)) / float64(gridWidth)

	if _, err := fmt.Fprintf(w,
		"<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"+
			"<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%.2f\" height=\"%.2f\" viewBox=\"0 0 %.2f %.2f\">\n"+
			"  <defs><style>%s</style></defs>\n"+
			"  <rect width=\"100%%\" height=\"100%%\" fill=\"%s\" rx=\"6\"/>\n",
		svgWidth, svgHeight, svgWidth, svgHeight, FontCSS(r.cfg.FontFamily), r.cfg.BGColor); err != nil {
		return err
	}

	for i, line := range lines {
		if i >= height {
			break
		}
		yOffset := float64(r.cfg.Padding) + float64(r.cfg.FontSize) + float64(i)*r.cfg.FontHeight

		var frag string
		if i < len(lineHashes) {
			frag = r.lineFragmentCached(line, i, lineHashes[i], configHash, yOffset, cellWidth, stats)
		} else {
			frag = r.LineFragment(line, yOffset, cellWidth)
		}
		if _, err := io.WriteString(w, frag); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</svg>\n")
	return err
}
