// Copyright © 2025 Ansisnap contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: highlight/highlight.go
// Summary: Chroma-based pre-colorizer emitting SGR escape sequences.
//
// Plain input can be syntax-highlighted before parsing: the colorizer
// tokenizes the whole input as one block (so the lexer sees full context)
// and re-emits it with 16-color SGR codes, which is exactly the escape
// family the line parser interprets.

package highlight

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/go-enry/go-enry/v2"
)

const defaultStyleName = "monokai"

// Colorize highlights text and returns it with SGR color escapes, one output
// line per input line. lang selects the lexer; "auto" (or empty) detects the
// language from the filename and content. styleName selects the Chroma
// style, falling back to the default when unknown.
func Colorize(text, filename, lang, styleName string) (string, error) {
	lexer := pickLexer(lang, filename, text)
	lexer = chroma.Coalesce(lexer)

	name := styleName
	if name == "" {
		name = defaultStyleName
	}
	// styles.Get falls back to a usable default for unknown names.
	style := styles.Get(name)

	formatter := formatters.Get("terminal16")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		return "", fmt.Errorf("tokenize input: %w", err)
	}

	var sb strings.Builder
	if err := formatter.Format(&sb, style, it); err != nil {
		return "", fmt.Errorf("format tokens: %w", err)
	}
	return sb.String(), nil
}

// DetectLanguage names the language of content, or "" when detection finds
// nothing usable.
func DetectLanguage(filename, content string) string {
	if lang := enry.GetLanguage(filename, []byte(content)); lang != "" && lang != enry.OtherLanguage {
		return lang
	}
	if l := lexers.Analyse(content); l != nil {
		return l.Config().Name
	}
	return ""
}

// pickLexer resolves a lexer by explicit name, then by detection, then the
// plaintext fallback.
func pickLexer(lang, filename, text string) chroma.Lexer {
	if lang != "" && lang != "auto" {
		if l := lexers.Get(lang); l != nil {
			return l
		}
	}
	if detected := DetectLanguage(filename, text); detected != "" {
		if l := lexers.Get(detected); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	return lexers.Fallback
}
