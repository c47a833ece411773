// Copyright (c) 2026 Palmares. All rights reserved.

// Package titlenorm normalizes film titles into stable comparison keys.
//
// # Usage
//
// Extraction deduplicates entries on (normalized title, year), and the
// reconciliation engine matches extracted titles against stored
// default-language titles. Both need a key that is insensitive to case,
// diacritics, surrounding whitespace, and trailing footnote markers, while
// preserving the words themselves.
package titlenorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Key converts a raw extracted title into its canonical comparison key.
//
// # Transformation Pipeline
//
// 1. Strips footnote/winner markers (*, †, ‡) and bracketed references.
// 2. Normalizes to NFD and removes combining marks (é → e).
// 3. Lowercases and collapses internal whitespace runs to single spaces.
func Key(title string) string {
	s := StripMarkers(title)

	// Decompose accented characters and drop the combining marks
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	s, _, _ = transform.String(t, s)

	s = strings.ToLower(s)

	// Collapse all whitespace runs
	return strings.Join(strings.Fields(s), " ")
}

// StripMarkers removes footnote daggers, winner asterisks, and bracketed
// reference tags (e.g. "[1]", "[a]") from a title, trimming the result.
func StripMarkers(title string) string {
	var b strings.Builder
	depth := 0
	for _, r := range title {
		switch {
		case r == '[':
			depth++
		case r == ']':
			if depth > 0 {
				depth--
			}
		case depth > 0:
			// inside a bracketed reference
		case r == '*' || r == '†' || r == '‡':
			// footnote / winner markers
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// Equal reports whether two titles normalize to the same comparison key.
func Equal(a, b string) bool {
	return Key(a) == Key(b)
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
