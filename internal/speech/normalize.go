// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package speech normalizes utterances and token lists coming from the
// ASR channel. The channel occasionally emits Latin code points for
// visually identical Cyrillic letters, stray punctuation, and tokens
// containing embedded spaces; everything downstream expects the cleaned
// form produced here.
package speech

import (
	"strings"
	"unicode"
)

// Latin letters that ASR confuses with their Cyrillic look-alikes.
var homoglyphs = map[rune]rune{
	'a': 'а',
	'e': 'е',
	'o': 'о',
	'p': 'р',
	'c': 'с',
	'x': 'х',
	'y': 'у',
}

func mapRune(r rune) rune {
	if r == 'ё' {
		return 'е'
	}
	if c, ok := homoglyphs[r]; ok {
		return c
	}
	return r
}

func isCyrillic(r rune) bool {
	return r >= 'а' && r <= 'я'
}

// NormalizeText canonicalizes a raw utterance: lowercase, ё→е, Latin
// homoglyph replacement, everything outside the alphabet and digits
// reduced to spaces, whitespace collapsed. The separators , / - are kept
// because the pressure extractor canonicalizes them itself; replacing
// them with spaces here would merge adjacent digit runs.
// NormalizeText is idempotent.
func NormalizeText(s string) string {
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		r = mapRune(r)
		switch {
		case isCyrillic(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ',' || r == '/' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// NormalizeTokens canonicalizes an NLU token list. Besides the rules of
// NormalizeText, tokens containing embedded spaces are split into
// separate tokens, edge punctuation is stripped, and empty results are
// dropped. Hyphens inside a token survive so that tokens already in
// word-number shape keep their shape.
func NormalizeTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		for _, part := range strings.Fields(strings.ToLower(tok)) {
			if t := normalizeToken(part); t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}

func normalizeToken(tok string) string {
	var b strings.Builder
	b.Grow(len(tok))
	for _, r := range tok {
		r = mapRune(r)
		if isCyrillic(r) || unicode.IsDigit(r) || r == '-' {
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-")
}
