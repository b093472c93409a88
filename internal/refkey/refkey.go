// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package refkey canonicalizes author+year pairs into comparable identity
// keys. Citations and references share the same normalization, so equal
// normalized author+year makes a pair exact-match eligible.
// Implements: prd001-validation (R1.1, R2.1).
package refkey

import (
	"regexp"
	"strings"
	"unicode"
)

// Separator joins the author and year halves of a key.
const Separator = "|"

// Normalize canonicalizes an author+year pair into "<author>|<year>".
// Characters other than word characters, whitespace and ampersand are
// stripped and internal whitespace collapses, so cosmetic punctuation
// differences produce the same key. Case is preserved: capitalization drift
// is not an exact match and falls through to the spelling-mismatch path.
func Normalize(author, year string) string {
	return CleanAuthor(author) + Separator + year
}

// CleanAuthor applies the key normalization to the author part alone.
func CleanAuthor(author string) string {
	var b strings.Builder
	for _, r := range author {
		if r == '&' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// AuthorPart returns the author half of a normalized key.
func AuthorPart(key string) string {
	if i := strings.Index(key, Separator); i >= 0 {
		return key[:i]
	}
	return key
}

var (
	andWordRe = regexp.MustCompile(`(?i)\band\b`)
	etAlRe    = regexp.MustCompile(`(?i)\s*et\s+al\.?\s*`)
)

// ComparisonForm reduces text to the loose form smart matching compares:
// "and" becomes "&", periods and commas vanish, everything lowercases, and a
// leading "the" is dropped.
func ComparisonForm(text string) string {
	text = andWordRe.ReplaceAllString(text, "&")
	text = strings.NewReplacer(".", "", ",", "").Replace(text)
	text = strings.ToLower(strings.TrimSpace(text))
	return strings.TrimPrefix(text, "the ")
}

// FirstSurname extracts the leading surname from an author string, dropping
// any "et al." marker. "Smith, J., & Jones, M." yields "Smith".
func FirstSurname(author string) string {
	author = strings.TrimSpace(etAlRe.ReplaceAllString(author, ""))
	if i := strings.Index(author, ","); i >= 0 {
		return strings.TrimSpace(author[:i])
	}
	fields := strings.Fields(author)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Words tokenizes comparison-form text into its significant lowercase words:
// words of length >= 2 with the {and, the, et, al} stopwords removed.
func Words(text string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range wordRe.FindAllString(text, -1) {
		switch w {
		case "and", "the", "et", "al":
		default:
			words[w] = true
		}
	}
	return words
}

var wordRe = regexp.MustCompile(`\b[a-z]{2,}\b`)
