// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package style implements the citation-style strategies. Each style knows
// how to find in-text citations in a paragraph and how to parse a
// bibliography entry; everything downstream (matching, diagnostics) is
// style-agnostic. The style set is closed: APA, Vancouver and Chicago
// author-year. Implements: prd001-validation (R6).
package style

import (
	"fmt"
	"regexp"

	"github.com/pdiddy/refcheck/pkg/types"
)

// Style is a pluggable citation-style strategy. ParseCitations returns one
// record per citation occurrence with Author, Year, Type, Warnings and Raw
// populated; the extractor assigns keys, display forms and locations.
// ParseReference returns nil when the text is not a bibliography entry.
type Style interface {
	Name() string
	ParseCitations(text string) []types.Citation
	ParseReference(text string) *types.Reference
}

// For returns the strategy for a style name.
func For(name types.StyleName) (Style, error) {
	switch name {
	case types.StyleAPA:
		return apaStyle{}, nil
	case types.StyleVancouver:
		return vancouverStyle{}, nil
	case types.StyleChicago:
		return chicagoStyle{}, nil
	default:
		return nil, fmt.Errorf("unsupported citation style: %q", name)
	}
}

var (
	// detectAPARe matches the APA signature "(Name, 2020)".
	detectAPARe = regexp.MustCompile(`\([A-Z][a-z]+,\s*\d{4}\)`)

	// detectNoCommaRe matches the Vancouver/Chicago signature "(Name 2020)".
	detectNoCommaRe = regexp.MustCompile(`\([A-Z][a-z]+\s+\d{4}\)`)
)

// Detect guesses the citation style from a text sample by counting the
// comma-before-year signature against the bare author-year one. Vancouver
// and Chicago author-year are indistinguishable at this level; Vancouver
// wins the tie. Uncertain samples default to APA.
func Detect(sample string) types.StyleName {
	apa := len(detectAPARe.FindAllString(sample, -1))
	noComma := len(detectNoCommaRe.FindAllString(sample, -1))

	switch {
	case apa > noComma:
		return types.StyleAPA
	case noComma > 0:
		return types.StyleVancouver
	default:
		return types.StyleAPA
	}
}

// Shared patterns across the author-year styles.
var (
	parentheticalRe = regexp.MustCompile(`\(([^()]+)\)`)
	pageOnlyRe      = regexp.MustCompile(`(?i)^p\.?\s*\d+`)
	monthRe         = regexp.MustCompile(`(?i)(January|February|March|April|May|June|July|August|September|October|November|December)`)
	anyLetterRe     = regexp.MustCompile(`[A-Za-z]`)
)
