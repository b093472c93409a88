// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match resolves in-text citations to bibliography references
// through a cascade of strategies: exact key, declared abbreviation, then a
// set of fuzzy "smart" rules tolerant of abbreviations, "et al." and
// narrative/parenthetical variation.
// Implements: prd001-validation (R3); docs/ARCHITECTURE § Matching.
package match

import (
	"regexp"
	"strings"

	"github.com/pdiddy/refcheck/internal/refkey"
	"github.com/pdiddy/refcheck/pkg/types"
)

// Resolve matches every citation in the extraction against its reference
// table. The mapping is many-to-one: several citations may land on one
// reference, and each citation resolves at most once.
func Resolve(ex *types.Extraction) types.MatchResult {
	pairs := make(map[string]string)
	for _, cite := range ex.Citations {
		if refKey := resolve(cite, ex); refKey != "" {
			pairs[cite.Key] = refKey
		}
	}
	return types.MatchResult{Pairs: pairs}
}

// resolve runs the cascade for one citation; first hit wins.
func resolve(cite types.Citation, ex *types.Extraction) string {
	// 1. Exact key match.
	if ex.FindReference(cite.Key) != nil {
		return cite.Key
	}

	// 2. Abbreviation match: the citation author is a declared initialism.
	abbrKey := strings.TrimSpace(cite.Author) + refkey.Separator + cite.Year
	if refKey, ok := ex.Abbreviations[abbrKey]; ok {
		return refKey
	}

	// 3. Smart match over the reference table.
	return smartMatch(cite, ex.References)
}

// abbrIntroRe captures the name part of an abbreviation introduction,
// "Full Name [ABBR]".
var abbrIntroRe = regexp.MustCompile(`^(.*?)\s*\[.*?\]`)

// smartMatch applies the fuzzy rules candidate by candidate, in bibliography
// order, and accepts the first candidate satisfying any rule. There is no
// global best-match ranking across candidates; table order decides ties.
func smartMatch(cite types.Citation, refs []types.Reference) string {
	citeNorm := refkey.ComparisonForm(cite.Author)

	var prefixNorm string
	if m := abbrIntroRe.FindStringSubmatch(cite.Author); m != nil {
		prefixNorm = refkey.ComparisonForm(m[1])
	}

	isEtAl := strings.Contains(citeNorm, "et al")
	var citeFirst string
	if fields := strings.Fields(citeNorm); len(fields) > 0 {
		citeFirst = fields[0]
	}

	citeWords := refkey.Words(citeNorm)

	for _, ref := range refs {
		// Same year required unless the citation year is empty.
		if cite.Year != "" && ref.Year != cite.Year {
			continue
		}

		refAuthor := ref.FullAuthor
		if refAuthor == "" {
			refAuthor = ref.Author
		}
		refNorm := refkey.ComparisonForm(refAuthor)

		// A. Direct normalized equality ("Smith and Jones" vs "Smith & Jones").
		if citeNorm == refNorm {
			return ref.Key
		}

		// B. Abbreviation definition: "National Org [NO]" vs "National Org".
		if prefixNorm != "" && prefixNorm == refNorm {
			return ref.Key
		}

		// C. "et al.": only the first surname token on each side counts.
		if isEtAl {
			if fields := strings.Fields(refNorm); len(fields) > 0 && citeFirst == fields[0] {
				return ref.Key
			}
		}

		// D. Word subset: every significant citation word appears in the
		// candidate.
		if len(citeWords) > 0 {
			refWords := refkey.Words(refNorm)
			if subset(citeWords, refWords) {
				return ref.Key
			}
		}
	}
	return ""
}

func subset(a, b map[string]bool) bool {
	for w := range a {
		if !b[w] {
			return false
		}
	}
	return true
}
