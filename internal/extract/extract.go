// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract walks a paragraph snapshot and builds the citation and
// reference tables for one document.
// Implements: prd001-validation (R1, R2); docs/ARCHITECTURE § Validation.
package extract

import (
	"strings"

	"github.com/pdiddy/refcheck/internal/refkey"
	"github.com/pdiddy/refcheck/internal/style"
	"github.com/pdiddy/refcheck/pkg/types"
)

// Section markers delimiting the bibliography inside a paragraph snapshot.
// Citation scanning stops at the first paragraph carrying RefOpen; reference
// parsing covers the paragraphs strictly between the two markers.
const (
	RefOpen  = "<ref-open>"
	RefClose = "<ref-close>"
)

// snippetLen caps the stored reference text.
const snippetLen = 150

// Run scans paragraphs in document order and returns the extraction tables.
// Paragraph indices in the result are 1-based. Citations that normalize to
// the same key collapse into one record with accumulated locations and
// merged warnings; for references the first occurrence of a key wins.
func Run(paragraphs []string, sty style.Style) *types.Extraction {
	ex := &types.Extraction{
		Abbreviations: make(map[string]string),
	}

	openIdx, closeIdx := sectionBounds(paragraphs)

	citeEnd := len(paragraphs)
	if openIdx >= 0 {
		citeEnd = openIdx
	}

	citeIndex := make(map[string]int)
	for i := 0; i < citeEnd; i++ {
		for _, c := range sty.ParseCitations(paragraphs[i]) {
			addCitation(ex, citeIndex, c, i+1)
		}
	}

	if openIdx >= 0 {
		end := closeIdx
		if end < 0 {
			end = len(paragraphs)
		}
		refKeys := make(map[string]bool)
		for i := openIdx + 1; i < end; i++ {
			text := strings.TrimSpace(paragraphs[i])
			if text == "" {
				continue
			}
			ref := sty.ParseReference(text)
			if ref == nil {
				continue
			}
			ref.Key = refkey.Normalize(ref.Author, ref.Year)
			if refKeys[ref.Key] {
				continue
			}
			refKeys[ref.Key] = true
			ref.Paragraph = i + 1
			ref.Text = snippet(text)
			ex.References = append(ex.References, *ref)

			for _, abbr := range ref.Abbreviations {
				ex.Abbreviations[abbr+refkey.Separator+ref.Year] = ref.Key
			}
		}
	}

	return ex
}

// sectionBounds returns the indices of the paragraphs carrying the open and
// close markers, or -1 for a marker that never appears.
func sectionBounds(paragraphs []string) (openIdx, closeIdx int) {
	openIdx, closeIdx = -1, -1
	for i, p := range paragraphs {
		if openIdx < 0 && strings.Contains(p, RefOpen) {
			openIdx = i
			continue
		}
		if openIdx >= 0 && strings.Contains(p, RefClose) {
			closeIdx = i
			break
		}
	}
	return openIdx, closeIdx
}

// addCitation merges one parsed occurrence into the citation table.
func addCitation(ex *types.Extraction, index map[string]int, c types.Citation, paragraph int) {
	c.Key = refkey.Normalize(c.Author, c.Year)

	if at, ok := index[c.Key]; ok {
		existing := &ex.Citations[at]
		existing.Locations = append(existing.Locations, paragraph)
		existing.Warnings = mergeWarnings(existing.Warnings, c.Warnings)
		return
	}

	c.Display = displayCitation(c)
	c.Locations = []int{paragraph}
	index[c.Key] = len(ex.Citations)
	ex.Citations = append(ex.Citations, c)
}

func displayCitation(c types.Citation) string {
	if c.Type == types.CitationNarrative {
		return c.Author + " (" + c.Year + ")"
	}
	return "(" + c.Author + ", " + c.Year + ")"
}

// mergeWarnings appends the warnings from a later occurrence, skipping ones
// already recorded.
func mergeWarnings(have, more []string) []string {
	for _, w := range more {
		dup := false
		for _, h := range have {
			if h == w {
				dup = true
				break
			}
		}
		if !dup {
			have = append(have, w)
		}
	}
	return have
}

func snippet(text string) string {
	if len(text) <= snippetLen {
		return text
	}
	return text[:snippetLen] + "..."
}
