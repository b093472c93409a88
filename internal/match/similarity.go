// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"math"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Ratio returns the edit similarity of two strings in [0, 1], computed
// character-wise with difflib's SequenceMatcher.
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(chars(a), chars(b)).Ratio()
}

// ExceedsRatio reports whether the similarity of a and b strictly exceeds
// threshold, returning the ratio when it does. The cheap upper bounds
// (RealQuickRatio, QuickRatio) run first so most non-matches never pay for
// the full computation.
func ExceedsRatio(a, b string, threshold float64) (float64, bool) {
	m := difflib.NewMatcher(chars(a), chars(b))
	if m.RealQuickRatio() < threshold {
		return 0, false
	}
	if m.QuickRatio() < threshold {
		return 0, false
	}
	r := m.Ratio()
	return r, r > threshold
}

// chars splits a string into per-rune sequence elements.
func chars(s string) []string {
	return strings.Split(s, "")
}

// DupEntry is one record fed to duplicate detection.
type DupEntry struct {
	// ID identifies the entry (a reference key, or a numeric id rendered
	// as text).
	ID string

	// Text is the full entry text compared against the others.
	Text string
}

// Duplicate flags the later of a pair of near-identical entries.
type Duplicate struct {
	// ID is the later entry, DuplicateOf the earlier one it repeats.
	ID          string
	Text        string
	DuplicateOf string

	// Score is the similarity percentage rounded to one decimal.
	Score float64
}

// duplicateThreshold is the similarity a pair must strictly exceed.
const duplicateThreshold = 0.85

// lengthRatioFloor prunes pairs whose lengths differ too much to ever reach
// the similarity threshold.
const lengthRatioFloor = 0.6

// FindDuplicates compares every unordered pair of entries on full text and
// reports later entries that repeat earlier ones. Comparing full entry text
// rather than author+year avoids false positives between same-author,
// same-year but different works. Pairwise cost is O(n²); the length-ratio
// pre-filter and the quick-ratio bounds keep documents with hundreds of
// entries practical.
func FindDuplicates(entries []DupEntry) []Duplicate {
	var dups []Duplicate
	for i := 0; i < len(entries); i++ {
		a := entries[i]
		if a.Text == "" {
			continue
		}
		for j := i + 1; j < len(entries); j++ {
			b := entries[j]
			if b.Text == "" {
				continue
			}
			la, lb := len(a.Text), len(b.Text)
			if float64(min(la, lb))/float64(max(la, lb)) < lengthRatioFloor {
				continue
			}
			ratio, ok := ExceedsRatio(a.Text, b.Text, duplicateThreshold)
			if !ok {
				continue
			}
			dups = append(dups, Duplicate{
				ID:          b.ID,
				Text:        clip(b.Text, 100),
				DuplicateOf: a.ID,
				Score:       math.Round(ratio*1000) / 10,
			})
		}
	}
	return dups
}

// clip truncates s to at most n bytes for display.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
