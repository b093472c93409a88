// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package diagnose explains every citation and reference the matcher could
// not pair cleanly, and audits the pairs it could: mismatched years,
// near-miss spellings, missing and unused entries, "et al." misuse,
// abbreviation usage order, duplicates and structural format errors.
// Implements: prd001-validation (R4); docs/ARCHITECTURE § Diagnostics.
package diagnose

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/refcheck/internal/match"
	"github.com/pdiddy/refcheck/internal/refkey"
	"github.com/pdiddy/refcheck/pkg/types"
)

// spellingThreshold is the best-ratio floor a near-miss author pair must
// strictly exceed to be reported as a spelling mismatch.
const spellingThreshold = 0.80

// Validate runs the matcher and the full diagnostic suite over one
// extraction and assembles the result. styleLabel names the citation style
// for display ("APA", "Vancouver", "Chicago").
func Validate(ex *types.Extraction, styleLabel string) types.ValidationResult {
	matches := match.Resolve(ex)

	var valid []string
	for _, c := range ex.Citations {
		if _, ok := matches.Matched(c.Key); ok {
			valid = append(valid, c.Display)
		}
	}
	sort.Strings(valid)

	return types.ValidationResult{
		Style:           styleLabel,
		TotalCitations:  len(ex.Citations),
		TotalReferences: len(ex.References),
		ValidCount:      len(valid),
		ValidCitations:  valid,
		Diagnostics:     Report(ex, matches),
		Extraction:      *ex,
		Matches:         matches,
	}
}

// Report computes every diagnostic for an extraction and its match result,
// in detection order: unresolved citations first, then format errors, then
// matched-pair audits, duplicates, and unused references last.
func Report(ex *types.Extraction, matches types.MatchResult) []types.Diagnostic {
	var diags []types.Diagnostic

	// explained tracks references already named by a year or spelling
	// mismatch so the unused pass does not report the same entry twice.
	explained := make(map[string]bool)

	for _, cite := range ex.Citations {
		if _, ok := matches.Matched(cite.Key); ok {
			continue
		}
		d := explainUnresolved(cite, ex.References)
		if d.RefKey != "" {
			explained[d.RefKey] = true
		}
		diags = append(diags, d)
	}

	for _, cite := range ex.Citations {
		if len(cite.Warnings) == 0 {
			continue
		}
		diags = append(diags, types.Diagnostic{
			Kind:      types.DiagFormatError,
			Severity:  types.SeverityWarning,
			Citation:  cite.Display,
			Warnings:  cite.Warnings,
			Locations: cite.Locations,
		})
	}

	for _, cite := range ex.Citations {
		refKey, ok := matches.Matched(cite.Key)
		if !ok {
			continue
		}
		ref := ex.FindReference(refKey)
		if ref == nil {
			continue
		}
		if d := auditEtAl(cite, *ref); d != nil {
			diags = append(diags, *d)
		}
	}

	diags = append(diags, auditAbbreviations(ex, matches)...)
	diags = append(diags, findDuplicateReferences(ex.References)...)

	for _, ref := range ex.References {
		if matches.ReferenceMatched(ref.Key) || explained[ref.Key] {
			continue
		}
		diags = append(diags, types.Diagnostic{
			Kind:      types.DiagUnusedReference,
			Severity:  types.SeverityWarning,
			RefKey:    ref.Key,
			RefAuthor: ref.Author,
			RefYear:   ref.Year,
			Message:   fmt.Sprintf("%s is never cited in the text", ref.Display()),
			Text:      ref.Text,
			Locations: []int{ref.Paragraph},
		})
	}

	return diags
}

// explainUnresolved decides why one citation failed to match: a year
// mismatch against a same-author reference, a near-miss spelling, or a
// genuinely missing reference. First explanation wins.
func explainUnresolved(cite types.Citation, refs []types.Reference) types.Diagnostic {
	citeAuthor := refkey.AuthorPart(cite.Key)

	// 1. Same author, different year.
	for _, ref := range refs {
		if refkey.AuthorPart(ref.Key) == citeAuthor && ref.Year != cite.Year {
			return types.Diagnostic{
				Kind:        types.DiagYearMismatch,
				Severity:    types.SeverityError,
				Citation:    cite.Display,
				CitedAuthor: cite.Author,
				CitedYear:   cite.Year,
				RefKey:      ref.Key,
				RefAuthor:   ref.Author,
				RefYear:     ref.Year,
				Message: fmt.Sprintf("cited as %s but the reference list has %s",
					cite.Year, ref.Year),
				Locations: cite.Locations,
			}
		}
	}

	// 2. Close spelling against some reference author.
	citeNorm := refkey.ComparisonForm(cite.Author)
	var best float64
	var bestRef *types.Reference
	for i, ref := range refs {
		r := match.Ratio(citeNorm, refkey.ComparisonForm(ref.Author))
		if r > best {
			best = r
			bestRef = &refs[i]
		}
	}
	if bestRef != nil && best > spellingThreshold {
		return types.Diagnostic{
			Kind:        types.DiagSpellingMismatch,
			Severity:    types.SeverityError,
			Citation:    cite.Display,
			CitedAuthor: cite.Author,
			CitedYear:   cite.Year,
			RefKey:      bestRef.Key,
			RefAuthor:   bestRef.Author,
			RefYear:     bestRef.Year,
			Message: fmt.Sprintf("possible misspelling of %s", bestRef.Display()),
			Locations: cite.Locations,
		}
	}

	// 3. Nothing close enough: the reference is missing.
	return types.Diagnostic{
		Kind:        types.DiagMissingReference,
		Severity:    types.SeverityError,
		Citation:    cite.Display,
		CitedAuthor: cite.Author,
		CitedYear:   cite.Year,
		Message:     fmt.Sprintf("no reference found for %s", cite.Display),
		Locations:   cite.Locations,
	}
}

// bareInitialRe matches single-initial tokens ("J", "M.") which are part of
// one author's name, not additional authors.
var bareInitialRe = regexp.MustCompile(`^[A-Z]\.?$`)

// CountAuthors derives the number of authors from a bibliography author
// block. Comma segments before the "&" count, excluding bare initials, plus
// one for the author after it; a block without "&" is a single author (or an
// organization).
func CountAuthors(fullAuthor string) int {
	if !strings.Contains(fullAuthor, "&") {
		return 1
	}
	parts := strings.SplitN(fullAuthor, "&", 2)
	count := 0
	for _, seg := range strings.Split(parts[0], ",") {
		seg = strings.TrimSpace(seg)
		if seg == "" || bareInitialRe.MatchString(seg) {
			continue
		}
		count++
	}
	return count + 1
}

// auditEtAl checks one matched pair for "et al." misuse. At most one issue
// fires per pair: an error when "et al." stands in for two or fewer authors,
// a warning when three or more are spelled out.
func auditEtAl(cite types.Citation, ref types.Reference) *types.Diagnostic {
	full := ref.FullAuthor
	if full == "" {
		full = ref.Author
	}
	count := CountAuthors(full)
	usesEtAl := strings.Contains(strings.ToLower(cite.Author), "et al")

	switch {
	case usesEtAl && count <= 2:
		return &types.Diagnostic{
			Kind:        types.DiagEtAlError,
			Severity:    types.SeverityError,
			Citation:    cite.Display,
			RefKey:      ref.Key,
			RefAuthor:   ref.Author,
			AuthorCount: count,
			CorrectForm: ref.Author,
			Message: fmt.Sprintf("'et al.' used for a %d-author work; spell out as %s",
				count, ref.Author),
			Locations: cite.Locations,
		}
	case !usesEtAl && count >= 3:
		correct := refkey.FirstSurname(full) + " et al."
		return &types.Diagnostic{
			Kind:        types.DiagEtAlError,
			Severity:    types.SeverityWarning,
			Citation:    cite.Display,
			RefKey:      ref.Key,
			RefAuthor:   ref.Author,
			AuthorCount: count,
			CorrectForm: correct,
			Message: fmt.Sprintf("%d-author work may be cited as %s", count, correct),
			Locations: cite.Locations,
		}
	}
	return nil
}

// usageEvent is one occurrence of a citation of a reference that owns
// abbreviations.
type usageEvent struct {
	location int
	text     string
	intro    bool
	abbr     bool
	full     bool
}

// auditAbbreviations checks, per reference declaring abbreviations, that the
// first occurrence introduces the abbreviation ("Full Name [ABBR]"), that it
// is never re-introduced, and that later occurrences use the short form.
// Events expand per location: a citation repeated verbatim at several
// paragraphs yields one event per paragraph.
func auditAbbreviations(ex *types.Extraction, matches types.MatchResult) []types.Diagnostic {
	var diags []types.Diagnostic

	for _, ref := range ex.References {
		if len(ref.Abbreviations) == 0 {
			continue
		}

		var events []usageEvent
		for _, cite := range ex.Citations {
			refKey, ok := matches.Matched(cite.Key)
			if !ok || refKey != ref.Key {
				continue
			}
			for _, loc := range cite.Locations {
				events = append(events, buildUsageEvent(cite, ref, loc))
			}
		}
		if len(events) == 0 {
			continue
		}
		sort.Slice(events, func(i, j int) bool { return events[i].location < events[j].location })

		expected := fmt.Sprintf("%s [%s]", ref.Author, ref.Abbreviations[0])

		if !events[0].intro {
			diags = append(diags, types.Diagnostic{
				Kind:        types.DiagAbbreviationError,
				Severity:    types.SeverityError,
				Citation:    events[0].text,
				RefKey:      ref.Key,
				RefAuthor:   ref.Author,
				CorrectForm: expected,
				Message: fmt.Sprintf("first use must introduce the abbreviation: %s", expected),
				Locations: []int{events[0].location},
			})
		}

		for _, ev := range events[1:] {
			switch {
			case ev.intro:
				diags = append(diags, types.Diagnostic{
					Kind:        types.DiagAbbreviationError,
					Severity:    types.SeverityError,
					Citation:    ev.text,
					RefKey:      ref.Key,
					RefAuthor:   ref.Author,
					CorrectForm: ref.Abbreviations[0],
					Message:     "abbreviation introduced more than once; later uses take the short form",
					Locations:   []int{ev.location},
				})
			case ev.full && !ev.abbr:
				diags = append(diags, types.Diagnostic{
					Kind:        types.DiagAbbreviationError,
					Severity:    types.SeverityWarning,
					Citation:    ev.text,
					RefKey:      ref.Key,
					RefAuthor:   ref.Author,
					CorrectForm: ref.Abbreviations[0],
					Message: fmt.Sprintf("use the abbreviation %s after introducing it", ref.Abbreviations[0]),
					Locations: []int{ev.location},
				})
			}
		}
	}

	return diags
}

func buildUsageEvent(cite types.Citation, ref types.Reference, location int) usageEvent {
	ev := usageEvent{
		location: location,
		text:     cite.Author,
		intro:    strings.Contains(cite.Author, "["),
	}
	if ev.intro {
		ev.full = true
		return ev
	}
	for _, abbr := range ref.Abbreviations {
		if cite.Author == abbr {
			ev.abbr = true
		}
	}
	if !ev.abbr {
		ev.full = strings.HasPrefix(
			refkey.ComparisonForm(cite.Author), refkey.ComparisonForm(ref.Author))
	}
	return ev
}

// findDuplicateReferences applies full-text duplicate detection to the
// bibliography; the later entry of each near-identical pair is flagged.
func findDuplicateReferences(refs []types.Reference) []types.Diagnostic {
	entries := make([]match.DupEntry, len(refs))
	for i, ref := range refs {
		entries[i] = match.DupEntry{ID: ref.Key, Text: ref.Text}
	}

	var diags []types.Diagnostic
	for _, dup := range match.FindDuplicates(entries) {
		diags = append(diags, types.Diagnostic{
			Kind:        types.DiagDuplicateReference,
			Severity:    types.SeverityWarning,
			RefKey:      dup.ID,
			DuplicateOf: dup.DuplicateOf,
			Score:       dup.Score,
			Text:        dup.Text,
			Message: fmt.Sprintf("likely duplicate of %s (%.1f%% similar)",
				dup.DuplicateOf, dup.Score),
		})
	}
	return diags
}
