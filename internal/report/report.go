// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders validation and renumbering results as plain text.
// Implements: prd001-validation (R5.3), prd002-renumbering (R5).
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pdiddy/refcheck/pkg/types"
)

const rule = "=========================================="

// Validation writes the full name-year validation report: a status header,
// summary counts, one section per diagnostic bucket, and the sorted list of
// valid citations.
func Validation(w io.Writer, res types.ValidationResult) error {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "REFERENCE VALIDATION REPORT")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "STATUS: %d issues found (Name/Year)\n", res.IssueCount())
	fmt.Fprintf(w, "Citation style: %s\n\n", res.Style)

	fmt.Fprintf(w, "Citations found:      %d\n", res.TotalCitations)
	fmt.Fprintf(w, "References found:     %d\n", res.TotalReferences)
	fmt.Fprintf(w, "Valid citations:      %d\n\n", res.ValidCount)

	sections := []struct {
		kind  types.DiagnosticKind
		title string
	}{
		{types.DiagMissingReference, "MISSING REFERENCES"},
		{types.DiagYearMismatch, "YEAR MISMATCHES"},
		{types.DiagSpellingMismatch, "POSSIBLE MISSPELLINGS"},
		{types.DiagUnusedReference, "UNUSED REFERENCES"},
		{types.DiagEtAlError, "ET AL. USAGE"},
		{types.DiagAbbreviationError, "ABBREVIATION USAGE"},
		{types.DiagDuplicateReference, "DUPLICATE REFERENCES"},
		{types.DiagFormatError, "FORMAT ERRORS"},
	}

	for _, sec := range sections {
		diags := res.ByKind(sec.kind)
		if len(diags) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s (%d)\n", sec.title, len(diags))
		fmt.Fprintln(w, strings.Repeat("-", len(sec.title)+4))
		for _, d := range diags {
			writeDiagnostic(w, d)
		}
		fmt.Fprintln(w)
	}

	if len(res.ValidCitations) > 0 {
		fmt.Fprintf(w, "VALID CITATIONS (%d)\n", len(res.ValidCitations))
		fmt.Fprintln(w, strings.Repeat("-", 20))
		for _, c := range res.ValidCitations {
			fmt.Fprintf(w, "  %s\n", c)
		}
		fmt.Fprintln(w)
	}

	_, err := fmt.Fprintln(w, "END OF REPORT")
	return err
}

func writeDiagnostic(w io.Writer, d types.Diagnostic) {
	subject := d.Citation
	if subject == "" {
		subject = d.RefKey
	}
	fmt.Fprintf(w, "  [%s] %s", d.Severity, subject)
	if d.Message != "" {
		fmt.Fprintf(w, ": %s", d.Message)
	}
	fmt.Fprintln(w)
	for _, warning := range d.Warnings {
		fmt.Fprintf(w, "      %s\n", warning)
	}
	if len(d.Locations) > 0 {
		fmt.Fprintf(w, "      paragraphs %s\n", joinInts(d.Locations))
	}
}

// Sequence writes the numeral-scheme report: validation stats, the renumber
// status, and, when a mapping was produced, the old-to-new table sorted by
// new id.
func Sequence(w io.Writer, stats types.SequenceStats, mapping types.RenumberMapping, status string) error {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "REFERENCE VALIDATION REPORT")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "STATUS: %s (Numerical)\n\n", status)

	fmt.Fprintf(w, "Citations found:      %d\n", stats.TotalCitations)
	fmt.Fprintf(w, "References found:     %d\n", stats.TotalReferences)

	if len(stats.Missing) > 0 {
		fmt.Fprintf(w, "Missing references:   %s\n", joinInts(stats.Missing))
	}
	if len(stats.Unused) > 0 {
		fmt.Fprintf(w, "Unused references:    %s\n", joinInts(stats.Unused))
	}
	if len(stats.Duplicates) > 0 {
		fmt.Fprintf(w, "Duplicate entries:    %d\n", len(stats.Duplicates))
		for _, d := range stats.Duplicates {
			fmt.Fprintf(w, "  %d duplicates %d (%.1f%%)\n", d.ID, d.DuplicateOf, d.Score)
		}
	}
	if len(stats.SequenceIssues) > 0 {
		fmt.Fprintf(w, "Sequence issues:      %d\n", len(stats.SequenceIssues))
		for _, g := range stats.SequenceIssues {
			fmt.Fprintf(w, "  position %d cites %d, expected %d\n", g.Position, g.Current, g.Expected)
		}
	}
	fmt.Fprintln(w)

	if len(mapping) > 0 && mapping.Changed() {
		fmt.Fprintln(w, "RENUMBERING")
		fmt.Fprintln(w, "-----------")
		type pair struct{ old, nw int }
		pairs := make([]pair, 0, len(mapping))
		for old, nw := range mapping {
			pairs = append(pairs, pair{old, nw})
		}
		sort.Slice(pairs, func(i, j int) bool { return pairs[i].nw < pairs[j].nw })
		for _, p := range pairs {
			fmt.Fprintf(w, "  %d -> %d\n", p.old, p.nw)
		}
		fmt.Fprintln(w)
	}

	_, err := fmt.Fprintln(w, "END OF REPORT")
	return err
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ", ")
}
