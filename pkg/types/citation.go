// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CitationType distinguishes how a citation appears in running text.
// Per prd001-validation R1.2.
type CitationType string

const (
	// CitationParenthetical is an author-year citation fully inside
	// parentheses, e.g. "(Smith, 2020)".
	CitationParenthetical CitationType = "parenthetical"

	// CitationNarrative is a citation whose author is part of the sentence,
	// e.g. "Smith (2020) showed that ...".
	CitationNarrative CitationType = "narrative"
)

// Citation is an in-text citation aggregated over every place it occurs.
// Citations with the same normalized key collapse into one record; Locations
// preserves each occurrence. Per prd001-validation R1.1-R1.4.
type Citation struct {
	// Key is the normalized author+year identity ("<author>|<year>").
	Key string `json:"key" yaml:"key"`

	// Display is the canonical presentation form: "(Author, Year)" for
	// parenthetical citations, "Author (Year)" for narrative ones.
	Display string `json:"display" yaml:"display"`

	// Author is the author part as cited, before normalization.
	Author string `json:"author" yaml:"author"`

	// Year is the cited year, including suffixed forms ("2020a"), "n.d."
	// variants, and "in press".
	Year string `json:"year" yaml:"year"`

	// Type records whether the first occurrence was parenthetical or narrative.
	Type CitationType `json:"type" yaml:"type"`

	// Warnings holds structural problems found while parsing this citation
	// (missing comma, wrong conjunction). They never block matching.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// Raw is the citation text as it appeared in the source.
	Raw string `json:"raw,omitempty" yaml:"raw,omitempty"`

	// Locations lists the 1-based paragraph indices where this citation
	// occurs, in document order.
	Locations []int `json:"locations" yaml:"locations"`
}

// Reference is a bibliography entry. Per prd001-validation R2.1-R2.4.
type Reference struct {
	// Key is the normalized author+year identity shared with Citation keys.
	Key string `json:"key" yaml:"key"`

	// Author is the short display form used for in-text matching
	// (first surname, or "A & B" for two-author works).
	Author string `json:"author" yaml:"author"`

	// FullAuthor is the author block exactly as printed in the bibliography.
	FullAuthor string `json:"full_author" yaml:"full_author"`

	// Year is the publication year or date form ("n.d.", "in press").
	Year string `json:"year" yaml:"year"`

	// Abbreviations lists bracketed initialisms declared by the entry,
	// e.g. "ANA" from "American Nurses Association [ANA]".
	Abbreviations []string `json:"abbreviations,omitempty" yaml:"abbreviations,omitempty"`

	// Paragraph is the 1-based paragraph index of the entry.
	Paragraph int `json:"paragraph" yaml:"paragraph"`

	// Text is a snippet of the entry's source text, truncated for display.
	Text string `json:"text" yaml:"text"`
}

// Display returns the reference's presentation form "Author (Year)".
func (r Reference) Display() string {
	return r.Author + " (" + r.Year + ")"
}

// Extraction is the output of one pass over a paragraph snapshot: the
// citation and reference tables plus the abbreviation index. Slices preserve
// document order; matching and diagnostics depend on that ordering.
type Extraction struct {
	// Citations in first-appearance order.
	Citations []Citation `json:"citations" yaml:"citations"`

	// References in bibliography order.
	References []Reference `json:"references" yaml:"references"`

	// Abbreviations maps "<abbr>|<year>" to the owning reference key.
	Abbreviations map[string]string `json:"abbreviations,omitempty" yaml:"abbreviations,omitempty"`
}

// FindReference returns the reference with the given key, or nil.
func (e *Extraction) FindReference(key string) *Reference {
	for i := range e.References {
		if e.References[i].Key == key {
			return &e.References[i]
		}
	}
	return nil
}

// MatchResult maps citation keys to reference keys. The mapping is
// many-to-one: a reference may satisfy several citations, but each citation
// resolves to at most one reference. Per prd001-validation R3.
type MatchResult struct {
	// Pairs maps citation key to the matched reference key.
	Pairs map[string]string `json:"pairs" yaml:"pairs"`
}

// Matched reports whether the citation key resolved, and to which reference.
func (m MatchResult) Matched(citeKey string) (string, bool) {
	ref, ok := m.Pairs[citeKey]
	return ref, ok
}

// ReferenceMatched reports whether any citation resolved to refKey.
func (m MatchResult) ReferenceMatched(refKey string) bool {
	for _, r := range m.Pairs {
		if r == refKey {
			return true
		}
	}
	return false
}

// ValidationResult is the complete outcome of a name-year validation pass.
// It is a pure value: recomputing it from the same snapshot yields the same
// result. Per prd001-validation R5.
type ValidationResult struct {
	// Style names the citation style used ("APA", "Vancouver", "Chicago").
	Style string `json:"style" yaml:"style"`

	// TotalCitations counts distinct in-text citations found.
	TotalCitations int `json:"total_citations" yaml:"total_citations"`

	// TotalReferences counts bibliography entries found.
	TotalReferences int `json:"total_references" yaml:"total_references"`

	// ValidCount counts citations that resolved to a reference.
	ValidCount int `json:"valid_count" yaml:"valid_count"`

	// ValidCitations lists resolved citations' display forms, sorted.
	ValidCitations []string `json:"valid_citations" yaml:"valid_citations"`

	// Diagnostics holds every issue found, in detection order.
	Diagnostics []Diagnostic `json:"diagnostics" yaml:"diagnostics"`

	// Extraction carries the underlying tables for callers that annotate
	// the source document.
	Extraction Extraction `json:"extraction" yaml:"extraction"`

	// Matches carries the citation-to-reference resolution.
	Matches MatchResult `json:"matches" yaml:"matches"`
}

// IssueCount returns the total number of diagnostics.
func (v ValidationResult) IssueCount() int {
	return len(v.Diagnostics)
}

// ByKind returns the diagnostics of one kind, in detection order.
func (v ValidationResult) ByKind(kind DiagnosticKind) []Diagnostic {
	var out []Diagnostic
	for _, d := range v.Diagnostics {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}
