// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DiagnosticKind identifies the category of a validation issue.
// Per prd001-validation R4.1.
type DiagnosticKind string

const (
	// DiagMissingReference marks a citation with no bibliography entry.
	DiagMissingReference DiagnosticKind = "missing_reference"

	// DiagUnusedReference marks a bibliography entry never cited.
	DiagUnusedReference DiagnosticKind = "unused_reference"

	// DiagYearMismatch marks a citation whose author matches a reference
	// but whose year differs.
	DiagYearMismatch DiagnosticKind = "year_mismatch"

	// DiagSpellingMismatch marks a citation whose author closely resembles
	// a reference author without matching it.
	DiagSpellingMismatch DiagnosticKind = "spelling_mismatch"

	// DiagEtAlError marks incorrect "et al." usage relative to the matched
	// reference's author count.
	DiagEtAlError DiagnosticKind = "et_al_error"

	// DiagAbbreviationError marks abbreviation introduction and usage-order
	// problems.
	DiagAbbreviationError DiagnosticKind = "abbreviation_error"

	// DiagDuplicateReference marks a bibliography entry that duplicates an
	// earlier one.
	DiagDuplicateReference DiagnosticKind = "duplicate_reference"

	// DiagFormatError surfaces structural warnings attached to a citation
	// during extraction.
	DiagFormatError DiagnosticKind = "format_error"
)

// Severity tiers a diagnostic so consumers can decide whether to block
// downstream automated formatting. Per prd001-validation R4.3.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is one validation issue. Only the fields relevant to Kind are
// populated; the rest stay zero. Per prd001-validation R4.
type Diagnostic struct {
	Kind     DiagnosticKind `json:"kind" yaml:"kind"`
	Severity Severity       `json:"severity" yaml:"severity"`

	// Citation is the display form of the citation involved, if any.
	Citation string `json:"citation,omitempty" yaml:"citation,omitempty"`

	// CitedAuthor and CitedYear carry the citation's author and year for
	// mismatch kinds.
	CitedAuthor string `json:"cited_author,omitempty" yaml:"cited_author,omitempty"`
	CitedYear   string `json:"cited_year,omitempty" yaml:"cited_year,omitempty"`

	// RefKey, RefAuthor and RefYear identify the reference involved, if any.
	RefKey    string `json:"ref_key,omitempty" yaml:"ref_key,omitempty"`
	RefAuthor string `json:"ref_author,omitempty" yaml:"ref_author,omitempty"`
	RefYear   string `json:"ref_year,omitempty" yaml:"ref_year,omitempty"`

	// Message is a human-readable description of the issue.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`

	// CorrectForm suggests the citation form that would fix an et-al issue.
	CorrectForm string `json:"correct_form,omitempty" yaml:"correct_form,omitempty"`

	// AuthorCount is the reference's author count for et-al issues.
	AuthorCount int `json:"author_count,omitempty" yaml:"author_count,omitempty"`

	// DuplicateOf names the earlier entry a duplicate repeats, and Score its
	// similarity as a percentage rounded to one decimal.
	DuplicateOf string  `json:"duplicate_of,omitempty" yaml:"duplicate_of,omitempty"`
	Score       float64 `json:"score,omitempty" yaml:"score,omitempty"`

	// Warnings carries the extraction-time warnings behind a format error.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// Locations lists 1-based paragraph indices where the issue occurs.
	Locations []int `json:"locations,omitempty" yaml:"locations,omitempty"`

	// Text is a source snippet for reference-side issues.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
}
