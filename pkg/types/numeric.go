// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Run is a styled span within a paragraph. Per prd002-renumbering R1.1.
type Run struct {
	// Text is the span's text content.
	Text string `json:"text" yaml:"text"`

	// Style is the character style name, if any (e.g. "cite_bib",
	// "bib_number").
	Style string `json:"style,omitempty" yaml:"style,omitempty"`

	// Superscript reports whether the span is superscripted.
	Superscript bool `json:"superscript,omitempty" yaml:"superscript,omitempty"`
}

// Paragraph is one contiguous text block from the host document, including
// table-cell text. The caller supplies paragraphs in document order.
// Per prd002-renumbering R1.
type Paragraph struct {
	// ID is a stable identifier the mutation plan refers back to.
	ID string `json:"id" yaml:"id"`

	// Style is the paragraph style name (bibliography entries use "REF-N").
	Style string `json:"style,omitempty" yaml:"style,omitempty"`

	// Text is the paragraph's plain text. Ignored when Runs is non-empty.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	// Runs holds the paragraph's styled spans, in order.
	Runs []Run `json:"runs,omitempty" yaml:"runs,omitempty"`
}

// PlainText returns the paragraph's text, concatenating runs when present.
func (p Paragraph) PlainText() string {
	if len(p.Runs) == 0 {
		return p.Text
	}
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// RenumberMapping maps old citation numbers to new ones. When computed it is
// a bijection from the distinct cited numbers onto 1..N in first-appearance
// order; it is empty when the safety gate aborts. Per prd002-renumbering R3.
type RenumberMapping map[int]int

// Changed reports whether any number actually moves.
func (m RenumberMapping) Changed() bool {
	for old, nw := range m {
		if old != nw {
			return true
		}
	}
	return false
}

// PlanOpKind identifies one mutation operation.
type PlanOpKind string

const (
	// OpSetRun replaces the text (and citation styling) of one run.
	OpSetRun PlanOpKind = "set_run"

	// OpSetBibID rewrites a bibliography entry's visible id.
	OpSetBibID PlanOpKind = "set_bib_id"

	// OpRemoveParagraph removes a paragraph from the document order.
	OpRemoveParagraph PlanOpKind = "remove_paragraph"

	// OpInsertParagraph reinserts a previously removed paragraph at Position.
	OpInsertParagraph PlanOpKind = "insert_paragraph"
)

// PlanOp is one step of a renumber mutation plan. The core never touches the
// host document; the caller applies ops to its own model.
// Per prd002-renumbering R4.
type PlanOp struct {
	Kind PlanOpKind `json:"kind" yaml:"kind"`

	// Para is the target paragraph's stable ID.
	Para string `json:"para" yaml:"para"`

	// Run is the target run index for set_run and set_bib_id. A value of -1
	// on set_bib_id means the id lives in the paragraph text prefix.
	Run int `json:"run" yaml:"run"`

	// Text is the replacement text for set_run and set_bib_id.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	// Cite marks a set_run op that must carry citation styling
	// ("cite_bib", superscript) after the rewrite.
	Cite bool `json:"cite,omitempty" yaml:"cite,omitempty"`

	// Position is the insertion index for insert_paragraph, counted within
	// the document order after all remove ops have been applied.
	Position int `json:"position,omitempty" yaml:"position,omitempty"`
}

// Plan is an ordered mutation plan: all removals precede all insertions.
type Plan struct {
	Ops []PlanOp `json:"ops" yaml:"ops"`
}

// Empty reports whether the plan mutates nothing.
func (p *Plan) Empty() bool {
	return p == nil || len(p.Ops) == 0
}

// SequenceGap records a first appearance out of sequential order.
type SequenceGap struct {
	// Position is the 1-based rank of the first appearance.
	Position int `json:"position" yaml:"position"`

	// Current is the number encountered; Expected is the number a gap-free
	// sequence would show at this position.
	Current  int `json:"current" yaml:"current"`
	Expected int `json:"expected" yaml:"expected"`
}

// NumericDuplicate flags a bibliography entry whose text repeats an earlier
// entry.
type NumericDuplicate struct {
	ID          int     `json:"id" yaml:"id"`
	Text        string  `json:"text" yaml:"text"`
	DuplicateOf int     `json:"duplicate_of" yaml:"duplicate_of"`
	Score       float64 `json:"score" yaml:"score"`
}

// SequenceStats is the validation outcome for a numeral-style document.
// Per prd002-renumbering R2.
type SequenceStats struct {
	TotalReferences int                `json:"total_references" yaml:"total_references"`
	TotalCitations  int                `json:"total_citations" yaml:"total_citations"`
	Missing         []int              `json:"missing_references" yaml:"missing_references"`
	Unused          []int              `json:"unused_references" yaml:"unused_references"`
	Duplicates      []NumericDuplicate `json:"duplicate_references" yaml:"duplicate_references"`
	SequenceIssues  []SequenceGap      `json:"sequence_issues" yaml:"sequence_issues"`
}

// IsPerfect reports whether the document needs no correction at all.
func (s SequenceStats) IsPerfect() bool {
	return len(s.Missing) == 0 && len(s.Unused) == 0 &&
		len(s.Duplicates) == 0 && len(s.SequenceIssues) == 0
}
