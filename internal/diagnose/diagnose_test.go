// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package diagnose

import (
	"strings"
	"testing"

	"github.com/pdiddy/refcheck/internal/match"
	"github.com/pdiddy/refcheck/internal/refkey"
	"github.com/pdiddy/refcheck/pkg/types"
)

func resolveFor(ex *types.Extraction) types.MatchResult {
	return match.Resolve(ex)
}

func cite(author, year string, locs ...int) types.Citation {
	return types.Citation{
		Key:       refkey.Normalize(author, year),
		Display:   author + " (" + year + ")",
		Author:    author,
		Year:      year,
		Type:      types.CitationNarrative,
		Locations: locs,
	}
}

func ref(author, fullAuthor, year string, paragraph int) types.Reference {
	return types.Reference{
		Key:        refkey.Normalize(author, year),
		Author:     author,
		FullAuthor: fullAuthor,
		Year:       year,
		Paragraph:  paragraph,
		Text:       fullAuthor + " (" + year + "). Some work.",
	}
}

func extraction(cites []types.Citation, refs []types.Reference) *types.Extraction {
	ex := &types.Extraction{
		Citations:     cites,
		References:    refs,
		Abbreviations: make(map[string]string),
	}
	for _, r := range refs {
		for _, a := range r.Abbreviations {
			ex.Abbreviations[a+refkey.Separator+r.Year] = r.Key
		}
	}
	return ex
}

func kinds(diags []types.Diagnostic, kind types.DiagnosticKind) []types.Diagnostic {
	var out []types.Diagnostic
	for _, d := range diags {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

func TestValidateEndToEnd(t *testing.T) {
	ex := extraction(
		[]types.Citation{
			cite("Smith", "2019", 1),
			cite("Jones", "2020", 2),
		},
		[]types.Reference{
			ref("Smith", "Smith, J.", "2019", 10),
			ref("Brown", "Brown, K.", "2020", 11),
		},
	)

	res := Validate(ex, "APA")

	if res.ValidCount != 1 || len(res.ValidCitations) != 1 || res.ValidCitations[0] != "Smith (2019)" {
		t.Errorf("valid citations = %v, want [Smith (2019)]", res.ValidCitations)
	}
	if res.TotalCitations != 2 || res.TotalReferences != 2 {
		t.Errorf("totals = %d/%d, want 2/2", res.TotalCitations, res.TotalReferences)
	}

	missing := kinds(res.Diagnostics, types.DiagMissingReference)
	if len(missing) != 1 || missing[0].Citation != "Jones (2020)" {
		t.Errorf("missing = %+v, want one for Jones (2020)", missing)
	}
	unused := kinds(res.Diagnostics, types.DiagUnusedReference)
	if len(unused) != 1 || unused[0].RefKey != "Brown|2020" {
		t.Errorf("unused = %+v, want one for Brown|2020", unused)
	}
}

func TestYearMismatch(t *testing.T) {
	ex := extraction(
		[]types.Citation{cite("Smith", "2019", 3)},
		[]types.Reference{ref("Smith", "Smith, J.", "2020", 10)},
	)
	diags := Report(ex, resolveFor(ex))

	ym := kinds(diags, types.DiagYearMismatch)
	if len(ym) != 1 {
		t.Fatalf("year mismatches = %+v, want 1", diags)
	}
	d := ym[0]
	if d.CitedYear != "2019" || d.RefYear != "2020" || d.RefKey != "Smith|2020" {
		t.Errorf("diagnostic = %+v", d)
	}
	if d.Severity != types.SeverityError {
		t.Errorf("severity = %s, want error", d.Severity)
	}

	// The mismatched reference is explained; it must not also show as unused.
	if u := kinds(diags, types.DiagUnusedReference); len(u) != 0 {
		t.Errorf("unused = %+v, want none", u)
	}
}

func TestSpellingMismatch(t *testing.T) {
	ex := extraction(
		[]types.Citation{cite("Smithe", "2020", 2)},
		[]types.Reference{ref("Smith", "Smith, J.", "2020", 10)},
	)
	diags := Report(ex, resolveFor(ex))

	sm := kinds(diags, types.DiagSpellingMismatch)
	if len(sm) != 1 {
		t.Fatalf("spelling mismatches = %+v, want 1", diags)
	}
	if sm[0].RefKey != "Smith|2020" {
		t.Errorf("suggested reference = %q, want Smith|2020", sm[0].RefKey)
	}
	if u := kinds(diags, types.DiagUnusedReference); len(u) != 0 {
		t.Errorf("unused = %+v, want none", u)
	}
}

func TestFormatErrorOncePerWarnedCitation(t *testing.T) {
	warned := cite("Smith and Jones", "2020", 1, 4)
	warned.Warnings = []string{"Format Error: Use '&' inside parentheses, not 'and'"}

	ex := extraction(
		[]types.Citation{warned},
		[]types.Reference{ref("Smith & Jones", "Smith, J., & Jones, M.", "2020", 10)},
	)
	diags := Report(ex, resolveFor(ex))

	fe := kinds(diags, types.DiagFormatError)
	if len(fe) != 1 {
		t.Fatalf("format errors = %+v, want exactly 1", fe)
	}
	if len(fe[0].Warnings) != 1 {
		t.Errorf("warnings carried = %v", fe[0].Warnings)
	}
}

func TestCountAuthors(t *testing.T) {
	tests := []struct {
		full string
		want int
	}{
		{"Smith, J.", 1},
		{"Smith, J., & Jones, M.", 2},
		{"Smith, J., Jones, M., & Brown, K.", 3},
		{"Smith, J., Jones, M., Brown, K., & Davis, L.", 4},
		{"World Health Organization", 1},
	}
	for _, tt := range tests {
		if got := CountAuthors(tt.full); got != tt.want {
			t.Errorf("CountAuthors(%q) = %d, want %d", tt.full, got, tt.want)
		}
	}
}

func TestEtAlMisuse(t *testing.T) {
	tests := []struct {
		name         string
		citeAuthor   string
		refAuthor    string
		refFull      string
		wantSeverity types.Severity
		wantCount    int
		wantCorrect  string
		wantNone     bool
	}{
		{
			name:         "et al for single author",
			citeAuthor:   "Smith et al.",
			refAuthor:    "Smith",
			refFull:      "Smith, J.",
			wantSeverity: types.SeverityError,
			wantCount:    1,
		},
		{
			name:         "et al for two authors",
			citeAuthor:   "Smith et al.",
			refAuthor:    "Smith & Jones",
			refFull:      "Smith, J., & Jones, M.",
			wantSeverity: types.SeverityError,
			wantCount:    2,
			wantCorrect:  "Smith & Jones",
		},
		{
			name:         "three authors spelled out",
			citeAuthor:   "Smith",
			refAuthor:    "Smith et al.",
			refFull:      "Smith, J., Jones, M., & Brown, K.",
			wantSeverity: types.SeverityWarning,
			wantCount:    3,
			wantCorrect:  "Smith et al.",
		},
		{
			name:       "three authors with et al",
			citeAuthor: "Smith et al.",
			refAuthor:  "Smith et al.",
			refFull:    "Smith, J., Jones, M., & Brown, K.",
			wantNone:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := extraction(
				[]types.Citation{cite(tt.citeAuthor, "2020", 1)},
				[]types.Reference{ref(tt.refAuthor, tt.refFull, "2020", 10)},
			)
			diags := Report(ex, resolveFor(ex))

			ea := kinds(diags, types.DiagEtAlError)
			if tt.wantNone {
				if len(ea) != 0 {
					t.Fatalf("et al diagnostics = %+v, want none", ea)
				}
				return
			}
			if len(ea) != 1 {
				t.Fatalf("et al diagnostics = %+v, want 1 (all: %+v)", ea, diags)
			}
			d := ea[0]
			if d.Severity != tt.wantSeverity {
				t.Errorf("severity = %s, want %s", d.Severity, tt.wantSeverity)
			}
			if d.AuthorCount != tt.wantCount {
				t.Errorf("author count = %d, want %d", d.AuthorCount, tt.wantCount)
			}
			if tt.wantCorrect != "" && d.CorrectForm != tt.wantCorrect {
				t.Errorf("correct form = %q, want %q", d.CorrectForm, tt.wantCorrect)
			}
		})
	}
}

func TestAbbreviationUsageOrder(t *testing.T) {
	org := "American Nurses Association"
	orgRef := ref(org, org, "2021", 10)
	orgRef.Abbreviations = []string{"ANA"}

	intro := cite(org+" [ANA]", "2021", 1)
	short := cite("ANA", "2021", 3)
	full := cite(org, "2021", 5)

	t.Run("correct order with late full form", func(t *testing.T) {
		ex := extraction([]types.Citation{intro, short, full}, []types.Reference{orgRef})
		diags := kinds(Report(ex, resolveFor(ex)), types.DiagAbbreviationError)

		if len(diags) != 1 {
			t.Fatalf("diagnostics = %+v, want only the late-full-form warning", diags)
		}
		if diags[0].Severity != types.SeverityWarning {
			t.Errorf("severity = %s, want warning", diags[0].Severity)
		}
		if !strings.Contains(diags[0].Message, "ANA") {
			t.Errorf("message = %q", diags[0].Message)
		}
	})

	t.Run("missing introduction", func(t *testing.T) {
		first := cite(org, "2021", 1)
		ex := extraction([]types.Citation{first, short}, []types.Reference{orgRef})
		diags := kinds(Report(ex, resolveFor(ex)), types.DiagAbbreviationError)

		if len(diags) != 1 {
			t.Fatalf("diagnostics = %+v, want the missing-introduction error", diags)
		}
		if diags[0].Severity != types.SeverityError {
			t.Errorf("severity = %s, want error", diags[0].Severity)
		}
		if diags[0].CorrectForm != org+" [ANA]" {
			t.Errorf("correct form = %q", diags[0].CorrectForm)
		}
	})

	t.Run("verbatim repeated introduction", func(t *testing.T) {
		repeated := cite(org+" [ANA]", "2021", 1, 6)
		ex := extraction([]types.Citation{repeated}, []types.Reference{orgRef})
		diags := kinds(Report(ex, resolveFor(ex)), types.DiagAbbreviationError)

		if len(diags) != 1 {
			t.Fatalf("diagnostics = %+v, want the second occurrence flagged", diags)
		}
		if diags[0].Severity != types.SeverityError {
			t.Errorf("severity = %s, want error", diags[0].Severity)
		}
		if len(diags[0].Locations) != 1 || diags[0].Locations[0] != 6 {
			t.Errorf("locations = %v, want [6]", diags[0].Locations)
		}
	})

	t.Run("re-introduction", func(t *testing.T) {
		second := cite(org+" [ANA] ", "2021", 4)
		ex := extraction([]types.Citation{intro, second}, []types.Reference{orgRef})
		diags := kinds(Report(ex, resolveFor(ex)), types.DiagAbbreviationError)

		if len(diags) != 1 {
			t.Fatalf("diagnostics = %+v, want the re-introduction error", diags)
		}
		if diags[0].Severity != types.SeverityError {
			t.Errorf("severity = %s, want error", diags[0].Severity)
		}
	})
}

func TestDuplicateReferenceDiagnostic(t *testing.T) {
	a := ref("Smith", "Smith, J.", "2020", 10)
	a.Text = "Smith, J. (2020). Effects of staffing on outcomes. Journal of Nursing, 12(3), 45-60."
	b := ref("Smith", "Smith, J.", "2020", 11)
	b.Key = "Smith |2020"
	b.Text = "Smith, J. (2020). Effects of staffing on outcomes. Journal of Nursing, 12(3), 45-61."

	ex := extraction([]types.Citation{cite("Smith", "2020", 1)}, []types.Reference{a, b})
	diags := kinds(Report(ex, resolveFor(ex)), types.DiagDuplicateReference)

	if len(diags) != 1 {
		t.Fatalf("duplicates = %+v, want 1", diags)
	}
	d := diags[0]
	if d.RefKey != b.Key || d.DuplicateOf != a.Key {
		t.Errorf("duplicate pair = %q of %q", d.RefKey, d.DuplicateOf)
	}
	if d.Score <= 85 {
		t.Errorf("score = %v, want > 85", d.Score)
	}
}
