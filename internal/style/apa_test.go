// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package style

import (
	"testing"

	"github.com/pdiddy/refcheck/pkg/types"
)

func mustAPA(t *testing.T) Style {
	t.Helper()
	s, err := For(types.StyleAPA)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

type wantCite struct {
	author string
	year   string
	typ    types.CitationType
}

func TestAPAParseCitations(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []wantCite
	}{
		{
			name: "parenthetical",
			text: "Care outcomes improved substantially (Smith, 2020).",
			want: []wantCite{{"Smith", "2020", types.CitationParenthetical}},
		},
		{
			name: "narrative",
			text: "Smith (2020) reported improved outcomes.",
			want: []wantCite{{"Smith", "2020", types.CitationNarrative}},
		},
		{
			name: "narrative et al",
			text: "Browne et al. (2017) described the cohort.",
			want: []wantCite{{"Browne et al.", "2017", types.CitationNarrative}},
		},
		{
			name: "semicolon multi-citation",
			text: "Several studies agree (Smith, 2020; Jones, 2019).",
			want: []wantCite{
				{"Smith", "2020", types.CitationParenthetical},
				{"Jones", "2019", types.CitationParenthetical},
			},
		},
		{
			name: "multi-year author",
			text: "Earlier work (Shapiro, 2001, 2012) laid the ground.",
			want: []wantCite{
				{"Shapiro", "2001", types.CitationParenthetical},
				{"Shapiro", "2012", types.CitationParenthetical},
			},
		},
		{
			name: "n.d. citation",
			text: "Guidance exists (World Health Organization, n.d.).",
			want: []wantCite{{"World Health Organization", "n.d.", types.CitationParenthetical}},
		},
		{
			name: "in press",
			text: "A forthcoming trial (Keller, in press) extends this.",
			want: []wantCite{{"Keller", "in press", types.CitationParenthetical}},
		},
		{
			name: "page reference skipped",
			text: "The quote appears later (p. 12).",
			want: nil,
		},
		{
			name: "date skipped",
			text: "The policy changed (January 2020).",
			want: nil,
		},
		{
			name: "year only becomes unknown",
			text: "It was finalized that year (1991).",
			want: []wantCite{{"Unknown", "1991", types.CitationParenthetical}},
		},
		{
			name: "year only after narrative author defers",
			text: "Rumbaut's (2005) framing persists.",
			want: []wantCite{{"Rumbaut", "2005", types.CitationNarrative}},
		},
		{
			name: "secondary citation",
			text: "The idea originated elsewhere (Beckman as cited in Shimrat, 1997).",
			want: []wantCite{{"Shimrat", "1997", types.CitationParenthetical}},
		},
		{
			name: "signal phrase stripped",
			text: "Many agree (see, for example, Smith, 2020).",
			want: []wantCite{{"Smith", "2020", types.CitationParenthetical}},
		},
		{
			name: "bare initialism narrative excluded",
			text: "The PMHNP (2020) guidance is not a citation.",
			want: nil,
		},
		{
			name: "no citations",
			text: "Nothing to see in this sentence.",
			want: nil,
		},
	}

	s := mustAPA(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.ParseCitations(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d citations, want %d: %+v", len(got), len(tt.want), got)
			}
			for i, w := range tt.want {
				if got[i].Author != w.author || got[i].Year != w.year || got[i].Type != w.typ {
					t.Errorf("citation[%d] = {%q %q %s}, want {%q %q %s}",
						i, got[i].Author, got[i].Year, got[i].Type, w.author, w.year, w.typ)
				}
			}
		})
	}
}

func TestAPAParseCitationsWarnings(t *testing.T) {
	s := mustAPA(t)

	got := s.ParseCitations("Outcomes improved (Smith and Jones, 2020).")
	if len(got) != 1 {
		t.Fatalf("got %d citations, want 1", len(got))
	}
	found := false
	for _, w := range got[0].Warnings {
		if w == "Format Error: Use '&' inside parentheses, not 'and'" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing conjunction warning, got %v", got[0].Warnings)
	}

	got = s.ParseCitations("Smith & Jones (2020) argued otherwise.")
	if len(got) != 1 {
		t.Fatalf("got %d narrative citations, want 1", len(got))
	}
	if len(got[0].Warnings) == 0 {
		t.Error("narrative '&' should warn to use 'and'")
	}
}

func TestAPAParseCitationsNoDuplicateNarrative(t *testing.T) {
	// A parenthetical hit must suppress the equivalent narrative capture.
	s := mustAPA(t)
	got := s.ParseCitations("As shown (Smith, 2020) the model held.")
	count := 0
	for _, c := range got {
		if c.Author == "Smith" && c.Year == "2020" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Smith 2020 extracted %d times, want 1", count)
	}
}

func TestAPAParseReference(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantAuthor  string
		wantFull    string
		wantYear    string
		wantAbbrs   []string
		wantNilType bool
	}{
		{
			name:       "single author",
			text:       "Smith, J. (2020). Title of work. Publisher.",
			wantAuthor: "Smith",
			wantFull:   "Smith, J.",
			wantYear:   "2020",
		},
		{
			name:       "two authors",
			text:       "Smith, J., & Jones, M. (2019). Another work. Publisher.",
			wantAuthor: "Smith & Jones",
			wantFull:   "Smith, J., & Jones, M.",
			wantYear:   "2019",
		},
		{
			name:       "three authors",
			text:       "Smith, J., Jones, M., & Brown, K. (2018). Third work. Press.",
			wantAuthor: "Smith et al.",
			wantFull:   "Smith, J., Jones, M., & Brown, K.",
			wantYear:   "2018",
		},
		{
			name:       "declared abbreviation",
			text:       "American Nurses Association [ANA]. (2021). Scope and standards. ANA.",
			wantAuthor: "American Nurses Association",
			wantYear:   "2021",
			wantAbbrs:  []string{"ANA"},
		},
		{
			name:       "parenthesized abbreviation",
			text:       "Centers for Disease Control and Prevention (CDC). (2020). Guidance. CDC.",
			wantAuthor: "Centers for Disease Control and Prevention",
			wantYear:   "2020",
			wantAbbrs:  []string{"CDC"},
		},
		{
			name:       "inferred initialism",
			text:       "World Health Organization. (2019). Report. WHO Press.",
			wantAuthor: "World Health Organization",
			wantYear:   "2019",
			wantAbbrs:  []string{"WHO"},
		},
		{
			name:       "n.d. date",
			text:       "Smith, J. (n.d.). Undated pages. Site.",
			wantAuthor: "Smith",
			wantYear:   "n.d.",
		},
		{
			name:       "dated entry",
			text:       "Smith, J. (2020, May 15). A news item. Outlet.",
			wantAuthor: "Smith",
			wantYear:   "2020",
		},
		{
			name:        "not a reference",
			text:        "This is ordinary prose without a date block.",
			wantNilType: true,
		},
	}

	s := mustAPA(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.ParseReference(tt.text)
			if tt.wantNilType {
				if got != nil {
					t.Fatalf("expected nil, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("got nil reference")
			}
			if got.Author != tt.wantAuthor {
				t.Errorf("Author = %q, want %q", got.Author, tt.wantAuthor)
			}
			if tt.wantFull != "" && got.FullAuthor != tt.wantFull {
				t.Errorf("FullAuthor = %q, want %q", got.FullAuthor, tt.wantFull)
			}
			if got.Year != tt.wantYear {
				t.Errorf("Year = %q, want %q", got.Year, tt.wantYear)
			}
			if len(got.Abbreviations) != len(tt.wantAbbrs) {
				t.Fatalf("Abbreviations = %v, want %v", got.Abbreviations, tt.wantAbbrs)
			}
			for i := range tt.wantAbbrs {
				if got.Abbreviations[i] != tt.wantAbbrs[i] {
					t.Errorf("Abbreviations[%d] = %q, want %q", i, got.Abbreviations[i], tt.wantAbbrs[i])
				}
			}
		})
	}
}
