// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package style

import (
	"testing"

	"github.com/pdiddy/refcheck/pkg/types"
)

func TestForKnownStyles(t *testing.T) {
	for _, name := range []types.StyleName{types.StyleAPA, types.StyleVancouver, types.StyleChicago} {
		s, err := For(name)
		if err != nil {
			t.Fatalf("For(%s): %v", name, err)
		}
		if s == nil {
			t.Fatalf("For(%s) returned nil strategy", name)
		}
	}
	if _, err := For(types.StyleName("mla")); err == nil {
		t.Error("For(mla) should fail")
	}
}

func TestVancouverParseCitations(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []wantCite
	}{
		{
			name: "single",
			text: "Outcomes improved across sites (Smith 2020).",
			want: []wantCite{{"Smith", "2020", types.CitationParenthetical}},
		},
		{
			name: "two authors",
			text: "The cohort was larger (Jones and Brown 2019).",
			want: []wantCite{{"Jones and Brown", "2019", types.CitationParenthetical}},
		},
		{
			name: "suffixed year",
			text: "A follow-up confirmed it (Smith 2020b).",
			want: []wantCite{{"Smith", "2020", types.CitationParenthetical}},
		},
		{
			name: "multiple years",
			text: "Repeated surveys (Ipsos 2018 2021) agree.",
			want: []wantCite{
				{"Ipsos", "2018", types.CitationParenthetical},
				{"Ipsos", "2021", types.CitationParenthetical},
			},
		},
		{
			name: "page reference skipped",
			text: "Quoted directly (p. 44).",
			want: nil,
		},
		{
			name: "prose ending in a year skipped",
			text: "(the committee deferred the final budget review to fiscal 2020)",
			want: nil,
		},
		{
			name: "no year skipped",
			text: "A clarifying aside (unpublished observations).",
			want: nil,
		},
	}

	s := vancouverStyle{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.ParseCitations(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d citations, want %d: %+v", len(got), len(tt.want), got)
			}
			for i, w := range tt.want {
				if got[i].Author != w.author || got[i].Year != w.year {
					t.Errorf("citation[%d] = {%q %q}, want {%q %q}",
						i, got[i].Author, got[i].Year, w.author, w.year)
				}
			}
		})
	}
}

func TestVancouverParseReference(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantAuthor string
		wantYear   string
		wantNil    bool
	}{
		{
			name:       "two authors",
			text:       "Smith J, Jones M. Title of article. Journal Name. 2020;10(2):123-45.",
			wantAuthor: "Smith J and Jones M",
			wantYear:   "2020",
		},
		{
			name:       "three authors",
			text:       "Smith J, Jones M, Brown K. Large cohort study. BMJ. 2019;366:l4185.",
			wantAuthor: "Smith J et al",
			wantYear:   "2019",
		},
		{
			name:       "single author",
			text:       "Smith J. A narrative review. Lancet. 2018;391:100-9.",
			wantAuthor: "Smith J",
			wantYear:   "2018",
		},
		{
			name:    "not a reference",
			text:    "lowercase prose is not a bibliography entry",
			wantNil: true,
		},
	}

	s := vancouverStyle{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.ParseReference(tt.text)
			if tt.wantNil {
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
			if got.Year != tt.wantYear {
				t.Errorf("Year = %q, want %q", got.Year, tt.wantYear)
			}
		})
	}
}

func TestChicagoParseReference(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantAuthor string
		wantFull   string
		wantYear   string
		wantNil    bool
	}{
		{
			name:       "single author",
			text:       "Smith, John. 2020. The Study of Things. University Press.",
			wantAuthor: "Smith",
			wantFull:   "Smith, John",
			wantYear:   "2020",
		},
		{
			name:       "many authors",
			text:       "Smith, John, Jane Doe, and Robert Lee. 2019. Shared Work. Press.",
			wantAuthor: "Smith et al.",
			wantFull:   "Smith, John, Jane Doe, and Robert Lee",
			wantYear:   "2019",
		},
		{
			name:       "organization",
			text:       "World Bank. 2021. Annual Development Report. World Bank Group.",
			wantAuthor: "World Bank",
			wantYear:   "2021",
		},
		{
			name:    "not a reference",
			text:    "A sentence without the year-after-author shape.",
			wantNil: true,
		},
	}

	s := chicagoStyle{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.ParseReference(tt.text)
			if tt.wantNil {
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
		})
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		sample string
		want   types.StyleName
	}{
		{
			name:   "apa commas",
			sample: "Results improved (Smith, 2020) and persisted (Jones, 2019).",
			want:   types.StyleAPA,
		},
		{
			name:   "no comma author year",
			sample: "Results improved (Smith 2020) and persisted (Jones 2019).",
			want:   types.StyleVancouver,
		},
		{
			name:   "mixed leans apa",
			sample: "See (Smith, 2020), (Jones, 2019) and once (Brown 2018).",
			want:   types.StyleAPA,
		},
		{
			name:   "no signal defaults apa",
			sample: "A paragraph with no citations at all.",
			want:   types.StyleAPA,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.sample); got != tt.want {
				t.Errorf("Detect() = %s, want %s", got, tt.want)
			}
		})
	}
}
