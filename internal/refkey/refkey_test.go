// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package refkey

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		author string
		year   string
		want   string
	}{
		{"plain surname", "Smith", "2020", "Smith|2020"},
		{"punctuation stripped", "Smith, J.", "2020", "Smith J|2020"},
		{"ampersand kept", "Smith & Jones", "2019", "Smith & Jones|2019"},
		{"whitespace collapsed", "  Smith   &\tJones ", "2019", "Smith & Jones|2019"},
		{"case preserved", "smith", "2020", "smith|2020"},
		{"parens stripped", "World Health Organization (WHO)", "2021", "World Health Organization WHO|2021"},
		{"empty author", "", "2020", "|2020"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.author, tt.year)
			if got != tt.want {
				t.Errorf("Normalize(%q, %q) = %q, want %q", tt.author, tt.year, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	// Re-normalizing the author half of a key is a fixed point.
	inputs := []string{"Smith, J., & Jones, M.", "  The   Lancet.  ", "O'Brien"}
	for _, in := range inputs {
		once := CleanAuthor(in)
		twice := CleanAuthor(once)
		if once != twice {
			t.Errorf("CleanAuthor not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestAuthorPart(t *testing.T) {
	if got := AuthorPart("Smith J|2020"); got != "Smith J" {
		t.Errorf("AuthorPart = %q, want %q", got, "Smith J")
	}
	if got := AuthorPart("no separator"); got != "no separator" {
		t.Errorf("AuthorPart = %q, want input unchanged", got)
	}
}

func TestComparisonForm(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Smith and Jones", "smith & jones"},
		{"Smith & Jones", "smith & jones"},
		{"The Lancet Commission", "lancet commission"},
		{"Smith, J., & Jones, M.", "smith j & jones m"},
		{"Brand New Theory", "brand new theory"},
	}
	for _, tt := range tests {
		if got := ComparisonForm(tt.in); got != tt.want {
			t.Errorf("ComparisonForm(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFirstSurname(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Smith, J., & Jones, M.", "Smith"},
		{"Smith et al.", "Smith"},
		{"Smith et al", "Smith"},
		{"Smith Jones", "Smith"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FirstSurname(tt.in); got != tt.want {
			t.Errorf("FirstSurname(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWords(t *testing.T) {
	got := Words("smith & jones et al and the a")
	for _, want := range []string{"smith", "jones"} {
		if !got[want] {
			t.Errorf("Words missing %q: %v", want, got)
		}
	}
	for w := range got {
		if w == "et" || w == "al" || w == "and" || w == "the" {
			t.Errorf("stopword %q survived", w)
		}
		if len(w) < 2 {
			t.Errorf("short token %q survived", w)
		}
	}
	if strings.Contains("a", "") && got["a"] {
		t.Error("single-letter word kept")
	}
}
