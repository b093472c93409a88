// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package style

import (
	"regexp"
	"strings"

	"github.com/pdiddy/refcheck/pkg/types"
)

// APA citation patterns.
var (
	// apaYearRe matches a 4-digit year with an optional letter suffix
	// ("2020", "2024a").
	apaYearRe = regexp.MustCompile(`\b(?:19|20)\d{2}[a-z]?\b`)

	// apaNDRe matches "n.d." date forms, including suffixed ones ("n.d.-a").
	apaNDRe = regexp.MustCompile(`(?i)\bn\.?d\.?(?:-[a-z])?\b`)

	// apaInPressRe matches the "in press" date form.
	apaInPressRe = regexp.MustCompile(`(?i)\bin\s+press\b`)

	// apaMissingCommaRe flags "(Smith 2020)" shaped segments.
	apaMissingCommaRe = regexp.MustCompile(`^[A-Z][a-z]+\s+\d{4}$`)

	// apaPrefixRe strips signal phrases before the author ("see", "cf.",
	// "e.g.", "see, for example"). Longest alternatives first.
	apaPrefixRe = regexp.MustCompile(`(?i)^(?:see, for example,|see,\s*for example|see also|for example|also|see|cf\.?|e\.g\.?,?|i\.e\.?,?),?\s+`)

	// apaPageRe strips page spans ("p. 23", "pp. 40-41") anywhere.
	apaPageRe = regexp.MustCompile(`(?i),?\s*\bpp?\.?\s*\d+[-–]?\d*`)

	apaStripYearRe    = regexp.MustCompile(`,?\s*(?:19|20)\d{2}[a-z]?,?\s*`)
	apaStripNDRe      = regexp.MustCompile(`(?i),?\s*\bn\.?d\.?(?:-[a-z])?\b,?\s*`)
	apaStripPressRe   = regexp.MustCompile(`(?i),?\s*\bin\s+press\b,?\s*`)
	leadingPunctRe    = regexp.MustCompile(`^[.,;: ]+`)
	trailingPunctRe   = regexp.MustCompile(`[.,;: ]+$`)
	leadingDigitsRe   = regexp.MustCompile(`^\d+,?\s*`)
	possessiveRe      = regexp.MustCompile(`['’]s?\b`)
	narrativePrefixRe = regexp.MustCompile(`(?i)^(According to|As cited by|As stated by|See also)\s+`)

	// apaExclusionRe rejects captures that are structure labels rather than
	// authors.
	apaExclusionRe = regexp.MustCompile(`(?i)^(Table|Figure|Fig|Eds?|Vol|Suppl|Appendix|Chapter|Section|Part|between|except|Ruth|Johnny|Z\.?|UK)\b`)

	// instrumentRe rejects named tools and scales that cite their source,
	// e.g. "Competency Assessment Tool (Smith, 2020)".
	instrumentRe = regexp.MustCompile(`(?i)\b(Tool|Scale|Measure|Assessment|Instrument|Inventory|Index|Test|Battery|Questionnaire|Survey|Protocol)\b`)

	// allCapsRe rejects bare initialisms used narratively ("ICU", "NPs").
	allCapsRe = regexp.MustCompile(`\b[A-Z]{2,}s?$`)

	// secondaryRe resolves secondary citations, "(Beckman in Shimrat, 1997)".
	secondaryRe = regexp.MustCompile(`\b(?:as cited in|in)\s+([A-Z][A-Za-z\s&]+)`)

	// precededByAuthorRe recognizes a narrative author (or possessive, or
	// "et al.") ending just before an opening parenthesis.
	precededByAuthorRe = regexp.MustCompile(`(?:[A-Z][\w.]*['’]?s?|et al\.?)\s*$`)

	// narrativeRe matches "Name (content)" with the name capped at ~100
	// characters so whole sentences cannot be captured.
	narrativeRe = regexp.MustCompile(`\b([A-Z][A-Za-z\s&.'"` + "`" + `’–-]{0,100}?)\s*\(([^)]+)\)`)

	parensLettersRe = regexp.MustCompile(`[A-Za-z]{3,}`)
	narrativeNDRe   = regexp.MustCompile(`(?i)\bn\.?\s*d\.?\b`)

	// apaReferenceRe anchors an APA bibliography entry: author block, then a
	// parenthetical date starting with a year, "n.d." or "in press". The
	// date anchor prevents greedily treating "(CDC)" as the date part.
	apaReferenceRe = regexp.MustCompile(`^(.+?)\s*\(((?:(?:19|20)\d{2}[a-z]?|n\.?d\.?(?:-[a-z])?|in press).*?)\)\.?`)

	edsRe           = regexp.MustCompile(`(?i)\s*\(\s*Eds?\.?\s*\)`)
	trailingCommaRe = regexp.MustCompile(`,\s*$`)
	bracketAbbrRe   = regexp.MustCompile(`[\[(]([A-Z]{2,})[\])]`)
	bracketAnyRe    = regexp.MustCompile(`\s*[\[(][^\])]+[\])]\s*`)
)

// narrativeStopwords are ignored when trimming and judging capitalization of
// narrative author captures.
var narrativeStopwords = map[string]bool{
	"of": true, "the": true, "and": true, "for": true, "a": true, "an": true,
	"in": true, "on": true, "at": true, "to": true, "from": true, "with": true,
	"by": true, "as": true, "et": true, "al": true, "al.": true, "&": true,
}

var lowercaseExclusions = map[string]bool{
	"see": true, "date": true,
	"january": true, "february": true, "march": true, "april": true,
	"may": true, "june": true, "july": true, "august": true,
	"september": true, "october": true, "november": true, "december": true,
}

// apaStyle parses APA (7th edition) author-year citations and references.
type apaStyle struct{}

func (apaStyle) Name() string { return "APA" }

// ParseCitations finds parenthetical "(Smith, 2020)" and narrative
// "Smith (2020)" citations in a paragraph. Parenthetical parsing runs first
// and records its author-year pairs so the narrative pass does not duplicate
// them.
func (s apaStyle) ParseCitations(text string) []types.Citation {
	var results []types.Citation
	clean := strings.TrimSpace(text)

	type pair struct{ author, year string }
	seen := make(map[pair]bool)

	for _, loc := range parentheticalRe.FindAllStringSubmatchIndex(clean, -1) {
		content := strings.TrimSpace(clean[loc[2]:loc[3]])
		preceding := strings.TrimSpace(clean[:loc[0]])

		for _, segment := range strings.Split(content, ";") {
			segment = strings.TrimSpace(segment)
			if segment == "" || pageOnlyRe.MatchString(segment) || monthRe.MatchString(segment) {
				continue
			}

			var warnings []string
			if apaMissingCommaRe.MatchString(segment) {
				warnings = append(warnings, "Format Error: Missing comma between author and year (APA requires comma)")
			}
			if strings.Contains(segment, " and ") && !strings.Contains(segment, "&") {
				warnings = append(warnings, "Format Error: Use '&' inside parentheses, not 'and'")
			}

			years := apaYearRe.FindAllString(segment, -1)
			if nd := apaNDRe.FindString(segment); nd != "" {
				years = []string{nd}
			} else if apaInPressRe.MatchString(segment) {
				years = []string{"in press"}
			}

			cleanContent := strings.TrimSpace(apaPrefixRe.ReplaceAllString(segment, ""))
			cleanContent = strings.TrimSpace(apaPageRe.ReplaceAllString(cleanContent, ""))

			author := cleanContent
			if len(years) > 0 {
				author = apaStripYearRe.ReplaceAllString(author, "")
				author = apaStripNDRe.ReplaceAllString(author, "")
				author = apaStripPressRe.ReplaceAllString(author, "")
			}
			author = leadingPunctRe.ReplaceAllString(author, "")
			author = trailingPunctRe.ReplaceAllString(author, "")
			author = strings.TrimSpace(leadingDigitsRe.ReplaceAllString(author, ""))

			// Year-only segments: "(2020)" after a narrative author belongs
			// to the narrative pass; otherwise the author is unknown.
			if len(years) > 0 && !anyLetterRe.MatchString(author) {
				if precededByAuthorRe.MatchString(preceding) {
					continue
				}
				author = "Unknown"
				warnings = append(warnings, "Warning: Missing Author")
			}

			if len(author) <= 1 || apaExclusionRe.MatchString(author) {
				continue
			}
			if m := secondaryRe.FindStringSubmatch(author); m != nil {
				author = strings.TrimSpace(m[1])
			}
			if len(years) == 0 || !anyLetterRe.MatchString(author) {
				continue
			}

			for _, year := range years {
				results = append(results, types.Citation{
					Author:   author,
					Year:     year,
					Type:     types.CitationParenthetical,
					Warnings: warnings,
					Raw:      "(" + segment + ")",
				})
				norm := strings.TrimSpace(trailingPunctRe.ReplaceAllString(author, ""))
				seen[pair{strings.ToLower(norm), year}] = true
			}
		}
	}

	for _, m := range narrativeRe.FindAllStringSubmatch(clean, -1) {
		authorRaw := strings.TrimSpace(m[1])
		parens := m[2]

		years := apaYearRe.FindAllString(parens, -1)
		hasND := narrativeNDRe.MatchString(parens)
		hasPress := apaInPressRe.MatchString(parens)
		if len(years) == 0 && !hasND && !hasPress {
			continue
		}
		if hasND {
			years = []string{"n.d."}
		} else if hasPress {
			years = []string{"in press"}
		}

		// "(First Nations Pedagogy Online, 2019)" is parenthetical, not a
		// narrative citation of the word before it.
		sansDate := apaStripYearRe.ReplaceAllString(parens, "")
		sansDate = apaStripNDRe.ReplaceAllString(sansDate, "")
		sansDate = apaStripPressRe.ReplaceAllString(sansDate, "")
		if parensLettersRe.MatchString(sansDate) {
			continue
		}

		author := strings.TrimSpace(possessiveRe.ReplaceAllString(authorRaw, ""))
		author = trimToCapitalizedTail(author)
		author = strings.TrimSpace(narrativePrefixRe.ReplaceAllString(author, ""))

		if apaExclusionRe.MatchString(author) || instrumentRe.MatchString(author) || allCapsRe.MatchString(author) {
			continue
		}
		if lowercaseExclusions[strings.ToLower(author)] {
			continue
		}

		words := strings.Fields(author)
		if len(words) > 6 || len(words) == 0 {
			continue
		}
		if len(words) > 2 && !mostlyCapitalized(words) {
			continue
		}

		var warnings []string
		if strings.Contains(author, "&") {
			warnings = append(warnings, "Format Error: Use 'and' in narrative citations, not '&'")
		}

		for _, year := range years {
			norm := strings.TrimSpace(trailingPunctRe.ReplaceAllString(author, ""))
			if seen[pair{strings.ToLower(norm), year}] {
				continue
			}
			results = append(results, types.Citation{
				Author:   author,
				Year:     year,
				Type:     types.CitationNarrative,
				Warnings: warnings,
				Raw:      m[0],
			})
		}
	}

	return results
}

// trimToCapitalizedTail drops leading prose from a narrative capture,
// keeping the rightmost run of capitalized words: "An interesting outcome of
// Rumbaut" becomes "Rumbaut".
func trimToCapitalizedTail(author string) string {
	words := strings.Fields(author)
	if len(words) <= 1 {
		return author
	}
	start := -1
	for i := len(words) - 1; i >= 0; i-- {
		w := words[i]
		if w == "" {
			continue
		}
		lower := strings.ToLower(w)
		first := rune(w[0])
		if first >= 'A' && first <= 'Z' && !narrativeStopwords[lower] {
			start = i
		} else if first >= 'a' && first <= 'z' && !narrativeStopwords[lower] {
			break
		}
	}
	if start > 0 {
		return strings.Join(words[start:], " ")
	}
	return author
}

// mostlyCapitalized requires >70% of the non-stopword words to start
// uppercase, letting "University of Ottawa" pass while rejecting prose.
func mostlyCapitalized(words []string) bool {
	var meaningful, capitalized int
	for _, w := range words {
		if narrativeStopwords[strings.ToLower(w)] {
			continue
		}
		meaningful++
		if w[0] >= 'A' && w[0] <= 'Z' {
			capitalized++
		}
	}
	if meaningful == 0 {
		return false
	}
	return float64(capitalized)/float64(meaningful) >= 0.7
}

// ParseReference parses an APA bibliography entry such as
// "Smith, J. (2020). Title of work. Publisher." including "(2020, May 15)",
// "(n.d.)" and "(in press)" date forms.
func (s apaStyle) ParseReference(text string) *types.Reference {
	m := apaReferenceRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	authorPart := strings.TrimSpace(m[1])
	datePart := strings.TrimSpace(m[2])

	var year string
	switch {
	case apaYearRe.MatchString(datePart):
		year = apaYearRe.FindString(datePart)
	case strings.Contains(strings.ToLower(datePart), "n.d"):
		year = apaNDRe.FindString(datePart)
		if year == "" {
			year = "n.d."
		}
	case strings.Contains(strings.ToLower(datePart), "in press"):
		year = "in press"
	default:
		// Unusable for year matching, but keep it for display.
		year = datePart
	}

	authorPart = strings.TrimSpace(edsRe.ReplaceAllString(authorPart, ""))
	authorPart = trailingCommaRe.ReplaceAllString(authorPart, "")

	var abbrs []string
	for _, am := range bracketAbbrRe.FindAllStringSubmatch(authorPart, -1) {
		abbrs = append(abbrs, am[1])
	}
	authorClean := strings.TrimSpace(bracketAnyRe.ReplaceAllString(authorPart, " "))
	authorClean = strings.TrimSpace(strings.TrimSuffix(authorClean, "."))

	// Organizations often drop the bracketed form; infer an initialism from
	// a multi-word capitalized name when it comes out 3+ letters.
	if len(abbrs) == 0 && !strings.Contains(authorClean, ",") {
		words := strings.Fields(authorClean)
		if len(words) >= 2 && allWordsCapitalized(words) {
			var b strings.Builder
			for _, w := range words {
				b.WriteByte(w[0])
			}
			if b.Len() >= 3 {
				abbrs = append(abbrs, b.String())
			}
		}
	}

	display := displayAuthorAPA(authorClean)

	return &types.Reference{
		Author:        display,
		FullAuthor:    authorPart,
		Year:          year,
		Abbreviations: abbrs,
	}
}

func allWordsCapitalized(words []string) bool {
	for _, w := range words {
		if w == "" || w[0] < 'A' || w[0] > 'Z' {
			return false
		}
	}
	return true
}

// displayAuthorAPA reduces a full author block to the short form used for
// in-text matching: surnames around "&" for two authors, "Surname et al."
// for three or more, first surname otherwise.
func displayAuthorAPA(authorClean string) string {
	switch {
	case strings.Contains(authorClean, "&"):
		authors := strings.Split(authorClean, "&")
		first := firstSegment(authors[0])
		if len(authors) == 2 && strings.Count(authorClean, ",") <= 3 {
			return first + " & " + firstSegment(authors[1])
		}
		return first + " et al."
	case strings.Contains(authorClean, ","):
		return strings.TrimSpace(strings.SplitN(authorClean, ",", 2)[0])
	default:
		return strings.TrimSpace(authorClean)
	}
}

// firstSegment returns the surname before the first comma of one author.
func firstSegment(s string) string {
	return strings.TrimSpace(strings.SplitN(strings.TrimSpace(s), ",", 2)[0])
}
