// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package style

import (
	"regexp"
	"strings"

	"github.com/pdiddy/refcheck/pkg/types"
)

var (
	// vanYearRe captures the 4-digit year, ignoring any letter suffix.
	vanYearRe = regexp.MustCompile(`\b((?:19|20)\d{2})[a-z]?\b`)

	// vanBracketRe strips square-bracketed asides from citation content.
	vanBracketRe = regexp.MustCompile(`\[[^\]]+\]`)

	// vanPrefixRe strips signal phrases.
	vanPrefixRe = regexp.MustCompile(`(?i)^(see|cf\.?|e\.g\.?,?|i\.e\.?,?)\s+`)

	vanLeadDigitsRe = regexp.MustCompile(`^\d+\s*`)
	vanTrailPunctRe = regexp.MustCompile(`[.,;:]+$`)

	// vanReferenceRe anchors "Smith J, Jones M. Title. Journal. 2020;10(2):123-45."
	vanReferenceRe = regexp.MustCompile(`^([A-Z][^.]+?)\.\s*([^.]+?)\.\s*.*?(\d{4})`)
)

// vancouverStyle parses the Vancouver author-year variant: "(Smith 2020)",
// no comma between author and year. The numeric Vancouver variant is handled
// by the sequence package, not by citation parsing.
type vancouverStyle struct{}

func (vancouverStyle) Name() string { return "Vancouver" }

// ParseCitations finds parenthetical author-year citations like
// "(Smith 2020)" or "(Jones and Brown 2019)".
func (s vancouverStyle) ParseCitations(text string) []types.Citation {
	var results []types.Citation
	clean := strings.TrimSpace(text)

	for _, m := range parentheticalRe.FindAllStringSubmatch(clean, -1) {
		content := strings.TrimSpace(m[1])
		content = strings.TrimSpace(vanBracketRe.ReplaceAllString(content, ""))
		content = strings.TrimSpace(vanPrefixRe.ReplaceAllString(content, ""))

		if pageOnlyRe.MatchString(content) || monthRe.MatchString(content) {
			continue
		}

		var years []string
		for _, ym := range vanYearRe.FindAllStringSubmatch(content, -1) {
			years = append(years, ym[1])
		}
		if len(years) == 0 {
			continue
		}

		author := content
		for _, year := range years {
			re := regexp.MustCompile(`\b` + year + `[a-z]?\b`)
			author = re.ReplaceAllString(author, "")
		}
		author = strings.TrimSpace(author)
		author = strings.TrimSpace(vanLeadDigitsRe.ReplaceAllString(author, ""))
		author = strings.TrimSpace(vanTrailPunctRe.ReplaceAllString(author, ""))

		// Long captures are prose that happens to end in a year, not
		// citations.
		if len(strings.Fields(author)) > 6 {
			continue
		}
		if len(author) < 2 {
			continue
		}

		for _, year := range years {
			results = append(results, types.Citation{
				Author: author,
				Year:   year,
				Type:   types.CitationParenthetical,
				Raw:    "(" + content + ")",
			})
		}
	}
	return results
}

// ParseReference parses a Vancouver bibliography entry like
// "Smith J, Jones M. Title of article. Journal Name. 2020;10(2):123-45."
func (s vancouverStyle) ParseReference(text string) *types.Reference {
	m := vanReferenceRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	authorPart := strings.TrimSpace(m[1])
	year := strings.TrimSpace(m[3])

	display := authorPart
	if strings.Contains(authorPart, ",") {
		authors := strings.Split(authorPart, ",")
		first := strings.TrimSpace(authors[0])
		switch {
		case len(authors) >= 3:
			display = first + " et al"
		case len(authors) == 2:
			display = first + " and " + strings.TrimSpace(authors[1])
		default:
			display = first
		}
	}

	return &types.Reference{
		Author:     display,
		FullAuthor: authorPart,
		Year:       year,
	}
}
