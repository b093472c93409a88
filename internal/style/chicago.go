// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package style

import (
	"regexp"
	"strings"

	"github.com/pdiddy/refcheck/pkg/types"
)

// chicagoReferenceRe anchors "Smith, John. 2020. Title of Book. Publisher."
var chicagoReferenceRe = regexp.MustCompile(`^([A-Z][^.]+?)\.\s*(\d{4})\.\s*`)

// chicagoStyle parses Chicago Manual of Style author-year citations. In-text
// citations are shaped like Vancouver's ("(Smith 2020)"); only the
// bibliography grammar differs.
type chicagoStyle struct{}

func (chicagoStyle) Name() string { return "Chicago" }

func (s chicagoStyle) ParseCitations(text string) []types.Citation {
	return vancouverStyle{}.ParseCitations(text)
}

// ParseReference parses a Chicago bibliography entry with full author names,
// "Smith, John. 2020. Title of Book. Publisher."
func (s chicagoStyle) ParseReference(text string) *types.Reference {
	m := chicagoReferenceRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	authorPart := strings.TrimSpace(m[1])
	year := strings.TrimSpace(m[2])

	display := authorPart
	if strings.Contains(authorPart, ",") {
		parts := strings.Split(authorPart, ",")
		if len(parts) >= 3 {
			display = strings.TrimSpace(parts[0]) + " et al."
		} else {
			display = strings.TrimSpace(parts[0])
		}
	}

	return &types.Reference{
		Author:     display,
		FullAuthor: authorPart,
		Year:       year,
	}
}
