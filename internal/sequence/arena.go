// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sequence

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"github.com/pdiddy/refcheck/pkg/types"
)

// Arena holds the paragraph records of one document snapshot behind stable
// identifiers, with an explicit ordered index list. Removing and reinserting
// paragraphs are pure operations over the index list; the records themselves
// never move, so a mutation plan can refer to paragraphs across reordering.
type Arena struct {
	paras map[string]*types.Paragraph
	order []string
}

// NewArena copies the paragraphs into an arena, assigning a fresh identifier
// to any paragraph that arrives without one.
func NewArena(paragraphs []types.Paragraph) *Arena {
	a := &Arena{paras: make(map[string]*types.Paragraph, len(paragraphs))}
	for _, p := range paragraphs {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		cp := p
		a.paras[cp.ID] = &cp
		a.order = append(a.order, cp.ID)
	}
	return a
}

// Len returns the number of paragraphs currently in the document order.
func (a *Arena) Len() int { return len(a.order) }

// Get returns the paragraph with the given id, or nil.
func (a *Arena) Get(id string) *types.Paragraph { return a.paras[id] }

// Paragraphs returns copies of the paragraphs in current document order.
func (a *Arena) Paragraphs() []types.Paragraph {
	out := make([]types.Paragraph, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, *a.paras[id])
	}
	return out
}

// leadingIntRe locates the visible id at the head of a bibliography
// paragraph's text.
var leadingIntRe = regexp.MustCompile(`^\d+`)

// Apply executes a mutation plan against the arena. Ops run in plan order;
// an op referring to an unknown paragraph or run fails without rolling back
// earlier ops, so callers should treat an error as a corrupted snapshot.
func (a *Arena) Apply(plan *types.Plan) error {
	if plan.Empty() {
		return nil
	}
	for _, op := range plan.Ops {
		p := a.paras[op.Para]
		if p == nil {
			return fmt.Errorf("plan references unknown paragraph %q", op.Para)
		}
		switch op.Kind {
		case types.OpSetRun:
			if op.Run < 0 {
				p.Text = op.Text
				continue
			}
			if op.Run >= len(p.Runs) {
				return fmt.Errorf("paragraph %q has no run %d", op.Para, op.Run)
			}
			p.Runs[op.Run].Text = op.Text
			if op.Cite && p.Runs[op.Run].Style == "" && !p.Runs[op.Run].Superscript {
				p.Runs[op.Run].Style = styleCiteBib
			}
		case types.OpSetBibID:
			if op.Run >= 0 {
				if op.Run >= len(p.Runs) {
					return fmt.Errorf("paragraph %q has no run %d", op.Para, op.Run)
				}
				p.Runs[op.Run].Text = op.Text
			} else {
				p.Text = leadingIntRe.ReplaceAllString(p.Text, op.Text)
			}
		case types.OpRemoveParagraph:
			a.removeFromOrder(op.Para)
		case types.OpInsertParagraph:
			a.insertIntoOrder(op.Para, op.Position)
		default:
			return fmt.Errorf("unknown plan op %q", op.Kind)
		}
	}
	return nil
}

func (a *Arena) removeFromOrder(id string) {
	for i, v := range a.order {
		if v == id {
			a.order = append(a.order[:i], a.order[i+1:]...)
			return
		}
	}
}

func (a *Arena) insertIntoOrder(id string, pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(a.order) {
		pos = len(a.order)
	}
	a.order = append(a.order, "")
	copy(a.order[pos+1:], a.order[pos:])
	a.order[pos] = id
}
