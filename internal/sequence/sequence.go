// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sequence validates and renumbers numeral-style citation schemes.
// A two-pass state machine discovers every cited number and bibliography id
// from the ordered paragraph stream, validates the sequence, and, behind a
// fail-closed gate, emits a mutation plan that renumbers citations by first
// appearance and reorders the bibliography to match.
// Implements: prd002-renumbering; docs/ARCHITECTURE § Renumbering.
package sequence

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/refcheck/internal/match"
	"github.com/pdiddy/refcheck/pkg/types"
)

// Style names the snapshot contract assigns to citation and bibliography
// structure.
const (
	styleCiteBib   = "cite_bib"
	styleBibNumber = "bib_number"
	styleBibPara   = "REF-N"
)

// Renumber statuses. Abort statuses come with an empty mapping and plan.
const (
	StatusRenumbered     = "renumbered"
	StatusPerfect        = "no changes needed"
	StatusAbortedUnused  = "aborted: unused references"
	StatusAbortedMissing = "aborted: missing references"
	StatusNoBibliography = "no bibliography paragraphs"
)

// superscriptNumRe accepts superscript run text made of digits, commas,
// dashes and whitespace only.
var superscriptNumRe = regexp.MustCompile(`^[\d\s,–—-]+$`)

// fallbackRe is the textual citation fallback for documents without styled
// runs: "^1-3^".
var fallbackRe = regexp.MustCompile(`\^([\d\s,–—-]+)\^`)

// citeGroup is one citation occurrence: a maximal contiguous span of
// citation-styled runs, concatenated before number extraction.
type citeGroup struct {
	para     string
	runStart int
	runEnd   int // exclusive
	nums     []int
}

// textCite is a fallback citation occurrence found inside plain text.
type textCite struct {
	para string
	run  int // -1 when the paragraph has no runs
	nums []int
}

// bibEntry is one bibliography paragraph and its visible id.
type bibEntry struct {
	para  string
	id    int
	idRun int // index of the bib_number run, or -1 for a text prefix
	text  string
}

// discovery is the pass-1 result over one snapshot.
type discovery struct {
	allCited   []int
	appearance []int
	bibs       []bibEntry
	groups     []citeGroup
	textCites  []textCite
}

func (d *discovery) bibIDs() map[int]bool {
	ids := make(map[int]bool, len(d.bibs))
	for _, b := range d.bibs {
		ids[b.id] = true
	}
	return ids
}

// discover walks the arena in document order, collecting citation
// occurrences from non-bibliography paragraphs and ids from bibliography
// ones. Order is preserved throughout: first appearance drives renumbering.
func discover(a *Arena) *discovery {
	d := &discovery{}
	seen := make(map[int]bool)

	record := func(nums []int) {
		for _, v := range nums {
			d.allCited = append(d.allCited, v)
			if !seen[v] {
				seen[v] = true
				d.appearance = append(d.appearance, v)
			}
		}
	}

	for _, p := range a.Paragraphs() {
		if p.Style == styleBibPara {
			if b, ok := readBibEntry(p); ok {
				d.bibs = append(d.bibs, b)
			}
			continue
		}

		if len(p.Runs) == 0 {
			for _, m := range fallbackRe.FindAllStringSubmatch(p.Text, -1) {
				nums := Numbers(m[1])
				if len(nums) == 0 {
					continue
				}
				record(nums)
				d.textCites = append(d.textCites, textCite{para: p.ID, run: -1, nums: nums})
			}
			continue
		}

		start := -1
		var buf strings.Builder
		flush := func(end int) {
			if start < 0 {
				return
			}
			nums := Numbers(buf.String())
			if len(nums) > 0 {
				record(nums)
				d.groups = append(d.groups, citeGroup{
					para: p.ID, runStart: start, runEnd: end, nums: nums,
				})
			}
			start = -1
			buf.Reset()
		}

		for i, r := range p.Runs {
			if isCitationRun(r) {
				if start < 0 {
					start = i
				}
				buf.WriteString(r.Text)
				continue
			}
			flush(i)
			for _, m := range fallbackRe.FindAllStringSubmatch(r.Text, -1) {
				nums := Numbers(m[1])
				if len(nums) == 0 {
					continue
				}
				record(nums)
				d.textCites = append(d.textCites, textCite{para: p.ID, run: i, nums: nums})
			}
		}
		flush(len(p.Runs))
	}
	return d
}

// isCitationRun accepts cite_bib-styled runs and superscript runs whose text
// is purely numeric punctuation. Empty and whitespace-only runs never join a
// group, so a blank run splits two adjacent citations. Separator-only
// superscript runs ("-") keep a group contiguous; groups with no digits at
// all are dropped at flush.
func isCitationRun(r types.Run) bool {
	if strings.TrimSpace(r.Text) == "" {
		return false
	}
	if r.Style == styleCiteBib {
		return true
	}
	return r.Superscript && superscriptNumRe.MatchString(r.Text)
}

// readBibEntry extracts the visible id of a bibliography paragraph: a
// bib_number run when present, else a leading integer in the text.
func readBibEntry(p types.Paragraph) (bibEntry, bool) {
	for i, r := range p.Runs {
		if r.Style != styleBibNumber {
			continue
		}
		if nums := Numbers(r.Text); len(nums) > 0 {
			return bibEntry{para: p.ID, id: nums[0], idRun: i, text: bibText(p)}, true
		}
	}
	plain := strings.TrimSpace(p.PlainText())
	if m := leadingIntRe.FindString(plain); m != "" {
		id, _ := strconv.Atoi(m)
		return bibEntry{para: p.ID, id: id, idRun: -1, text: bibText(p)}, true
	}
	return bibEntry{}, false
}

// bibText strips the leading numbering from an entry so duplicate detection
// compares the works themselves, not their positions.
func bibText(p types.Paragraph) string {
	text := strings.TrimSpace(p.PlainText())
	text = leadingIntRe.ReplaceAllString(text, "")
	return strings.TrimLeft(text, ". \t")
}

// Stats validates the numeral scheme of the snapshot: missing and unused
// ids, duplicate entries, and out-of-sequence first appearances.
func Stats(a *Arena) types.SequenceStats {
	return stats(discover(a))
}

func stats(d *discovery) types.SequenceStats {
	s := types.SequenceStats{
		TotalReferences: len(d.bibs),
		TotalCitations:  len(d.allCited),
	}

	bibIDs := d.bibIDs()
	cited := make(map[int]bool, len(d.appearance))
	for _, v := range d.appearance {
		cited[v] = true
	}

	for _, v := range d.appearance {
		if !bibIDs[v] {
			s.Missing = append(s.Missing, v)
		}
	}
	sort.Ints(s.Missing)

	for _, b := range d.bibs {
		if !cited[b.id] {
			s.Unused = append(s.Unused, b.id)
		}
	}
	sort.Ints(s.Unused)

	entries := make([]match.DupEntry, len(d.bibs))
	for i, b := range d.bibs {
		entries[i] = match.DupEntry{ID: strconv.Itoa(b.id), Text: b.text}
	}
	for _, dup := range match.FindDuplicates(entries) {
		id, _ := strconv.Atoi(dup.ID)
		of, _ := strconv.Atoi(dup.DuplicateOf)
		s.Duplicates = append(s.Duplicates, types.NumericDuplicate{
			ID:          id,
			Text:        dup.Text,
			DuplicateOf: of,
			Score:       dup.Score,
		})
	}

	seen := make(map[int]bool)
	for i, v := range d.allCited {
		if seen[v] {
			continue
		}
		if expected := len(seen) + 1; v != expected {
			s.SequenceIssues = append(s.SequenceIssues, types.SequenceGap{
				Position: i + 1,
				Current:  v,
				Expected: expected,
			})
		}
		seen[v] = true
	}

	return s
}

// Renumber computes the first-appearance renumbering of the snapshot. The
// gate fails closed: unused or missing references abort with an empty
// mapping and plan, and an already-perfect document is a no-op. On success
// the returned plan rewrites citation spans, rewrites bibliography ids, and
// reorders the bibliography (cited entries by new id, then uncited entries
// in original order) anchored where the bibliography began.
func Renumber(a *Arena) (types.RenumberMapping, *types.Plan, string) {
	d := discover(a)

	if len(d.bibs) == 0 {
		return types.RenumberMapping{}, &types.Plan{}, StatusNoBibliography
	}

	s := stats(d)
	if len(s.Unused) > 0 {
		return types.RenumberMapping{}, &types.Plan{}, StatusAbortedUnused
	}
	if len(s.Missing) > 0 {
		return types.RenumberMapping{}, &types.Plan{}, StatusAbortedMissing
	}

	mapping := make(types.RenumberMapping, len(d.appearance))
	for i, old := range d.appearance {
		mapping[old] = i + 1
	}

	if s.IsPerfect() && !mapping.Changed() {
		return mapping, &types.Plan{}, StatusPerfect
	}

	plan := buildPlan(a, d, mapping)
	return mapping, plan, StatusRenumbered
}

func buildPlan(a *Arena, d *discovery, mapping types.RenumberMapping) *types.Plan {
	plan := &types.Plan{}

	for _, g := range d.groups {
		plan.Ops = append(plan.Ops, types.PlanOp{
			Kind: types.OpSetRun,
			Para: g.para,
			Run:  g.runStart,
			Text: FormatNumbers(mapNums(g.nums, mapping)),
			Cite: true,
		})
		for i := g.runStart + 1; i < g.runEnd; i++ {
			plan.Ops = append(plan.Ops, types.PlanOp{
				Kind: types.OpSetRun, Para: g.para, Run: i, Text: "", Cite: true,
			})
		}
	}

	rewritten := make(map[string]map[int]bool)
	for _, tc := range d.textCites {
		if rewritten[tc.para] == nil {
			rewritten[tc.para] = make(map[int]bool)
		}
		if rewritten[tc.para][tc.run] {
			continue
		}
		rewritten[tc.para][tc.run] = true

		p := a.Get(tc.para)
		old := p.Text
		if tc.run >= 0 {
			old = p.Runs[tc.run].Text
		}
		plan.Ops = append(plan.Ops, types.PlanOp{
			Kind: types.OpSetRun,
			Para: tc.para,
			Run:  tc.run,
			Text: rewriteFallbacks(old, mapping),
		})
	}

	for _, b := range d.bibs {
		nw, ok := mapping[b.id]
		if !ok || nw == b.id {
			continue
		}
		p := a.Get(b.para)
		text := strconv.Itoa(nw)
		if b.idRun >= 0 {
			text = leadingIntRe.ReplaceAllString(p.Runs[b.idRun].Text, text)
		}
		plan.Ops = append(plan.Ops, types.PlanOp{
			Kind: types.OpSetBibID,
			Para: b.para,
			Run:  b.idRun,
			Text: text,
		})
	}

	plan.Ops = append(plan.Ops, reorderOps(a, d, mapping)...)
	return plan
}

// reorderOps removes every bibliography paragraph and reinserts cited
// entries sorted by new id, then uncited entries in original relative order,
// at the position where the bibliography originally began.
func reorderOps(a *Arena, d *discovery, mapping types.RenumberMapping) []types.PlanOp {
	var cited, uncited []bibEntry
	for _, b := range d.bibs {
		if _, ok := mapping[b.id]; ok {
			cited = append(cited, b)
		} else {
			uncited = append(uncited, b)
		}
	}
	sort.SliceStable(cited, func(i, j int) bool {
		return mapping[cited[i].id] < mapping[cited[j].id]
	})

	anchor := 0
	for _, p := range a.Paragraphs() {
		if p.ID == d.bibs[0].para {
			break
		}
		anchor++
	}

	var ops []types.PlanOp
	for _, b := range d.bibs {
		ops = append(ops, types.PlanOp{Kind: types.OpRemoveParagraph, Para: b.para})
	}
	pos := anchor
	for _, b := range append(cited, uncited...) {
		ops = append(ops, types.PlanOp{
			Kind:     types.OpInsertParagraph,
			Para:     b.para,
			Position: pos,
		})
		pos++
	}
	return ops
}

func mapNums(nums []int, mapping types.RenumberMapping) []int {
	seen := make(map[int]bool, len(nums))
	var out []int
	for _, v := range nums {
		nw, ok := mapping[v]
		if !ok || seen[nw] {
			continue
		}
		seen[nw] = true
		out = append(out, nw)
	}
	sort.Ints(out)
	return out
}

// rewriteFallbacks maps the numbers inside every "^...^" occurrence.
func rewriteFallbacks(text string, mapping types.RenumberMapping) string {
	return fallbackRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := fallbackRe.FindStringSubmatch(m)
		nums := Numbers(sub[1])
		if len(nums) == 0 {
			return m
		}
		return "^" + FormatNumbers(mapNums(nums, mapping)) + "^"
	})
}
