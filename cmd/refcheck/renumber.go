// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/refcheck/internal/report"
	"github.com/pdiddy/refcheck/internal/sequence"
	"github.com/pdiddy/refcheck/internal/snapshot"
)

var renumberCmd = &cobra.Command{
	Use:   "renumber [file.yaml]",
	Short: "Renumber a numeral-style document by first appearance",
	Long: `Renumber reads a structured YAML snapshot (paragraphs with styled runs),
validates its numeral citation scheme, and renumbers citations by first
appearance, reordering the bibliography to match.

The gate fails closed: unused or missing references abort without touching
anything, and an already-perfect document is left alone. Use --apply to
write the renumbered snapshot back out.`,
	Args: cobra.ExactArgs(1),
	RunE: runRenumber,
}

func init() {
	renumberCmd.Flags().String("apply", "", "write the renumbered snapshot to this file")
	rootCmd.AddCommand(renumberCmd)
}

func runRenumber(cmd *cobra.Command, args []string) error {
	paragraphs, err := snapshot.LoadYAMLFile(args[0])
	if err != nil {
		return err
	}

	arena := sequence.NewArena(paragraphs)
	stats := sequence.Stats(arena)
	mapping, plan, status := sequence.Renumber(arena)

	if err := report.Sequence(os.Stdout, stats, mapping, status); err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("apply")
	if outPath == "" {
		return nil
	}
	if plan.Empty() {
		fmt.Fprintf(os.Stderr, "Nothing to apply: %s\n", status)
		return nil
	}

	if err := arena.Apply(plan); err != nil {
		return fmt.Errorf("applying mutation plan: %w", err)
	}
	if err := snapshot.SaveYAMLFile(outPath, arena.Paragraphs()); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote renumbered snapshot to %s\n", outPath)
	return nil
}
