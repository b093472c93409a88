// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/refcheck/internal/diagnose"
	"github.com/pdiddy/refcheck/internal/extract"
	"github.com/pdiddy/refcheck/internal/report"
	"github.com/pdiddy/refcheck/internal/snapshot"
	"github.com/pdiddy/refcheck/internal/store"
	"github.com/pdiddy/refcheck/internal/style"
	"github.com/pdiddy/refcheck/pkg/types"
)

// detectionSampleDefault is the number of leading paragraphs style detection
// samples.
const detectionSampleDefault = 50

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate citation-reference consistency of a text snapshot",
	Long: `Validate reads a plain-text paragraph snapshot (one paragraph per line,
bibliography delimited by <ref-open> and <ref-close> markers), extracts
citations and references, resolves them against each other, and reports
every inconsistency: missing, unused, mismatched years, likely
misspellings, "et al." and abbreviation misuse, duplicates and format
errors.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().String("style", "", "citation style: apa, vancouver, chicago, or auto (default auto)")
	validateCmd.Flags().String("report", "", "write the plain-text report to this file")
	validateCmd.Flags().Bool("json", false, "print the full result as JSON")
	validateCmd.Flags().Bool("save", false, "record the run in the history store")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	paragraphs, err := snapshot.LoadTextFile(args[0])
	if err != nil {
		return err
	}

	sty, err := resolveStyle(cmd, paragraphs)
	if err != nil {
		return err
	}

	ex := extract.Run(paragraphs, sty)
	res := diagnose.Validate(ex, sty.Name())

	if save, _ := cmd.Flags().GetBool("save"); save {
		st, err := store.New(storeConfig(cmd))
		if err != nil {
			return err
		}
		defer st.Close()
		runID, err := st.SaveRun(context.Background(), args[0], res)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved run %s\n", runID)
	}

	if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
		f, err := os.Create(reportPath)
		if err != nil {
			return fmt.Errorf("creating report %s: %w", reportPath, err)
		}
		defer f.Close()
		if err := report.Validation(f, res); err != nil {
			return err
		}
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	return report.Validation(os.Stdout, res)
}

// resolveStyle picks the citation style from the flag, the config file, or
// detection over the leading paragraphs.
func resolveStyle(cmd *cobra.Command, paragraphs []string) (style.Style, error) {
	cfg := loadConfig().Validation

	name, _ := cmd.Flags().GetString("style")
	if name == "" {
		name = string(cfg.Style)
	}
	if name == "" {
		name = string(types.StyleAuto)
	}

	styleName := types.StyleName(strings.ToLower(name))
	if styleName == types.StyleAuto {
		sampleLen := cfg.DetectionSample
		if sampleLen <= 0 {
			sampleLen = detectionSampleDefault
		}
		if sampleLen > len(paragraphs) {
			sampleLen = len(paragraphs)
		}
		styleName = style.Detect(strings.Join(paragraphs[:sampleLen], "\n"))
		fmt.Fprintf(os.Stderr, "Detected citation style: %s\n", styleName)
	}
	return style.For(styleName)
}
