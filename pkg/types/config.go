// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// StyleName selects a citation-style strategy. The style set is closed and
// known ahead of time. Per prd001-validation R6.1.
type StyleName string

const (
	StyleAPA       StyleName = "apa"
	StyleVancouver StyleName = "vancouver"
	StyleChicago   StyleName = "chicago"

	// StyleAuto asks the extractor to detect the style from a text sample.
	StyleAuto StyleName = "auto"
)

// ValidationConfig holds settings for the validate command.
type ValidationConfig struct {
	// Style selects the citation style ("apa", "vancouver", "chicago",
	// or "auto" to detect, default "auto").
	Style StyleName `json:"style" yaml:"style"`

	// DetectionSample is the number of leading paragraphs style detection
	// samples (default 50).
	DetectionSample int `json:"detection_sample" yaml:"detection_sample"`
}

// StoreConfig holds settings for the run-history store.
type StoreConfig struct {
	// StateDir is the base directory for persistent state
	// (contains index/refcheck.db).
	StateDir string `json:"state_dir" yaml:"state_dir"`

	// MaxResults is the default maximum number of history rows returned
	// (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// Config groups all command configurations.
type Config struct {
	Validation ValidationConfig `json:"validation" yaml:"validation"`
	Store      StoreConfig      `json:"store" yaml:"store"`
}
