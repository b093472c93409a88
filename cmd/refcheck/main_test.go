// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/pdiddy/refcheck/pkg/types"
)

func TestLoadConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("validation.style", "apa")
	viper.Set("validation.detection_sample", 10)
	viper.Set("store.state_dir", "/var/lib/refcheck")
	viper.Set("store.max_results", 7)

	cfg := loadConfig()
	if cfg.Validation.Style != types.StyleAPA {
		t.Errorf("Style = %q, want %q", cfg.Validation.Style, types.StyleAPA)
	}
	if cfg.Validation.DetectionSample != 10 {
		t.Errorf("DetectionSample = %d, want 10", cfg.Validation.DetectionSample)
	}
	if cfg.Store.StateDir != "/var/lib/refcheck" {
		t.Errorf("StateDir = %q", cfg.Store.StateDir)
	}
	if cfg.Store.MaxResults != 7 {
		t.Errorf("MaxResults = %d, want 7", cfg.Store.MaxResults)
	}
}

func TestLoadConfigDefaultsEmpty(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg := loadConfig()
	if cfg.Validation.Style != "" || cfg.Validation.DetectionSample != 0 {
		t.Errorf("validation config = %+v, want zero values", cfg.Validation)
	}
	if cfg.Store.StateDir != "" || cfg.Store.MaxResults != 0 {
		t.Errorf("store config = %+v, want zero values", cfg.Store)
	}
}
