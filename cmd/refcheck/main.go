// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the refcheck CLI.
// Implements: prd001-validation, prd002-renumbering (CLI surface).
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/refcheck/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the refcheck CLI.
var rootCmd = &cobra.Command{
	Use:   "refcheck",
	Short: "Citation and reference consistency checker",
	Long: `refcheck validates the citation-reference consistency of a manuscript:
it extracts in-text citations and bibliography entries from a paragraph
snapshot, resolves them against each other, and reports missing, unused,
mismatched and duplicated references. Numeral-style documents can also be
renumbered by first appearance behind a fail-closed safety gate.

Each operation is a subcommand: validate, renumber, and history.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./refcheck.yaml or ~/.config/refcheck/config.yaml)")
	rootCmd.PersistentFlags().String("state-dir", "", "base directory for persistent state (default: ~/.local/share/refcheck)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("refcheck")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "refcheck"))
		}
	}

	viper.SetEnvPrefix("REFCHECK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig materializes the viper settings into the typed configuration.
func loadConfig() types.Config {
	return types.Config{
		Validation: types.ValidationConfig{
			Style:           types.StyleName(viper.GetString("validation.style")),
			DetectionSample: viper.GetInt("validation.detection_sample"),
		},
		Store: types.StoreConfig{
			StateDir:   viper.GetString("store.state_dir"),
			MaxResults: viper.GetInt("store.max_results"),
		},
	}
}

// storeConfig resolves the store settings from flags, config file and
// defaults, in that order.
func storeConfig(cmd *cobra.Command) types.StoreConfig {
	cfg := loadConfig().Store
	if flagDir, _ := cmd.Flags().GetString("state-dir"); flagDir != "" {
		cfg.StateDir = flagDir
	}
	if cfg.StateDir == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			cfg.StateDir = filepath.Join(home, ".local", "share", "refcheck")
		} else {
			cfg.StateDir = "."
		}
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
