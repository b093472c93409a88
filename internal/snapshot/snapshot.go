// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package snapshot reads and writes paragraph snapshots, the host-format
// stand-in the CLI feeds to the engine. Plain text carries one paragraph per
// line for name-year validation; YAML carries the structured paragraph/run
// form the numeric sequencer needs.
package snapshot

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/refcheck/pkg/types"
)

// LoadText reads a plain-text snapshot: one paragraph per line, in document
// order. Trailing whitespace is trimmed; blank lines are kept so paragraph
// indices line up with the source file's line numbers.
func LoadText(r io.Reader) ([]string, error) {
	var paragraphs []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		paragraphs = append(paragraphs, strings.TrimRight(scanner.Text(), " \t\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	return paragraphs, nil
}

// LoadTextFile reads a plain-text snapshot from path.
func LoadTextFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot %s: %w", path, err)
	}
	defer f.Close()
	return LoadText(f)
}

// yamlSnapshot is the on-disk shape of a structured snapshot.
type yamlSnapshot struct {
	Paragraphs []types.Paragraph `yaml:"paragraphs"`
}

// LoadYAML reads a structured snapshot with paragraph styles and runs.
func LoadYAML(r io.Reader) ([]types.Paragraph, error) {
	var snap yamlSnapshot
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if len(snap.Paragraphs) == 0 {
		return nil, fmt.Errorf("snapshot has no paragraphs")
	}
	return snap.Paragraphs, nil
}

// LoadYAMLFile reads a structured snapshot from path.
func LoadYAMLFile(path string) ([]types.Paragraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot %s: %w", path, err)
	}
	defer f.Close()
	return LoadYAML(f)
}

// SaveYAML writes a structured snapshot, preserving paragraph order.
func SaveYAML(w io.Writer, paragraphs []types.Paragraph) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlSnapshot{Paragraphs: paragraphs}); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return enc.Close()
}

// SaveYAMLFile writes a structured snapshot to path.
func SaveYAMLFile(path string, paragraphs []types.Paragraph) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot %s: %w", path, err)
	}
	defer f.Close()
	return SaveYAML(f, paragraphs)
}
