// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/deed-raster/pkg/types"
)

// Report is the on-disk form of a run summary.
type Report struct {
	types.RunSummary `yaml:",inline"`

	Finalized int `json:"finalized" yaml:"finalized"`
	Warnings  int `json:"warnings" yaml:"warnings"`
	Skipped   int `json:"skipped" yaml:"skipped"`
	Failed    int `json:"failed" yaml:"failed"`
	Total     int `json:"total" yaml:"total"`
}

// NewReport attaches the summary counts to s.
func NewReport(s types.RunSummary) Report {
	return Report{
		RunSummary: s,
		Finalized:  s.Finalized(),
		Warnings:   s.Warnings(),
		Skipped:    s.Skipped(),
		Failed:     s.Failed(),
		Total:      s.Total(),
	}
}

// WriteReport writes the summary to path as JSON when the extension is
// .json and as YAML for .yaml or .yml.
func WriteReport(path string, s types.RunSummary) error {
	report := NewReport(s)

	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		data, err = json.MarshalIndent(report, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(report)
	default:
		return fmt.Errorf("unsupported report format %q: use .yaml, .yml, or .json", ext)
	}
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
