package types

import "fmt"

// Fixed rasterization parameters. Resolution and format are not configurable.
const (
	// DPI is the rasterization resolution passed to the rasterizer.
	DPI = 300

	// ImageExt is the extension of every raster the pipeline produces.
	ImageExt = "jpg"

	// DocExt is the extension of the intermediate single-page document.
	DocExt = "pdf"
)

// SeparatorBackend identifies the page-separation tool.
type SeparatorBackend string

const (
	SeparatorPdfseparate SeparatorBackend = "pdfseparate"
	SeparatorPdfcpu      SeparatorBackend = "pdfcpu"
)

// PipelineConfig holds everything a run needs. It is built once by the CLI
// from viper and passed explicitly; nothing in the pipeline reads globals.
type PipelineConfig struct {
	// Source is the multi-page document pages are extracted from.
	Source string `json:"source" yaml:"source"`

	// Start and End bound the inclusive page range (1-based).
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`

	// WorkDir is the directory that holds the per-page workspaces (default ".").
	WorkDir string `json:"work_dir" yaml:"work_dir"`

	// FolderTag prefixes every FolderID (default "p").
	FolderTag string `json:"folder_tag" yaml:"folder_tag"`

	// SuffixTag names the final image, <FolderID>_<SuffixTag>.jpg (default "rv25j").
	SuffixTag string `json:"suffix_tag" yaml:"suffix_tag"`

	// Separator selects the page-separation tool.
	Separator SeparatorBackend `json:"separator" yaml:"separator"`

	// LedgerPath is the SQLite run history database. Empty disables the ledger.
	LedgerPath string `json:"ledger,omitempty" yaml:"ledger,omitempty"`

	// ReportPath, when set, receives a YAML or JSON run summary.
	ReportPath string `json:"report,omitempty" yaml:"report,omitempty"`
}

// Validate checks the values a run cannot proceed without. The page range is
// deliberately not checked here; an empty range is a valid, empty run.
func (c PipelineConfig) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("source document not configured")
	}
	if c.FolderTag == "" {
		return fmt.Errorf("folder_tag must not be empty")
	}
	if c.SuffixTag == "" {
		return fmt.Errorf("suffix_tag must not be empty")
	}
	switch c.Separator {
	case SeparatorPdfseparate, SeparatorPdfcpu:
	default:
		return fmt.Errorf("unsupported separator %q: use %s or %s", c.Separator, SeparatorPdfseparate, SeparatorPdfcpu)
	}
	return nil
}
