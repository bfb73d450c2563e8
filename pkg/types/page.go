// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// PageStatus is the terminal state of one page after a run.
type PageStatus string

const (
	// PageFinalized means the final image was written and the intermediate removed.
	PageFinalized PageStatus = "finalized"

	// PageMissingRaster means rasterization reported success but the expected
	// raw raster was absent. No final image exists; the intermediate was removed.
	PageMissingRaster PageStatus = "missing-raster"

	// PageSkippedWorkspace means the workspace directory could not be created.
	PageSkippedWorkspace PageStatus = "skipped-workspace"

	// PageSkippedSeparation means the page-separation tool failed.
	PageSkippedSeparation PageStatus = "skipped-separation"

	// PageSkippedRasterization means the rasterizer failed. The intermediate
	// document is left in place for inspection.
	PageSkippedRasterization PageStatus = "skipped-rasterization"

	// PageFinalizeFailed means the raw raster existed but could not be renamed.
	PageFinalizeFailed PageStatus = "finalize-failed"
)

// Skipped reports whether the page stopped before the finalize stage.
func (s PageStatus) Skipped() bool {
	switch s {
	case PageSkippedWorkspace, PageSkippedSeparation, PageSkippedRasterization:
		return true
	}
	return false
}

// PageResult records the outcome of processing a single page.
type PageResult struct {
	Page       int           `json:"page" yaml:"page"`
	FolderID   string        `json:"folder_id" yaml:"folder_id"`
	Status     PageStatus    `json:"status" yaml:"status"`
	FinalImage string        `json:"final_image,omitempty" yaml:"final_image,omitempty"`
	Detail     string        `json:"detail,omitempty" yaml:"detail,omitempty"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
}

// RunSummary collects every page result of one run over the configured range.
type RunSummary struct {
	RunID      string       `json:"run_id" yaml:"run_id"`
	Source     string       `json:"source" yaml:"source"`
	Start      int          `json:"start" yaml:"start"`
	End        int          `json:"end" yaml:"end"`
	StartedAt  time.Time    `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time    `json:"finished_at" yaml:"finished_at"`
	Pages      []PageResult `json:"pages" yaml:"pages"`
}

// Add appends a page result.
func (s *RunSummary) Add(r PageResult) {
	s.Pages = append(s.Pages, r)
}

// Count returns the number of pages that ended in status.
func (s RunSummary) Count(status PageStatus) int {
	n := 0
	for _, p := range s.Pages {
		if p.Status == status {
			n++
		}
	}
	return n
}

// Finalized returns the number of pages with a final image.
func (s RunSummary) Finalized() int {
	return s.Count(PageFinalized)
}

// Warnings returns the number of pages that reached cleanup without a final image.
func (s RunSummary) Warnings() int {
	return s.Count(PageMissingRaster)
}

// Skipped returns the number of pages that stopped before the finalize stage.
func (s RunSummary) Skipped() int {
	n := 0
	for _, p := range s.Pages {
		if p.Status.Skipped() {
			n++
		}
	}
	return n
}

// Failed returns the number of pages whose final rename failed.
func (s RunSummary) Failed() int {
	return s.Count(PageFinalizeFailed)
}

// Total returns the number of pages processed.
func (s RunSummary) Total() int {
	return len(s.Pages)
}

// HasProblems reports whether any page did not finalize cleanly.
func (s RunSummary) HasProblems() bool {
	return s.Finalized() != s.Total()
}
