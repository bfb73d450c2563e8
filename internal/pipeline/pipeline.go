// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline turns a page range of one source document into final
// page images: separate, rasterize, rename, clean up. Pages run strictly in
// order and a failing page never stops the batch.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/deed-raster/internal/pagerange"
	"github.com/pdiddy/deed-raster/internal/pdftools"
	"github.com/pdiddy/deed-raster/internal/workspace"
	"github.com/pdiddy/deed-raster/pkg/types"
)

// ErrSourceMissing is returned by Run when the source document does not exist.
var ErrSourceMissing = errors.New("source document not found")

// Pipeline processes pages with the injected collaborators.
type Pipeline struct {
	cfg    types.PipelineConfig
	layout workspace.Layout
	sep    pdftools.Separator
	ras    pdftools.Rasterizer
	out    reporter
	now    func() time.Time
}

// New returns a pipeline for cfg. Progress lines are written to w.
func New(cfg types.PipelineConfig, sep pdftools.Separator, ras pdftools.Rasterizer, w io.Writer) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		layout: workspace.NewLayout(cfg),
		sep:    sep,
		ras:    ras,
		out:    reporter{w: w},
		now:    time.Now,
	}
}

// Run processes every page of the configured range. It fails before any page
// is touched when the source document is missing, and stops between pages
// when ctx is cancelled. Page failures are recorded in the summary only.
func (p *Pipeline) Run(ctx context.Context) (types.RunSummary, error) {
	summary := types.RunSummary{
		RunID:     uuid.NewString(),
		Source:    p.cfg.Source,
		Start:     p.cfg.Start,
		End:       p.cfg.End,
		StartedAt: p.now().UTC(),
	}

	if err := CheckSource(p.cfg.Source); err != nil {
		return summary, err
	}

	for page := range (pagerange.Range{Start: p.cfg.Start, End: p.cfg.End}).All() {
		if err := ctx.Err(); err != nil {
			summary.FinishedAt = p.now().UTC()
			p.out.summary(summary)
			return summary, fmt.Errorf("run interrupted before page %d: %w", page, err)
		}
		summary.Add(p.ProcessPage(ctx, page))
	}

	summary.FinishedAt = p.now().UTC()
	p.out.summary(summary)
	return summary, nil
}

// CheckSource fails with ErrSourceMissing when path is absent or a directory.
func CheckSource(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrSourceMissing, path)
		}
		return fmt.Errorf("checking source document: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrSourceMissing, path)
	}
	return nil
}

// ProcessPage runs all stages for one page and returns its outcome.
// A separation or rasterization failure ends the page early. Cancelling ctx
// does not interrupt a running collaborator; Run stops between pages.
func (p *Pipeline) ProcessPage(ctx context.Context, page int) types.PageResult {
	ctx = context.WithoutCancel(ctx)
	started := p.now()
	pg := p.layout.Page(page)
	res := types.PageResult{Page: page, FolderID: pg.FolderID}

	finish := func(status types.PageStatus, detail string) types.PageResult {
		res.Status = status
		res.Detail = detail
		res.Duration = p.now().Sub(started)
		return res
	}

	if err := pg.Ensure(); err != nil {
		p.out.failed(pg.FolderID, "workspace", err)
		return finish(types.PageSkippedWorkspace, err.Error())
	}

	if err := p.sep.Separate(ctx, p.cfg.Source, page, pg.Doc); err != nil {
		err = fmt.Errorf("%s could not extract page %d: %w", p.sep.Name(), page, err)
		p.out.failed(pg.FolderID, "separate", err)
		return finish(types.PageSkippedSeparation, err.Error())
	}
	p.out.done("separated", pg.FolderID, fmt.Sprintf("page %d -> %s", page, pg.Doc))

	if err := p.ras.Rasterize(ctx, pg.Doc, pg.ImageBase, types.DPI); err != nil {
		err = fmt.Errorf("%s could not render page %d from %s: %w", p.ras.Name(), page, pg.Doc, err)
		p.out.failed(pg.FolderID, "rasterize", err)
		return finish(types.PageSkippedRasterization, err.Error())
	}
	p.out.done("rasterized", pg.FolderID, fmt.Sprintf("%d dpi", types.DPI))

	status, detail := p.finalize(pg)
	if status == types.PageFinalized {
		res.FinalImage = pg.FinalImage
	}
	return finish(status, detail)
}
