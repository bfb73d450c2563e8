// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pdiddy/deed-raster/internal/workspace"
	"github.com/pdiddy/deed-raster/pkg/types"
)

// finalize renames the raw raster to the final image name and then removes
// the intermediate document. Removal happens whether or not the raw raster
// was found.
func (p *Pipeline) finalize(pg workspace.Page) (types.PageStatus, string) {
	status, detail := p.rename(pg)
	p.removeIntermediate(pg)
	return status, detail
}

func (p *Pipeline) rename(pg workspace.Page) (types.PageStatus, string) {
	if _, err := os.Stat(pg.RawImage); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			msg := fmt.Sprintf("expected raster %s not found", pg.RawImage)
			p.out.warning(pg.FolderID, "finalize", msg)
			return types.PageMissingRaster, msg
		}
		err = fmt.Errorf("checking raster %s: %w", pg.RawImage, err)
		p.out.failed(pg.FolderID, "finalize", err)
		return types.PageFinalizeFailed, err.Error()
	}

	// os.Rename replaces an existing final image from an earlier run.
	if err := os.Rename(pg.RawImage, pg.FinalImage); err != nil {
		err = fmt.Errorf("renaming %s: %w", pg.RawImage, err)
		p.out.failed(pg.FolderID, "finalize", err)
		return types.PageFinalizeFailed, err.Error()
	}
	p.out.done("finalized", pg.FolderID, pg.FinalImage)
	return types.PageFinalized, ""
}

func (p *Pipeline) removeIntermediate(pg workspace.Page) {
	err := os.Remove(pg.Doc)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		p.out.warning(pg.FolderID, "cleanup", fmt.Sprintf("could not delete %s: %v", pg.Doc, err))
		return
	}
	p.out.done("deleted", pg.FolderID, pg.Doc)
}
