// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"io"

	"github.com/pdiddy/deed-raster/pkg/types"
)

// reporter writes one human-readable line per stage outcome.
type reporter struct {
	w io.Writer
}

func (r reporter) done(verb, folderID, detail string) {
	fmt.Fprintf(r.w, "%-11s %s (%s)\n", verb+":", folderID, detail)
}

func (r reporter) failed(folderID, stage string, err error) {
	fmt.Fprintf(r.w, "%-11s %s %s (%v)\n", "failed:", folderID, stage, err)
}

func (r reporter) warning(folderID, stage, msg string) {
	fmt.Fprintf(r.w, "%-11s %s %s (%s)\n", "warning:", folderID, stage, msg)
}

func (r reporter) summary(s types.RunSummary) {
	fmt.Fprintf(r.w, "\nRun summary: %d finalized, %d warnings, %d skipped, %d failed (total: %d)\n",
		s.Finalized(), s.Warnings(), s.Skipped(), s.Failed(), s.Total())
}
