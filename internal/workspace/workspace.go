// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workspace derives the per-page directory and file paths used by
// each pipeline stage.
//
// For page 8 with tag "p" and suffix "rv25j" the layout is:
//
//	p08/p08.pdf        intermediate single-page document
//	p08/p08-1.jpg      raw rasterizer output
//	p08/p08_rv25j.jpg  final image
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdiddy/deed-raster/pkg/types"
)

// padWidth is the minimum number of digits in a FolderID.
const padWidth = 2

// rawSuffix is the page-index suffix pdftoppm appends for a one-page input.
const rawSuffix = "-1"

// FolderID returns tag followed by page zero-padded to two digits.
func FolderID(tag string, page int) string {
	return fmt.Sprintf("%s%0*d", tag, padWidth, page)
}

// ParseFolderID reverses FolderID. It fails when id does not carry tag or the
// remainder is not a padded page number.
func ParseFolderID(tag, id string) (int, error) {
	digits, ok := strings.CutPrefix(id, tag)
	if !ok {
		return 0, fmt.Errorf("folder id %q does not start with tag %q", id, tag)
	}
	if len(digits) < padWidth {
		return 0, fmt.Errorf("folder id %q has fewer than %d digits", id, padWidth)
	}
	page, err := strconv.Atoi(digits)
	if err != nil || page < 0 {
		return 0, fmt.Errorf("folder id %q has no page number", id)
	}
	if FolderID(tag, page) != id {
		return 0, fmt.Errorf("folder id %q is not canonical", id)
	}
	return page, nil
}

// Layout holds the naming convention shared by every page of a run.
type Layout struct {
	// Root is the directory workspaces are created under.
	Root   string
	Tag    string
	Suffix string
}

// NewLayout builds a Layout from the pipeline configuration.
func NewLayout(cfg types.PipelineConfig) Layout {
	root := cfg.WorkDir
	if root == "" {
		root = "."
	}
	return Layout{Root: root, Tag: cfg.FolderTag, Suffix: cfg.SuffixTag}
}

// Page holds the paths of one page's workspace.
type Page struct {
	Number     int
	FolderID   string
	Dir        string
	Doc        string
	ImageBase  string
	RawImage   string
	FinalImage string
}

// Page derives the workspace paths for page. It has no side effects.
func (l Layout) Page(page int) Page {
	id := FolderID(l.Tag, page)
	dir := filepath.Join(l.Root, id)
	base := filepath.Join(dir, id)
	return Page{
		Number:     page,
		FolderID:   id,
		Dir:        dir,
		Doc:        base + "." + types.DocExt,
		ImageBase:  base,
		RawImage:   base + rawSuffix + "." + types.ImageExt,
		FinalImage: base + "_" + l.Suffix + "." + types.ImageExt,
	}
}

// Ensure creates the workspace directory and its parents. An existing
// directory is not an error.
func (p Page) Ensure() error {
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return fmt.Errorf("creating workspace %s: %w", p.Dir, err)
	}
	return nil
}
