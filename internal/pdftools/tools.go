// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftools wraps the external page-separation and rasterization
// binaries behind narrow interfaces so the pipeline can be tested with fakes.
package pdftools

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pdiddy/deed-raster/pkg/types"
)

const (
	binPdfseparate = "pdfseparate"
	binPdfcpu      = "pdfcpu"
	binPdftoppm    = "pdftoppm"
)

// Separator writes a single page of a source document to its own document.
type Separator interface {
	// Name returns the binary the separator invokes.
	Name() string

	// Separate extracts exactly page from source into outPath. A non-zero
	// exit status is returned as an error.
	Separate(ctx context.Context, source string, page int, outPath string) error
}

// Rasterizer renders a single-page document to an image.
type Rasterizer interface {
	// Name returns the binary the rasterizer invokes.
	Name() string

	// Rasterize renders docPath at dpi as JPEG. The tool chooses the output
	// file name from outBase; for a one-page input that is outBase + "-1.jpg".
	Rasterize(ctx context.Context, docPath, outBase string, dpi int) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

var defaultExec = &osExecutor{}

// tool runs one binary and folds its output into the returned error.
type tool struct {
	bin  string
	exec executor
}

func (t *tool) Name() string { return t.bin }

func (t *tool) run(ctx context.Context, args ...string) error {
	out, err := t.exec.Run(ctx, t.bin, args...)
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s: %w: %s", t.bin, err, msg)
		}
		return fmt.Errorf("%s: %w", t.bin, err)
	}
	return nil
}

// pdfseparate implements Separator with poppler's pdfseparate.
type pdfseparate struct{ tool }

func (p *pdfseparate) Separate(ctx context.Context, source string, page int, outPath string) error {
	n := strconv.Itoa(page)
	return p.run(ctx, "-f", n, "-l", n, source, outPath)
}

// pdfcpuTrim implements Separator with pdfcpu's trim command.
type pdfcpuTrim struct{ tool }

func (p *pdfcpuTrim) Separate(ctx context.Context, source string, page int, outPath string) error {
	return p.run(ctx, "trim", "-pages", strconv.Itoa(page), source, outPath)
}

// pdftoppm implements Rasterizer with poppler's pdftoppm.
type pdftoppm struct{ tool }

func (p *pdftoppm) Rasterize(ctx context.Context, docPath, outBase string, dpi int) error {
	return p.run(ctx, "-jpeg", "-r", strconv.Itoa(dpi), docPath, outBase)
}

func newSeparator(backend types.SeparatorBackend, exec executor) (Separator, error) {
	switch backend {
	case types.SeparatorPdfseparate, "":
		return &pdfseparate{tool{bin: binPdfseparate, exec: exec}}, nil
	case types.SeparatorPdfcpu:
		return &pdfcpuTrim{tool{bin: binPdfcpu, exec: exec}}, nil
	}
	return nil, fmt.Errorf("unsupported separator %q", backend)
}

func newRasterizer(exec executor) Rasterizer {
	return &pdftoppm{tool{bin: binPdftoppm, exec: exec}}
}

// NewSeparator returns the separator for backend backed by os/exec.
func NewSeparator(backend types.SeparatorBackend) (Separator, error) {
	return newSeparator(backend, defaultExec)
}

// NewRasterizer returns the pdftoppm rasterizer backed by os/exec.
func NewRasterizer() Rasterizer {
	return newRasterizer(defaultExec)
}

// ToolStatus reports whether a collaborator binary was found on PATH.
type ToolStatus struct {
	Name  string
	Path  string
	Found bool
}

// Check looks up the binaries the configured backend needs.
func Check(backend types.SeparatorBackend) ([]ToolStatus, error) {
	return check(backend, defaultExec)
}

func check(backend types.SeparatorBackend, exec executor) ([]ToolStatus, error) {
	sep, err := newSeparator(backend, exec)
	if err != nil {
		return nil, err
	}
	bins := []string{sep.Name(), binPdftoppm}
	statuses := make([]ToolStatus, 0, len(bins))
	for _, bin := range bins {
		path, err := exec.LookPath(bin)
		statuses = append(statuses, ToolStatus{Name: bin, Path: path, Found: err == nil})
	}
	return statuses, nil
}
