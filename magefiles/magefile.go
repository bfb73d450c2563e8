//go:build mage

// Package main contains Mage build targets for deed-raster developer tooling.
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"github.com/pdiddy/deed-raster/internal/pdftools"
	"github.com/pdiddy/deed-raster/pkg/types"
)

const (
	binDir  = "bin"
	binName = "deed-raster"
	cmdPkg  = "./cmd/deed-raster"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	ldflags := "-X main.version=" + version
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Tools reports whether the separator selected by DEED_RASTER_SEPARATOR
// (default pdfseparate) and pdftoppm are on PATH.
func Tools() error {
	backend := types.SeparatorBackend(os.Getenv("DEED_RASTER_SEPARATOR"))
	statuses, err := pdftools.Check(backend)
	if err != nil {
		return err
	}

	var missing []string
	for _, s := range statuses {
		if !s.Found {
			fmt.Printf("  missing  %s\n", s.Name)
			missing = append(missing, s.Name)
			continue
		}
		fmt.Printf("  found    %s (%s)\n", s.Name, s.Path)
	}
	if len(missing) > 0 {
		return fmt.Errorf("tool(s) missing: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Run builds the binary and processes the configured page range.
func Run() error {
	mg.Deps(Build, Tools)
	return sh.RunV(filepath.Join(binDir, binName), "run")
}

// Stats prints project metrics: Go production and test LOC.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	return nil
}

// countGoLines walks the directory tree and counts non-blank lines in Go files.
// If testOnly is true, count only _test.go files; otherwise count non-test .go files.
// Directories starting with "_" or "." are skipped, as the go tool does.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (name[0] == '_' || name[0] == '.') {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" || strings.HasSuffix(path, "_test.go") != testOnly {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		for _, line := range bytes.Split(data, []byte("\n")) {
			if len(bytes.TrimSpace(line)) > 0 {
				total++
			}
		}
		return nil
	})
	return total, err
}
