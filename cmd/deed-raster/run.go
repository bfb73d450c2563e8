// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/deed-raster/internal/ledger"
	"github.com/pdiddy/deed-raster/internal/pagerange"
	"github.com/pdiddy/deed-raster/internal/pdftools"
	"github.com/pdiddy/deed-raster/internal/pipeline"
	"github.com/pdiddy/deed-raster/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Extract, rasterize, and rename the configured page range",
	Long: `Run processes every page from start to end of the source document:
the page is separated into its own PDF, rendered at 300 DPI, renamed to
<FolderID>_<suffix>.jpg, and the intermediate PDF is deleted.

Failed pages are reported and skipped. The command exits non-zero only when
the source document is missing or the run cannot start.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("source", "", "source document (overrides config)")
	runCmd.Flags().Int("start", 0, "first page, inclusive (overrides config)")
	runCmd.Flags().Int("end", 0, "last page, inclusive (overrides config)")
	runCmd.Flags().String("work-dir", "", "directory for page workspaces (overrides config)")
	runCmd.Flags().String("report", "", "write a run summary to this .yaml or .json file")

	for key, flag := range map[string]string{
		keySource:  "source",
		keyStart:   "start",
		keyEnd:     "end",
		keyWorkDir: "work-dir",
		keyReport:  "report",
	} {
		if err := viper.BindPFlag(key, runCmd.Flags().Lookup(flag)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := configFrom(viper.GetViper())
	if err := cfg.Validate(); err != nil {
		return err
	}

	rng := pagerange.Range{Start: cfg.Start, End: cfg.End}
	if err := rng.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	sep, err := pdftools.NewSeparator(cfg.Separator)
	if err != nil {
		return err
	}

	// Checked before the lock so a missing source leaves nothing on disk.
	if err := pipeline.CheckSource(cfg.Source); err != nil {
		return err
	}

	lock, err := pipeline.AcquireLock(cfg.WorkDir)
	if err != nil {
		return err
	}
	defer lock.Release()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stdout, "Processing pages %s of %s\n", rng, cfg.Source)
	summary, runErr := pipeline.New(cfg, sep, pdftools.NewRasterizer(), os.Stdout).Run(ctx)
	if errors.Is(runErr, pipeline.ErrSourceMissing) {
		return runErr
	}

	// Interrupted runs are still recorded; the context is already done.
	recordRun(context.WithoutCancel(ctx), cfg, summary, os.Stderr)
	return runErr
}

// recordRun stores the summary in the ledger and writes the report file.
// Neither failure changes the outcome of the run.
func recordRun(ctx context.Context, cfg types.PipelineConfig, summary types.RunSummary, w io.Writer) {
	if cfg.LedgerPath != "" {
		store, err := ledger.Open(cfg.LedgerPath)
		if err != nil {
			fmt.Fprintf(w, "warning: ledger unavailable: %v\n", err)
		} else {
			if err := store.Record(ctx, summary); err != nil {
				fmt.Fprintf(w, "warning: recording run %s: %v\n", summary.RunID, err)
			}
			store.Close()
		}
	}

	if cfg.ReportPath != "" {
		if err := ledger.WriteReport(cfg.ReportPath, summary); err != nil {
			fmt.Fprintf(w, "warning: writing report: %v\n", err)
			return
		}
		fmt.Fprintf(w, "Report written to %s\n", cfg.ReportPath)
	}
}
