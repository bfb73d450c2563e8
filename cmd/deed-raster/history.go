// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/deed-raster/internal/ledger"
	"github.com/pdiddy/deed-raster/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past runs and their per-page outcomes",
	Long: `History reads the run ledger. Without --run it lists recent runs with
their page counts; with --run it lists every page of that run.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("run", "", "show the pages of one run ID")
	historyCmd.Flags().Int("limit", 0, "maximum runs to list (0 = default)")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := configFrom(viper.GetViper())
	if cfg.LedgerPath == "" {
		return fmt.Errorf("run ledger is disabled: set %q in the config", keyLedger)
	}
	if _, err := os.Stat(cfg.LedgerPath); err != nil {
		return fmt.Errorf("no run ledger at %s", cfg.LedgerPath)
	}

	store, err := ledger.Open(cfg.LedgerPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runID, _ := cmd.Flags().GetString("run")
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	ctx := context.Background()
	if runID != "" {
		pages, err := store.Pages(ctx, runID)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(os.Stdout, pages)
		}
		fmt.Fprintln(os.Stdout, pagesTable(pages))
		return nil
	}

	runs, err := store.Runs(ctx, limit)
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(os.Stdout, runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stdout, "No runs recorded.")
		return nil
	}
	fmt.Fprintln(os.Stdout, runsTable(runs))
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runsTable(runs []ledger.RunRecord) string {
	header := table.Row{"Run", "Started", "Source", "Pages", "Final", "Warn", "Skip", "Fail"}
	rows := make([]table.Row, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, table.Row{
			r.ID,
			r.StartedAt.Local().Format(time.DateTime),
			r.Source,
			fmt.Sprintf("%d-%d", r.Start, r.End),
			r.Finalized,
			r.Warnings,
			r.Skipped,
			r.Failed,
		})
	}
	aligns := []text.Align{text.AlignLeft, text.AlignLeft, text.AlignLeft, text.AlignLeft,
		text.AlignRight, text.AlignRight, text.AlignRight, text.AlignRight}
	return renderTable(header, rows, aligns)
}

func pagesTable(pages []types.PageResult) string {
	header := table.Row{"Page", "Folder", "Status", "Image", "Detail"}
	rows := make([]table.Row, 0, len(pages))
	for _, p := range pages {
		rows = append(rows, table.Row{
			p.Page,
			p.FolderID,
			string(p.Status),
			p.FinalImage,
			truncate(p.Detail, maxDetailWidth),
		})
	}
	return renderTable(header, rows, []text.Align{text.AlignRight})
}
