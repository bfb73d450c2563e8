package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/deed-raster/internal/pdftools"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the external tools and source document are available",
	Long: `Check looks up the page-separation tool (pdfseparate or pdfcpu) and the
rasterizer (pdftoppm) on PATH and confirms the source document exists.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := configFrom(viper.GetViper())
	if err := cfg.Validate(); err != nil {
		return err
	}

	statuses, err := pdftools.Check(cfg.Separator)
	if err != nil {
		return err
	}

	missing := 0
	for _, s := range statuses {
		if s.Found {
			fmt.Fprintf(os.Stdout, "found:   %-12s %s\n", s.Name, s.Path)
			continue
		}
		fmt.Fprintf(os.Stdout, "missing: %s\n", s.Name)
		missing++
	}

	if _, err := os.Stat(cfg.Source); err != nil {
		fmt.Fprintf(os.Stdout, "missing: source document %s\n", cfg.Source)
		missing++
	} else {
		fmt.Fprintf(os.Stdout, "found:   %-12s %s\n", "source", cfg.Source)
	}

	if missing > 0 {
		return fmt.Errorf("%d requirement(s) missing", missing)
	}
	return nil
}
