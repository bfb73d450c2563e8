// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/deed-raster/internal/ledger"
	"github.com/pdiddy/deed-raster/internal/pipeline"
	"github.com/pdiddy/deed-raster/pkg/types"
)

func TestConfigFrom_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := configFrom(v)
	assert.Equal(t, "source.pdf", cfg.Source)
	assert.Equal(t, 1, cfg.Start)
	assert.Equal(t, 1, cfg.End)
	assert.Equal(t, ".", cfg.WorkDir)
	assert.Equal(t, "p", cfg.FolderTag)
	assert.Equal(t, "rv25j", cfg.SuffixTag)
	assert.Equal(t, types.SeparatorPdfseparate, cfg.Separator)
	assert.Equal(t, filepath.Join(".deed-raster", "runs.db"), cfg.LedgerPath)
	assert.Empty(t, cfg.ReportPath)
	assert.NoError(t, cfg.Validate())
}

func TestConfigFrom_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deed-raster.yaml")
	content := `source: RV25j_deeds.pdf
start: 8
end: 9
folder_tag: p
suffix_tag: rv25j
separator: pdfcpu
ledger: ""
report: out/run.json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg := configFrom(v)
	assert.Equal(t, "RV25j_deeds.pdf", cfg.Source)
	assert.Equal(t, 8, cfg.Start)
	assert.Equal(t, 9, cfg.End)
	assert.Equal(t, types.SeparatorPdfcpu, cfg.Separator)
	assert.Empty(t, cfg.LedgerPath, "empty ledger disables it")
	assert.Equal(t, "out/run.json", cfg.ReportPath)
}

func TestConfigFrom_LedgerFollowsWorkDir(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set(keyWorkDir, "/srv/deeds")

	cfg := configFrom(v)
	assert.Equal(t, filepath.Join("/srv/deeds", ".deed-raster", "runs.db"), cfg.LedgerPath)

	v.Set(keyLedger, "/var/lib/deed-raster/runs.db")
	assert.Equal(t, "/var/lib/deed-raster/runs.db", configFrom(v).LedgerPath)
}

func TestRunRun_MissingSourceLeavesNoState(t *testing.T) {
	dir := t.TempDir()
	viper.Reset()
	t.Cleanup(viper.Reset)
	setDefaults(viper.GetViper())
	viper.Set(keySource, filepath.Join(dir, "absent.pdf"))
	viper.Set(keyWorkDir, dir)

	err := runRun(runCmd, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, pipeline.ErrSourceMissing)

	_, statErr := os.Stat(filepath.Join(dir, pipeline.StateDirName))
	assert.True(t, os.IsNotExist(statErr), "state directory should not be created")
}

func TestConfigFrom_Env(t *testing.T) {
	t.Setenv("DEED_RASTER_START", "12")
	t.Setenv("DEED_RASTER_WORK_DIR", "/tmp/pages")

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("DEED_RASTER")
	v.AutomaticEnv()

	cfg := configFrom(v)
	assert.Equal(t, 12, cfg.Start)
	assert.Equal(t, "/tmp/pages", cfg.WorkDir)
}

func TestValidate_Rejects(t *testing.T) {
	base := types.PipelineConfig{Source: "a.pdf", FolderTag: "p", SuffixTag: "rv25j", Separator: types.SeparatorPdfseparate}

	tests := []struct {
		name   string
		mutate func(*types.PipelineConfig)
		errMsg string
	}{
		{"no source", func(c *types.PipelineConfig) { c.Source = "" }, "source"},
		{"no folder tag", func(c *types.PipelineConfig) { c.FolderTag = "" }, "folder_tag"},
		{"no suffix tag", func(c *types.PipelineConfig) { c.SuffixTag = "" }, "suffix_tag"},
		{"bad separator", func(c *types.PipelineConfig) { c.Separator = "qpdf" }, "qpdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func sampleRun() types.RunSummary {
	started := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	return types.RunSummary{
		RunID:      "run-abc",
		Source:     "deed.pdf",
		Start:      8,
		End:        9,
		StartedAt:  started,
		FinishedAt: started.Add(time.Minute),
		Pages: []types.PageResult{
			{Page: 8, FolderID: "p08", Status: types.PageFinalized, FinalImage: "p08/p08_rv25j.jpg"},
			{Page: 9, FolderID: "p09", Status: types.PageSkippedSeparation, Detail: strings.Repeat("x", 80)},
		},
	}
}

func TestRecordRun(t *testing.T) {
	dir := t.TempDir()
	cfg := types.PipelineConfig{
		LedgerPath: filepath.Join(dir, ".deed-raster", "runs.db"),
		ReportPath: filepath.Join(dir, "report.yaml"),
	}
	var log bytes.Buffer

	recordRun(context.Background(), cfg, sampleRun(), &log)

	assert.NotContains(t, log.String(), "warning")
	assert.Contains(t, log.String(), "Report written to")
	_, err := os.Stat(cfg.ReportPath)
	require.NoError(t, err)

	store, err := ledger.Open(cfg.LedgerPath)
	require.NoError(t, err)
	defer store.Close()
	runs, err := store.Runs(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-abc", runs[0].ID)
	assert.Equal(t, 1, runs[0].Skipped)
}

func TestRecordRun_ReportFailureIsWarning(t *testing.T) {
	cfg := types.PipelineConfig{ReportPath: filepath.Join(t.TempDir(), "report.txt")}
	var log bytes.Buffer

	recordRun(context.Background(), cfg, sampleRun(), &log)
	assert.Contains(t, log.String(), "warning: writing report")
}

func TestRunsTable(t *testing.T) {
	s := sampleRun()
	out := runsTable([]ledger.RunRecord{{
		ID:        s.RunID,
		Source:    s.Source,
		Start:     s.Start,
		End:       s.End,
		StartedAt: s.StartedAt,
		Finalized: 1,
		Skipped:   1,
	}})
	for _, want := range []string{"run-abc", "deed.pdf", "8-9"} {
		assert.Contains(t, out, want)
	}
}

func TestPagesTable(t *testing.T) {
	out := pagesTable(sampleRun().Pages)
	assert.Contains(t, out, "p08_rv25j.jpg")
	assert.Contains(t, out, "skipped-separation")
	assert.Contains(t, out, "...")
	assert.NotContains(t, out, strings.Repeat("x", 80))
}

func TestRenderTable_Empty(t *testing.T) {
	assert.Empty(t, renderTable(nil, nil, nil))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))

	// Thai path segments are multi-byte; the cut must land on a rune boundary.
	detail := "expected raster โฉนด/โฉนด-1.jpg not found in workspace"
	got := truncate(detail, 20)
	assert.True(t, utf8.ValidString(got), "truncated detail %q is not valid UTF-8", got)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, utf8.RuneCountInString(got), 20)
}
