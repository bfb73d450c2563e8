package main

import (
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/pdiddy/deed-raster/internal/pipeline"
	"github.com/pdiddy/deed-raster/pkg/types"
)

// Configuration keys. Environment variables use the DEED_RASTER_ prefix,
// e.g. DEED_RASTER_WORK_DIR.
const (
	keySource    = "source"
	keyStart     = "start"
	keyEnd       = "end"
	keyWorkDir   = "work_dir"
	keyFolderTag = "folder_tag"
	keySuffixTag = "suffix_tag"
	keySeparator = "separator"
	keyLedger    = "ledger"
	keyReport    = "report"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault(keySource, "source.pdf")
	v.SetDefault(keyStart, 1)
	v.SetDefault(keyEnd, 1)
	v.SetDefault(keyWorkDir, ".")
	v.SetDefault(keyFolderTag, "p")
	v.SetDefault(keySuffixTag, "rv25j")
	v.SetDefault(keySeparator, string(types.SeparatorPdfseparate))
	v.SetDefault(keyReport, "")
}

// configFrom builds the pipeline configuration from v. When the ledger key
// is unset the ledger lives next to the run lock under work_dir; an explicit
// empty value disables it.
func configFrom(v *viper.Viper) types.PipelineConfig {
	workDir := v.GetString(keyWorkDir)
	ledgerPath := filepath.Join(workDir, pipeline.StateDirName, "runs.db")
	if v.IsSet(keyLedger) {
		ledgerPath = v.GetString(keyLedger)
	}

	return types.PipelineConfig{
		Source:     v.GetString(keySource),
		Start:      v.GetInt(keyStart),
		End:        v.GetInt(keyEnd),
		WorkDir:    workDir,
		FolderTag:  v.GetString(keyFolderTag),
		SuffixTag:  v.GetString(keySuffixTag),
		Separator:  types.SeparatorBackend(v.GetString(keySeparator)),
		LedgerPath: ledgerPath,
		ReportPath: v.GetString(keyReport),
	}
}
