// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the deed-raster CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the deed-raster CLI.
var rootCmd = &cobra.Command{
	Use:   "deed-raster",
	Short: "Split a scanned deed document into per-page JPEG images",
	Long: `deed-raster extracts a page range from a multi-page PDF, renders each page
to a 300 DPI JPEG, and leaves one image per page in its own folder:

  p08/p08_rv25j.jpg
  p09/p09_rv25j.jpg

Pages are processed in order. A page that fails is reported and skipped;
the rest of the range still runs.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./deed-raster.yaml or ~/.config/deed-raster/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("deed-raster")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "deed-raster"))
		}
	}

	setDefaults(viper.GetViper())

	viper.SetEnvPrefix("DEED_RASTER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
