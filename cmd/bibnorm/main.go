// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the bibnorm CLI.
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

// rootCmd is the base command for the bibnorm CLI.
var rootCmd = &cobra.Command{
	Use:   "bibnorm",
	Short: "Normalize BibTeX files with deterministic citation keys",
	Long: `bibnorm rewrites a BibTeX file with deterministic, human-readable
citation keys (surname + year, plus a title abbreviation on collision),
drops entries that duplicate an earlier entry's title, and preserves all
non-entry content verbatim. The input file is never modified; output goes
to a sibling file.

Use format to rewrite a file and catalog to query records kept by
previous runs.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./bibnorm.yaml or ~/.config/bibnorm/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bibnorm")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bibnorm"))
		}
	}

	viper.SetEnvPrefix("BIBNORM")
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
