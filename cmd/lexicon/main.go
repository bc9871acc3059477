// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the lexicon CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lexicon/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the lexicon CLI.
var rootCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Generate words and names from syllable rule files",
	Long: `lexicon generates random words from rule files that declare syllable
groups and a [syllable] chain describing how the groups combine.

Rule files can be given by path, by http(s) URL, or by name once a rules
directory has been indexed with "lexicon catalog index".`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./lexicon.yaml or ~/.config/lexicon/lexicon.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log parser diagnostics and the resolved chain")
	rootCmd.PersistentFlags().String("catalog-dir", "", "directory holding the catalog database")
	rootCmd.PersistentFlags().String("rules-dir", "", "directory scanned for rule files")

	// Flags override env and file values.
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("catalog.dir", rootCmd.PersistentFlags().Lookup("catalog-dir"))
	viper.BindPFlag("catalog.rules_dir", rootCmd.PersistentFlags().Lookup("rules-dir"))

	def := types.DefaultConfig()
	viper.SetDefault("rules", def.Generator.Rules)
	viper.SetDefault("caps", def.Generator.Caps)
	viper.SetDefault("verbose", def.Generator.Verbose)
	viper.SetDefault("count", def.Generator.Count)
	viper.SetDefault("seed", def.Generator.Seed)
	viper.SetDefault("catalog.dir", def.Catalog.Dir)
	viper.SetDefault("catalog.rules_dir", def.Catalog.RulesDir)
	viper.SetDefault("http.timeout", def.HTTP.Timeout)
	viper.SetDefault("http.user_agent", "lexicon/"+version)
	viper.SetDefault("http.max_retries", def.HTTP.MaxRetries)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("lexicon")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "lexicon"))
		}
	}

	viper.SetEnvPrefix("LEXICON")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged viper settings.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// newLogger writes text records to stderr: Debug and up when verbose,
// warnings otherwise.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
