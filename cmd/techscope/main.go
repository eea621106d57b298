// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the techscope CLI. It runs the
// technology intelligence pipeline, the global pulse, and the HTTP API.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/techscope/internal/logging"
	"github.com/pdiddy/techscope/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// loadedSecrets holds credentials loaded from .secrets/ at startup.
	loadedSecrets secrets.Secrets

	// logger is built once the configuration is known.
	logger = zap.NewNop()
)

// rootCmd is the base command for the techscope CLI.
var rootCmd = &cobra.Command{
	Use:   "techscope",
	Short: "Technology intelligence from patents, papers, companies and markets",
	Long: `techscope collects patents, academic papers, companies, funding news and
market reports for a technology through SerpAPI, derives trends, a market
forecast, a maturity score, a hype-cycle stage, a country investment index
and an entity graph, and writes dashboard JSON under the data directory.

Run a technology with "techscope run <technology>", refresh the global news
pulse with "techscope pulse", or serve the artifacts with "techscope serve".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(viper.GetBool("debug"))
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		logger = l

		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug("using config file", zap.String("path", f))
		}

		s, err := secrets.Load(secrets.DefaultDir, logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			logger.Debug("loaded secrets", zap.Strings("keys", s.Keys()))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./techscope.yaml or ~/.config/techscope/techscope.yaml)")
	pf.Bool("debug", false, "enable debug logging")
	pf.String("data-dir", defaultDataDir, "artifact directory (contains tech/ and global/)")
	pf.String("snapshot-dir", "", "record raw search responses as YAML in this directory")
	pf.Bool("replay", false, "serve searches from --snapshot-dir instead of SerpAPI")
	pf.String("history-db", defaultHistoryPath, "run history SQLite database")

	for key, flag := range map[string]string{
		"debug":               "debug",
		"output.data_dir":     "data-dir",
		"output.snapshot_dir": "snapshot-dir",
		"output.replay":       "replay",
		"history.path":        "history-db",
	} {
		_ = viper.BindPFlag(key, pf.Lookup(flag))
	}
}

func initConfig() {
	// A missing .env is normal.
	_ = godotenv.Load(".env")

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("techscope")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "techscope"))
		}
	}

	setDefaults(viper.GetViper())
	viper.SetEnvPrefix("TECHSCOPE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("serpapi.api_key", "TECHSCOPE_SERPAPI_API_KEY", "SERPAPI_API_KEY")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "warning: reading config:", err)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
