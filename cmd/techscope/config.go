// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/techscope/internal/export"
	"github.com/pdiddy/techscope/internal/history"
	"github.com/pdiddy/techscope/internal/pipeline"
	"github.com/pdiddy/techscope/internal/search"
	"github.com/pdiddy/techscope/internal/secrets"
	"github.com/pdiddy/techscope/internal/server"
	"github.com/pdiddy/techscope/pkg/types"
)

const (
	defaultDataDir     = "data"
	defaultHistoryPath = history.DefaultPath
)

// setDefaults registers every configuration key so that environment
// variables are honored for all of them.
func setDefaults(v *viper.Viper) {
	fetch := types.DefaultFetchConfig()

	v.SetDefault("debug", false)

	v.SetDefault("serpapi.api_key", "")
	v.SetDefault("serpapi.base_url", "")
	v.SetDefault("serpapi.timeout", 30*time.Second)
	v.SetDefault("serpapi.user_agent", "techscope/"+version)
	v.SetDefault("serpapi.requests_per_second", 2.0)
	v.SetDefault("serpapi.burst", 1)
	v.SetDefault("serpapi.max_retries", 5)

	v.SetDefault("fetch.patents", fetch.Patents)
	v.SetDefault("fetch.papers", fetch.Papers)
	v.SetDefault("fetch.companies", fetch.Companies)
	v.SetDefault("fetch.funding", fetch.Funding)
	v.SetDefault("fetch.market", fetch.Market)
	v.SetDefault("fetch.news", fetch.News)
	v.SetDefault("fetch.recent_patents", fetch.RecentPatents)
	v.SetDefault("fetch.news_window", fetch.NewsWindow)

	v.SetDefault("output.data_dir", defaultDataDir)
	v.SetDefault("output.snapshot_dir", "")
	v.SetDefault("output.replay", false)

	v.SetDefault("history.path", defaultHistoryPath)

	v.SetDefault("server.addr", server.DefaultAddr)
	v.SetDefault("server.request_timeout", server.DefaultRequestTimeout)
}

// decodeConfig reads the typed configuration from v. A SerpAPI key from
// the secrets directory is used only when no other source set one.
func decodeConfig(v *viper.Viper, s secrets.Secrets) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	if cfg.SerpAPI.APIKey == "" {
		cfg.SerpAPI.APIKey = s.Get(secrets.SerpAPIKey, "")
	}
	return cfg, nil
}

func loadConfig() (types.Config, error) {
	return decodeConfig(viper.GetViper(), loadedSecrets)
}

// newSource builds the search source: snapshot replay, or live SerpAPI
// optionally wrapped by a snapshot recorder.
func newSource(cfg types.Config, logger *zap.Logger) (search.Source, error) {
	if cfg.Output.Replay {
		if cfg.Output.SnapshotDir == "" {
			return nil, errors.New("--replay requires --snapshot-dir")
		}
		return &search.SnapshotSource{Dir: cfg.Output.SnapshotDir}, nil
	}

	live, err := search.NewSerpAPI(cfg.SerpAPI, logger)
	if err != nil {
		if errors.Is(err, search.ErrMissingAPIKey) {
			return nil, fmt.Errorf("%w: set TECHSCOPE_SERPAPI_API_KEY or write the key to %s/%s",
				err, secrets.DefaultDir, secrets.SerpAPIKey)
		}
		return nil, err
	}
	if cfg.Output.SnapshotDir != "" {
		return &search.Recorder{Next: live, Dir: cfg.Output.SnapshotDir, Logger: logger}, nil
	}
	return live, nil
}

func newPipeline(cfg types.Config, logger *zap.Logger) (*pipeline.Pipeline, error) {
	src, err := newSource(cfg, logger)
	if err != nil {
		return nil, err
	}
	return pipeline.New(search.NewFetcher(src, cfg.Fetch, logger), logger), nil
}

func newWriter(cfg types.Config) export.Writer {
	return export.Writer{Dir: cfg.Output.DataDir}
}

// openHistory opens the run history. A failure is logged and reported as
// a nil store so that runs still complete without it.
func openHistory(cfg types.Config, logger *zap.Logger) *history.Store {
	h, err := history.NewStore(cfg.History)
	if err != nil {
		logger.Warn("run history unavailable", zap.String("path", cfg.History.Path), zap.Error(err))
		return nil
	}
	return h
}
