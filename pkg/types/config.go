// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "techscope/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SerpAPIConfig holds settings for the SerpAPI data source.
type SerpAPIConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// APIKey authenticates requests. It is never written back to disk.
	APIKey string `json:"-" yaml:"-" mapstructure:"api_key"`

	// BaseURL overrides the search endpoint (default https://serpapi.com/search.json).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`

	// RequestsPerSecond caps outgoing requests (default 2). Burst is the
	// limiter bucket size (default 1).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `json:"burst" yaml:"burst" mapstructure:"burst"`

	// MaxRetries is the number of retries on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// FetchConfig sets the result count requested per entity kind.
type FetchConfig struct {
	Patents   int `json:"patents" yaml:"patents" mapstructure:"patents"`
	Papers    int `json:"papers" yaml:"papers" mapstructure:"papers"`
	Companies int `json:"companies" yaml:"companies" mapstructure:"companies"`
	Funding   int `json:"funding" yaml:"funding" mapstructure:"funding"`
	Market    int `json:"market" yaml:"market" mapstructure:"market"`

	// News and RecentPatents size the global pulse batches.
	News          int `json:"news" yaml:"news" mapstructure:"news"`
	RecentPatents int `json:"recent_patents" yaml:"recent_patents" mapstructure:"recent_patents"`

	// NewsWindow is the google_news recency window, e.g. "2d".
	NewsWindow string `json:"news_window" yaml:"news_window" mapstructure:"news_window"`
}

// DefaultFetchConfig returns the stock result counts.
func DefaultFetchConfig() FetchConfig {
	return FetchConfig{
		Patents:       20,
		Papers:        20,
		Companies:     10,
		Funding:       10,
		Market:        10,
		News:          40,
		RecentPatents: 40,
		NewsWindow:    "2d",
	}
}

// OutputConfig controls where artifacts and snapshots go.
type OutputConfig struct {
	// DataDir is the artifact root (contains tech/ and global/).
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`

	// SnapshotDir, when set, records every raw search response as YAML.
	SnapshotDir string `json:"snapshot_dir,omitempty" yaml:"snapshot_dir,omitempty" mapstructure:"snapshot_dir"`

	// Replay serves searches from SnapshotDir instead of the network.
	Replay bool `json:"replay" yaml:"replay" mapstructure:"replay"`
}

// HistoryConfig locates the run-history database.
type HistoryConfig struct {
	// Path is the SQLite file (default data/history.db).
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// RequestTimeout bounds a single request, including pipeline runs.
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout" mapstructure:"request_timeout"`
}

// Config groups all settings for the techscope CLI and server.
type Config struct {
	Debug   bool          `json:"debug" yaml:"debug" mapstructure:"debug"`
	SerpAPI SerpAPIConfig `json:"serpapi" yaml:"serpapi" mapstructure:"serpapi"`
	Fetch   FetchConfig   `json:"fetch" yaml:"fetch" mapstructure:"fetch"`
	Output  OutputConfig  `json:"output" yaml:"output" mapstructure:"output"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
}
