// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pdiddy/techscope/internal/httputil"
	"github.com/pdiddy/techscope/pkg/types"
)

// serpAPIBase is the SerpAPI JSON endpoint. Declared as a var so tests can
// substitute an httptest server.
var serpAPIBase = "https://serpapi.com/search.json"

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "techscope/0.1"
	defaultRPS       = 2.0
	defaultBurst     = 1
)

// noResultsMarker is the error text SerpAPI reports for an empty result
// set. It is an empty batch, not a failure.
const noResultsMarker = "hasn't returned any results"

// SerpAPI is a rate-limited SerpAPI client.
type SerpAPI struct {
	apiKey    string
	baseURL   string
	userAgent string
	limiter   *rate.Limiter
	retrier   httputil.Retrier
	logger    *zap.Logger
}

// NewSerpAPI builds a client from cfg. It returns ErrMissingAPIKey when no
// key is configured.
func NewSerpAPI(cfg types.SerpAPIConfig, logger *zap.Logger) (*SerpAPI, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRPS
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = defaultBurst
	}
	base := cfg.BaseURL
	if base == "" {
		base = serpAPIBase
	}

	return &SerpAPI{
		apiKey:    cfg.APIKey,
		baseURL:   base,
		userAgent: ua,
		limiter:   rate.NewLimiter(rate.Limit(rps), burst),
		retrier: httputil.Retrier{
			Client:     &http.Client{Timeout: timeout},
			MaxRetries: cfg.MaxRetries,
			Logger:     logger,
		},
		logger: logger,
	}, nil
}

type serpResponse struct {
	Response
	Error string `json:"error"`
}

// Search runs one request, waiting for the rate limiter first.
func (c *SerpAPI) Search(ctx context.Context, p Params) (Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Response{}, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	q := p.Values()
	q.Set("api_key", c.apiKey)
	q.Set("output", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Response{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.retrier.Do(ctx, req)
	if err != nil {
		return Response{}, fmt.Errorf("SerpAPI %s request: %w", p.Engine, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Response{}, fmt.Errorf("SerpAPI %s returned HTTP %d: %s", p.Engine, resp.StatusCode, apiError(body))
	}

	var sr serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return Response{}, fmt.Errorf("decoding SerpAPI %s response: %w", p.Engine, err)
	}
	if sr.Error != "" && !strings.Contains(sr.Error, noResultsMarker) {
		return Response{}, fmt.Errorf("SerpAPI %s: %s", p.Engine, sr.Error)
	}

	c.logger.Debug("serpapi search",
		zap.String("engine", p.Engine),
		zap.String("query", p.Query),
		zap.Int("organic", len(sr.OrganicResults)),
		zap.Int("news", len(sr.NewsResults)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return sr.Response, nil
}

// apiError extracts the "error" field of a JSON error body, falling back to
// the raw text.
func apiError(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(body))
}
