// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/techscope/pkg/types"
)

// PulseNewsQuery is the google_news query of the global pulse.
const PulseNewsQuery = "technology OR artificial intelligence OR semiconductor OR robotics OR defense"

// PulsePatentQuery is the google_patents query of the global pulse.
const PulsePatentQuery = "technology"

// Fetcher issues the per-kind searches and converts results into typed,
// de-duplicated record batches. Later records repeating an earlier title
// (company name for companies) are dropped.
type Fetcher struct {
	src    Source
	counts types.FetchConfig
	logger *zap.Logger
}

// NewFetcher wraps src. Zero counts fall back to the defaults.
func NewFetcher(src Source, counts types.FetchConfig, logger *zap.Logger) *Fetcher {
	def := types.DefaultFetchConfig()
	pick := func(v, d int) int {
		if v > 0 {
			return v
		}
		return d
	}
	counts.Patents = pick(counts.Patents, def.Patents)
	counts.Papers = pick(counts.Papers, def.Papers)
	counts.Companies = pick(counts.Companies, def.Companies)
	counts.Funding = pick(counts.Funding, def.Funding)
	counts.Market = pick(counts.Market, def.Market)
	counts.News = pick(counts.News, def.News)
	counts.RecentPatents = pick(counts.RecentPatents, def.RecentPatents)
	if counts.NewsWindow == "" {
		counts.NewsWindow = def.NewsWindow
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{src: src, counts: counts, logger: logger}
}

func (f *Fetcher) organic(ctx context.Context, kind string, p Params) ([]RawResult, error) {
	resp, err := f.src.Search(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", kind, err)
	}
	f.logger.Debug("fetched batch", zap.String("kind", kind), zap.String("engine", p.Engine), zap.Int("count", len(resp.OrganicResults)))
	return resp.OrganicResults, nil
}

// Patents searches google_patents for tech.
func (f *Fetcher) Patents(ctx context.Context, tech string) ([]types.Patent, error) {
	rs, err := f.organic(ctx, "patents", Params{Engine: EnginePatents, Query: tech, Num: f.counts.Patents})
	if err != nil {
		return nil, err
	}
	out := make([]types.Patent, 0, len(rs))
	for _, r := range rs {
		link := r.Link
		if link == "" {
			link = r.PatentLink
		}
		out = append(out, types.Patent{
			Title:           r.Title,
			Snippet:         r.Snippet,
			Link:            link,
			PublicationDate: r.PublicationDate,
			FilingDate:      r.FilingDate,
			PriorityDate:    r.PriorityDate,
			Technology:      tech,
		})
	}
	return dedupe(out, func(p types.Patent) string { return p.Title }), nil
}

// Papers searches google_scholar for tech.
func (f *Fetcher) Papers(ctx context.Context, tech string) ([]types.Paper, error) {
	rs, err := f.organic(ctx, "papers", Params{Engine: EngineScholar, Query: tech, Num: f.counts.Papers})
	if err != nil {
		return nil, err
	}
	out := make([]types.Paper, 0, len(rs))
	for _, r := range rs {
		p := types.Paper{Title: r.Title, Snippet: r.Snippet, Link: r.Link, Technology: tech}
		if info := r.PublicationInfo; info != nil {
			p.YearField = string(info.Year)
			for _, a := range info.Authors {
				p.Authors = append(p.Authors, a.Name)
			}
		}
		out = append(out, p)
	}
	return dedupe(out, func(p types.Paper) string { return p.Title }), nil
}

// Companies searches the web for companies working on tech.
func (f *Fetcher) Companies(ctx context.Context, tech string) ([]types.Company, error) {
	q := "top companies working on " + tech
	rs, err := f.organic(ctx, "companies", Params{Engine: EngineGoogle, Query: q, Num: f.counts.Companies})
	if err != nil {
		return nil, err
	}
	out := make([]types.Company, 0, len(rs))
	for _, r := range rs {
		out = append(out, types.Company{Name: r.Title, Description: r.Snippet, Link: r.Link})
	}
	return dedupe(out, func(c types.Company) string { return c.Name }), nil
}

// Funding searches the web for investment and government programmes.
// IDs are 1-based positions in the upstream batch.
func (f *Fetcher) Funding(ctx context.Context, tech string) ([]types.Funding, error) {
	q := tech + " funding government investment VC R&D"
	rs, err := f.organic(ctx, "funding", Params{Engine: EngineGoogle, Query: q, Num: f.counts.Funding})
	if err != nil {
		return nil, err
	}
	out := make([]types.Funding, 0, len(rs))
	for i, r := range rs {
		out = append(out, types.Funding{ID: i + 1, Title: r.Title, Snippet: r.Snippet, Link: r.Link, Technology: tech})
	}
	return dedupe(out, func(fu types.Funding) string { return fu.Title }), nil
}

// Market searches the web for market size reports.
func (f *Fetcher) Market(ctx context.Context, tech string) ([]types.MarketReport, error) {
	q := tech + " market size CAGR forecast 2030"
	rs, err := f.organic(ctx, "market", Params{Engine: EngineGoogle, Query: q, Num: f.counts.Market})
	if err != nil {
		return nil, err
	}
	out := make([]types.MarketReport, 0, len(rs))
	for _, r := range rs {
		out = append(out, types.MarketReport{Title: r.Title, Snippet: r.Snippet, Link: r.Link, Technology: tech})
	}
	return dedupe(out, func(m types.MarketReport) string { return m.Title }), nil
}

// News fetches recent technology headlines for the global pulse.
func (f *Fetcher) News(ctx context.Context) ([]types.Signal, error) {
	p := Params{
		Engine: EngineNews,
		Query:  PulseNewsQuery,
		Num:    f.counts.News,
		When:   f.counts.NewsWindow,
		HL:     "en",
		GL:     "us",
	}
	resp, err := f.src.Search(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("fetching news: %w", err)
	}
	out := make([]types.Signal, 0, len(resp.NewsResults))
	for _, r := range resp.NewsResults {
		out = append(out, types.Signal{
			Title:      r.Title,
			Snippet:    r.Snippet,
			Source:     string(r.Source),
			Link:       r.Link,
			Date:       r.Date,
			SignalType: types.SignalNews,
		})
	}
	f.logger.Debug("fetched batch", zap.String("kind", "news"), zap.Int("count", len(out)))
	return out, nil
}

// RecentPatents fetches the newest patents for the global pulse.
func (f *Fetcher) RecentPatents(ctx context.Context) ([]types.Signal, error) {
	rs, err := f.organic(ctx, "recent patents", Params{
		Engine: EnginePatents,
		Query:  PulsePatentQuery,
		Num:    f.counts.RecentPatents,
		Sort:   "new",
	})
	if err != nil {
		return nil, err
	}
	out := make([]types.Signal, 0, len(rs))
	for _, r := range rs {
		link := r.Link
		if link == "" {
			link = r.PatentLink
		}
		out = append(out, types.Signal{
			Title:      r.Title,
			Snippet:    r.Snippet,
			Link:       link,
			Date:       r.PublicationDate,
			SignalType: types.SignalPatent,
		})
	}
	return out, nil
}

// dedupe keeps the first record for each key.
func dedupe[T any](records []T, key func(T) string) []T {
	seen := make(map[string]struct{}, len(records))
	out := make([]T, 0, len(records))
	for _, r := range records {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}
