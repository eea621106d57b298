// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs a technology through fetch, enrichment and
// analytics, and assembles the global pulse.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/techscope/internal/alerts"
	"github.com/pdiddy/techscope/internal/enrich"
	"github.com/pdiddy/techscope/internal/graph"
	"github.com/pdiddy/techscope/internal/investment"
	"github.com/pdiddy/techscope/internal/market"
	"github.com/pdiddy/techscope/internal/maturity"
	"github.com/pdiddy/techscope/internal/trend"
	"github.com/pdiddy/techscope/pkg/types"
)

// Fetcher supplies de-duplicated record batches. *search.Fetcher
// implements it.
type Fetcher interface {
	Patents(ctx context.Context, tech string) ([]types.Patent, error)
	Papers(ctx context.Context, tech string) ([]types.Paper, error)
	Companies(ctx context.Context, tech string) ([]types.Company, error)
	Funding(ctx context.Context, tech string) ([]types.Funding, error)
	Market(ctx context.Context, tech string) ([]types.MarketReport, error)
	News(ctx context.Context) ([]types.Signal, error)
	RecentPatents(ctx context.Context) ([]types.Signal, error)
}

// Pipeline runs analyses against a Fetcher. It is safe for concurrent use
// when the Fetcher is.
type Pipeline struct {
	fetcher Fetcher
	logger  *zap.Logger
	now     func() time.Time
}

// New returns a Pipeline. A nil logger disables logging.
func New(f Fetcher, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{fetcher: f, logger: logger, now: time.Now}
}

type batches struct {
	patents   []types.Patent
	papers    []types.Paper
	companies []types.Company
	funding   []types.Funding
	market    []types.MarketReport
}

// Run fetches and analyses tech. Any fetch failure or panic is returned as
// an error; callers substitute Fallback(tech).
func (p *Pipeline) Run(ctx context.Context, tech string) (res *types.TechResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("pipeline %q: panic: %v", tech, r)
		}
	}()

	start := time.Now()
	b, err := p.fetch(ctx, tech)
	if err != nil {
		return nil, fmt.Errorf("pipeline %q: %w", tech, err)
	}
	res = Analyze(tech, b.patents, b.papers, b.companies, b.funding, b.market)

	p.logger.Info("pipeline complete",
		zap.String("technology", tech),
		zap.Int("patents", len(res.Patents)),
		zap.Int("papers", len(res.Papers)),
		zap.Int("companies", len(res.Companies)),
		zap.Int("funding", len(res.Funding)),
		zap.Int("market_reports", len(res.MarketReports)),
		zap.String("hype_stage", string(res.HypeStage)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

// fetch runs the five searches concurrently. The first failure cancels the
// others.
func (p *Pipeline) fetch(ctx context.Context, tech string) (batches, error) {
	var b batches
	g, gctx := errgroup.WithContext(ctx)

	g.Go(guard("patents", func() (err error) { b.patents, err = p.fetcher.Patents(gctx, tech); return }))
	g.Go(guard("papers", func() (err error) { b.papers, err = p.fetcher.Papers(gctx, tech); return }))
	g.Go(guard("companies", func() (err error) { b.companies, err = p.fetcher.Companies(gctx, tech); return }))
	g.Go(guard("funding", func() (err error) { b.funding, err = p.fetcher.Funding(gctx, tech); return }))
	g.Go(guard("market", func() (err error) { b.market, err = p.fetcher.Market(gctx, tech); return }))

	if err := g.Wait(); err != nil {
		return batches{}, err
	}
	return b, nil
}

// guard converts a panic in fn into an error so that it does not take the
// process down from a worker goroutine.
func guard(name string, fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%s fetch panicked: %v", name, r)
			}
		}()
		return fn()
	}
}

// Analyze enriches already fetched batches and derives every analytic of a
// technology result. It never fails.
func Analyze(tech string, patents []types.Patent, papers []types.Paper, companies []types.Company, funding []types.Funding, reports []types.MarketReport) *types.TechResult {
	patents = enrich.Patents(patents)
	papers = enrich.Papers(papers)
	companies = enrich.Companies(companies)
	funding = enrich.Funding(funding)
	reports = enrich.MarketReports(reports)

	res := &types.TechResult{
		Technology:    tech,
		Patents:       patents,
		Papers:        papers,
		Companies:     companies,
		Funding:       funding,
		MarketReports: reports,

		PatentTrend:  trend.ByYear(patents),
		PaperTrend:   trend.ByYear(papers),
		FundingTrend: trend.ByYear(funding),
		MarketTrend:  trend.ByYear(reports),

		PatentCountryTrend: trend.ByCountryYear(patents),
		PaperCountryTrend:  trend.ByCountryYear(papers),

		Forecast: market.FirstForecast(reports),
	}
	res.Maturity, res.AdoptionCurve = maturity.SCurve(res.PatentTrend)
	res.HypeStage = maturity.ClassifyHype(res.PatentTrend, res.PaperTrend, res.FundingTrend)
	res.Graph = graph.Build(tech, patents, papers, companies)
	res.Investment = investment.Index(investment.Collect(res.PatentCountryTrend, papers, companies))
	res.Alerts = alerts.Generate(alerts.Input{
		PatentTrend: res.PatentTrend,
		PaperTrend:  res.PaperTrend,
		Forecast:    res.Forecast,
		Funding:     funding,
	})
	return res
}

// Fallback returns the well-formed empty result substituted for a failed
// run: every collection empty, maturity 0, hype stage Unknown, no forecast.
func Fallback(tech string) *types.TechResult {
	return &types.TechResult{
		Technology:         tech,
		Patents:            []types.Patent{},
		Papers:             []types.Paper{},
		Companies:          []types.Company{},
		Funding:            []types.Funding{},
		MarketReports:      []types.MarketReport{},
		PatentTrend:        []types.TrendPoint{},
		PaperTrend:         []types.TrendPoint{},
		FundingTrend:       []types.TrendPoint{},
		MarketTrend:        []types.TrendPoint{},
		PatentCountryTrend: []types.CountryTrendPoint{},
		PaperCountryTrend:  []types.CountryTrendPoint{},
		AdoptionCurve:      []types.AdoptionPoint{},
		HypeStage:          types.HypeUnknown,
		Investment:         types.InvestmentIndex{},
		Graph:              types.KnowledgeGraph{Nodes: []types.GraphNode{}, Edges: []types.GraphEdge{}},
		Alerts:             []types.Alert{alerts.Stable},
		Failed:             true,
	}
}

// RunOrFallback runs tech and substitutes Fallback on failure, logging the
// error. The returned error is the original failure, if any.
func (p *Pipeline) RunOrFallback(ctx context.Context, tech string) (*types.TechResult, error) {
	res, err := p.Run(ctx, tech)
	if err != nil {
		p.logger.Error("pipeline failed, using fallback result",
			zap.String("technology", tech),
			zap.Error(err),
		)
		return Fallback(tech), err
	}
	return res, nil
}

// Pulse collects recent news and patents and summarises them by year.
func (p *Pipeline) Pulse(ctx context.Context) (res *types.PulseResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("global pulse: panic: %v", r)
		}
	}()

	var news, patents []types.Signal
	g, gctx := errgroup.WithContext(ctx)
	g.Go(guard("news", func() (err error) { news, err = p.fetcher.News(gctx); return }))
	g.Go(guard("recent patents", func() (err error) { patents, err = p.fetcher.RecentPatents(gctx); return }))
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("global pulse: %w", err)
	}

	news = enrich.Signals(news)
	patents = enrich.Signals(patents)

	res = &types.PulseResult{
		GeneratedAt: p.now().UTC(),
		Summary: types.PulseSummary{
			NewsCount:   len(news),
			PatentCount: len(patents),
		},
		Trends: types.PulseTrends{
			NewsByYear:    trend.ByYear(news),
			PatentsByYear: trend.ByYear(patents),
		},
		Entities: types.PulseEntities{News: news, Patents: patents},
	}
	p.logger.Info("global pulse complete",
		zap.Int("news", len(news)),
		zap.Int("patents", len(patents)),
	)
	return res, nil
}
