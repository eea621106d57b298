// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// TechResult is the fully analysed output of one technology run.
type TechResult struct {
	Technology string `json:"technology"`

	Patents       []Patent       `json:"patents"`
	Papers        []Paper        `json:"papers"`
	Companies     []Company      `json:"companies"`
	Funding       []Funding      `json:"funding"`
	MarketReports []MarketReport `json:"market_reports"`

	PatentTrend  []TrendPoint `json:"patents_year"`
	PaperTrend   []TrendPoint `json:"papers_year"`
	FundingTrend []TrendPoint `json:"funding_year"`
	MarketTrend  []TrendPoint `json:"market_year"`

	PatentCountryTrend []CountryTrendPoint `json:"patents_country"`
	PaperCountryTrend  []CountryTrendPoint `json:"papers_country"`

	// Forecast is nil when no market report yielded a usable series.
	Forecast *MarketForecast `json:"market_forecast"`

	Maturity      float64         `json:"maturity_score"`
	AdoptionCurve []AdoptionPoint `json:"adoption_curve"`
	HypeStage     HypeStage       `json:"hype_stage"`

	Investment InvestmentIndex `json:"country_investment"`
	Graph      KnowledgeGraph  `json:"knowledge_graph"`
	Alerts     []Alert         `json:"alerts"`

	// Failed is set on fallback results substituted for a failed run.
	Failed bool `json:"failed,omitempty"`
}

// PulseSummary counts the records of a global pulse run.
type PulseSummary struct {
	NewsCount   int `json:"news_count"`
	PatentCount int `json:"patent_count"`
}

// PulseTrends holds the per-year series of a global pulse run.
type PulseTrends struct {
	NewsByYear    []TrendPoint `json:"news_by_year"`
	PatentsByYear []TrendPoint `json:"patents_by_year"`
}

// PulseEntities holds the enriched records of a global pulse run.
type PulseEntities struct {
	News    []Signal `json:"news"`
	Patents []Signal `json:"patents"`
}

// PulseResult is the global technology pulse artifact.
type PulseResult struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Summary     PulseSummary  `json:"summary"`
	Trends      PulseTrends   `json:"trends"`
	Entities    PulseEntities `json:"entities"`
}
