// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// InvestmentIndexType is the literal tag of the country_investment block.
const InvestmentIndexType = "relative_investment_index"

// Dashboard is the per-technology JSON artifact consumed by the dashboard.
// Field order is the serialized key order.
type Dashboard struct {
	Technology        string            `json:"technology"`
	Summary           DashboardSummary  `json:"summary"`
	TrendCurve        []int             `json:"trend_curve"`
	CountryInvestment CountryInvestment `json:"country_investment"`
	PatentTimeline    []TrendPoint      `json:"patent_timeline"`
	Entities          DashboardEntities `json:"entities"`
	Alerts            []Alert           `json:"alerts"`
}

// DashboardSummary is the headline block of the dashboard.
type DashboardSummary struct {
	TRL         int       `json:"trl"`
	GrowthStage HypeStage `json:"growth_stage"`

	// MarketSizeBillionUSD is null when no forecast exists.
	MarketSizeBillionUSD *Number `json:"market_size_billion_usd"`

	Signals int `json:"signals"`
}

// CountryInvestment wraps the investment index with its type tag.
type CountryInvestment struct {
	Type   string          `json:"type"`
	Values InvestmentIndex `json:"values"`
}

// DashboardEntities holds the simplified record lists.
type DashboardEntities struct {
	Patents       []PatentEntity       `json:"patents"`
	Papers        []PaperEntity        `json:"papers"`
	Companies     []CompanyEntity      `json:"companies"`
	MarketReports []MarketReportEntity `json:"market_reports"`
}

type PatentEntity struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
	Year    *int   `json:"year"`
	TRL     int    `json:"trl"`
}

type PaperEntity struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
	Year    *int   `json:"year"`
}

type CompanyEntity struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// MarketReportEntity keeps parsed market fields; unmatched fields are null.
type MarketReportEntity struct {
	Title         string  `json:"title"`
	Snippet       string  `json:"snippet"`
	MarketSize    *string `json:"market_size"`
	CAGR          *string `json:"cagr"`
	ForecastStart *int    `json:"forecast_start"`
	ForecastEnd   *int    `json:"forecast_end"`
}
