// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export converts analysed results into the dashboard artifacts and
// persists them under the data directory.
package export

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/pdiddy/techscope/internal/extract"
	"github.com/pdiddy/techscope/internal/trend"
	"github.com/pdiddy/techscope/pkg/types"
)

// Slug is the artifact key of a technology: lower case, spaces replaced by
// underscores.
func Slug(tech string) string {
	return strings.ReplaceAll(strings.ToLower(tech), " ", "_")
}

// ErrInvalidSlug is returned for technology names that cannot be stored as
// a file under the data directory.
var ErrInvalidSlug = errors.New("invalid technology slug")

// CheckSlug accepts slugs made of letters, digits and "_-.+&" with no "..".
// Anything else, path separators in particular, is rejected.
func CheckSlug(slug string) error {
	if slug == "" || strings.Contains(slug, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidSlug, slug)
	}
	for _, r := range slug {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		switch r {
		case '_', '-', '.', '+', '&':
			continue
		}
		return fmt.Errorf("%w: %q", ErrInvalidSlug, slug)
	}
	return nil
}

// CheckTechnology reports whether tech yields a storable slug.
func CheckTechnology(tech string) error {
	return CheckSlug(Slug(tech))
}

// Dashboard builds the dashboard schema from a result. Every list in the
// output is non-nil so that it serializes as [] rather than null.
func Dashboard(res *types.TechResult) types.Dashboard {
	d := types.Dashboard{
		Technology: Slug(res.Technology),
		Summary: types.DashboardSummary{
			TRL:         meanTRL(res.Patents),
			GrowthStage: res.HypeStage,
			Signals:     len(res.Patents),
		},
		TrendCurve: trend.Counts(res.PatentTrend),
		CountryInvestment: types.CountryInvestment{
			Type:   types.InvestmentIndexType,
			Values: res.Investment,
		},
		PatentTimeline: append([]types.TrendPoint{}, res.PatentTrend...),
		Entities: types.DashboardEntities{
			Patents:       make([]types.PatentEntity, 0, len(res.Patents)),
			Papers:        make([]types.PaperEntity, 0, len(res.Papers)),
			Companies:     make([]types.CompanyEntity, 0, len(res.Companies)),
			MarketReports: make([]types.MarketReportEntity, 0, len(res.MarketReports)),
		},
		Alerts: res.Alerts,
	}
	if d.Summary.GrowthStage == "" {
		d.Summary.GrowthStage = types.HypeUnknown
	}
	if d.CountryInvestment.Values == nil {
		d.CountryInvestment.Values = types.InvestmentIndex{}
	}
	if d.Alerts == nil {
		d.Alerts = []types.Alert{}
	}
	if m, ok := res.Forecast.Max(); ok {
		d.Summary.MarketSizeBillionUSD = types.NumberPtr(m)
	}

	for _, p := range res.Patents {
		d.Entities.Patents = append(d.Entities.Patents, types.PatentEntity{
			Title: p.Title, Snippet: p.Snippet, Link: p.Link, Year: p.Year, TRL: p.TRL,
		})
	}
	for _, p := range res.Papers {
		d.Entities.Papers = append(d.Entities.Papers, types.PaperEntity{
			Title: p.Title, Snippet: p.Snippet, Link: p.Link, Year: p.Year,
		})
	}
	for _, c := range res.Companies {
		d.Entities.Companies = append(d.Entities.Companies, types.CompanyEntity{
			Name: c.Name, Description: c.Description, Link: c.Link,
		})
	}
	for _, m := range res.MarketReports {
		d.Entities.MarketReports = append(d.Entities.MarketReports, types.MarketReportEntity{
			Title:         m.Title,
			Snippet:       m.Snippet,
			MarketSize:    optional(m.MarketSize),
			CAGR:          optional(m.CAGR),
			ForecastStart: m.ForecastStart,
			ForecastEnd:   m.ForecastEnd,
		})
	}
	return d
}

// meanTRL is the truncated mean patent TRL, or the default level when
// there are no patents.
func meanTRL(patents []types.Patent) int {
	if len(patents) == 0 {
		return extract.DefaultTRL
	}
	sum := 0
	for _, p := range patents {
		sum += p.TRL
	}
	return sum / len(patents)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
