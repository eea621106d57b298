// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich derives year, country and readiness fields for batches of
// search records. Facts with several possible sources are resolved by an
// ordered list of resolvers: the first resolver that produces a value wins.
// Enrichers never fail, never mutate their input, and are idempotent.
package enrich

import (
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/techscope/internal/extract"
	"github.com/pdiddy/techscope/pkg/types"
)

// YearResolver produces a year for a record, or false when it has none.
type YearResolver[T any] func(T) (int, bool)

// CountryResolver produces a country label for a record, or false.
type CountryResolver[T any] func(T) (string, bool)

// Patent resolvers in priority order.
var (
	PatentYear = []YearResolver[types.Patent]{
		func(p types.Patent) (int, bool) { return extract.DateYear(p.PublicationDate) },
		func(p types.Patent) (int, bool) { return extract.DateYear(p.FilingDate) },
		func(p types.Patent) (int, bool) { return extract.DateYear(p.PriorityDate) },
		func(p types.Patent) (int, bool) { return extract.Year(p.Snippet) },
		func(p types.Patent) (int, bool) { return extract.Year(p.Title) },
	}
	PatentCountry = []CountryResolver[types.Patent]{
		func(p types.Patent) (string, bool) { return inferred(p.Title) },
		func(p types.Patent) (string, bool) { return extract.PatentCountry(p.Link) },
	}
)

// Paper resolvers in priority order.
var (
	PaperYear = []YearResolver[types.Paper]{
		func(p types.Paper) (int, bool) { return numericYear(p.YearField) },
		func(p types.Paper) (int, bool) { return extract.Year(p.Snippet) },
		func(p types.Paper) (int, bool) { return extract.Year(p.Title) },
	}
	PaperCountry = []CountryResolver[types.Paper]{
		func(p types.Paper) (string, bool) { return extract.DomainCountry(p.Link) },
	}
)

// CompanyCountry lists company country resolvers in priority order.
var CompanyCountry = []CountryResolver[types.Company]{
	func(c types.Company) (string, bool) { return inferred(c.Name + " " + c.Description) },
	func(c types.Company) (string, bool) { return extract.DomainCountry(c.Link) },
}

// Patents fills Year, Country and TRL for each patent.
func Patents(batch []types.Patent) []types.Patent {
	out := make([]types.Patent, len(batch))
	for i, p := range batch {
		p.Year = resolveYear(p, PatentYear)
		p.Country = resolveCountry(p, PatentCountry)
		p.TRL = extract.EstimateTRL(p.Snippet)
		out[i] = p
	}
	return out
}

// Papers fills Year, Country and TRL for each paper.
func Papers(batch []types.Paper) []types.Paper {
	out := make([]types.Paper, len(batch))
	for i, p := range batch {
		p.Year = resolveYear(p, PaperYear)
		p.Country = resolveCountry(p, PaperCountry)
		p.TRL = extract.EstimateTRL(p.Snippet)
		out[i] = p
	}
	return out
}

// Companies fills Country for each company.
func Companies(batch []types.Company) []types.Company {
	out := make([]types.Company, len(batch))
	for i, c := range batch {
		c.Country = resolveCountry(c, CompanyCountry)
		out[i] = c
	}
	return out
}

// Funding takes the year from each snippet.
func Funding(batch []types.Funding) []types.Funding {
	out := make([]types.Funding, len(batch))
	for i, f := range batch {
		f.Year = yearPtr(extract.Year(f.Snippet))
		out[i] = f
	}
	return out
}

// MarketReports takes the year, market size, CAGR, forecast range and
// regions from each snippet.
func MarketReports(batch []types.MarketReport) []types.MarketReport {
	out := make([]types.MarketReport, len(batch))
	for i, m := range batch {
		m.Year = yearPtr(extract.Year(m.Snippet))
		m.MarketSize, _ = extract.MarketSize(m.Snippet)
		m.CAGR, _ = extract.CAGR(m.Snippet)
		m.ForecastStart, m.ForecastEnd = nil, nil
		if start, end, ok := extract.ForecastYears(m.Snippet); ok {
			m.ForecastStart, m.ForecastEnd = types.IntPtr(start), types.IntPtr(end)
		}
		m.Regions = extract.Regions(m.Snippet)
		out[i] = m
	}
	return out
}

// Signals enriches global pulse records. The year comes from the date
// field; news country is inferred from the snippet and patent country from
// the title, both with the news keyword table.
func Signals(batch []types.Signal) []types.Signal {
	out := make([]types.Signal, len(batch))
	for i, s := range batch {
		s.Year = yearPtr(extract.Year(s.Date))
		if s.SignalType == types.SignalPatent {
			s.Country = extract.InferNewsCountry(s.Title)
		} else {
			s.Country = extract.InferNewsCountry(s.Snippet)
		}
		out[i] = s
	}
	return out
}

func resolveYear[T any](rec T, resolvers []YearResolver[T]) *int {
	for _, r := range resolvers {
		if y, ok := r(rec); ok {
			return types.IntPtr(y)
		}
	}
	return nil
}

func resolveCountry[T any](rec T, resolvers []CountryResolver[T]) string {
	for _, r := range resolvers {
		if c, ok := r(rec); ok && c != "" {
			return c
		}
	}
	return types.Unknown
}

// inferred adapts keyword inference to the resolver shape.
func inferred(text string) (string, bool) {
	c := extract.InferCountry(text)
	return c, c != types.Unknown
}

// numericYear reads a scholar year field such as "2021" or "2021.0".
func numericYear(field string) (int, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

func yearPtr(y int, ok bool) *int {
	if !ok {
		return nil
	}
	return types.IntPtr(y)
}
