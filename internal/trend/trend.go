// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package trend aggregates enriched records into yearly count series.
package trend

import (
	"sort"

	"github.com/pdiddy/techscope/pkg/types"
)

// Dated is a record with an optional resolved year.
type Dated interface {
	RecordYear() *int
}

// Located is a dated record with a resolved country.
type Located interface {
	Dated
	RecordCountry() string
}

// ByYear counts records per year, ascending. Records without a year are
// skipped.
func ByYear[T Dated](records []T) []types.TrendPoint {
	counts := make(map[int]int)
	for _, r := range records {
		if y := r.RecordYear(); y != nil {
			counts[*y]++
		}
	}
	out := make([]types.TrendPoint, 0, len(counts))
	for y, n := range counts {
		out = append(out, types.TrendPoint{Year: y, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// ByCountryYear counts records per (country, year), ordered by country then
// year. An empty country is counted as types.Unknown.
func ByCountryYear[T Located](records []T) []types.CountryTrendPoint {
	type key struct {
		country string
		year    int
	}
	counts := make(map[key]int)
	for _, r := range records {
		y := r.RecordYear()
		if y == nil {
			continue
		}
		c := r.RecordCountry()
		if c == "" {
			c = types.Unknown
		}
		counts[key{c, *y}]++
	}
	out := make([]types.CountryTrendPoint, 0, len(counts))
	for k, n := range counts {
		out = append(out, types.CountryTrendPoint{Country: k.country, Year: k.year, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Country != out[j].Country {
			return out[i].Country < out[j].Country
		}
		return out[i].Year < out[j].Year
	})
	return out
}

// Counts returns the count column of series.
func Counts(series []types.TrendPoint) []int {
	out := make([]int, len(series))
	for i, p := range series {
		out[i] = p.Count
	}
	return out
}

// Total sums the counts of series.
func Total(series []types.TrendPoint) int {
	n := 0
	for _, p := range series {
		n += p.Count
	}
	return n
}

// LastGrowth is the relative change between the last two points,
// (last-prev)/max(1,prev). It is 0 for fewer than two points.
func LastGrowth(series []types.TrendPoint) float64 {
	if len(series) < 2 {
		return 0
	}
	last := series[len(series)-1].Count
	prev := series[len(series)-2].Count
	return float64(last-prev) / float64(max(1, prev))
}
