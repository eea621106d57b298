// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package investment ranks countries by weighted patent, paper and company
// activity on a relative 0-100 scale.
package investment

import (
	"math"
	"sort"

	"github.com/pdiddy/techscope/pkg/types"
)

// Signal weights.
const (
	PatentWeight  = 0.5
	PaperWeight   = 0.3
	CompanyWeight = 0.2
)

// Signals holds per-country activity counts from each source.
type Signals struct {
	Patents   map[string]int
	Papers    map[string]int
	Companies map[string]int
}

// Collect builds the three signals from an enriched run. Patent activity is
// the patent country-year trend summed per country; papers and companies are
// counted directly. Unknown and empty countries are excluded.
func Collect(patentTrend []types.CountryTrendPoint, papers []types.Paper, companies []types.Company) Signals {
	s := Signals{
		Patents:   make(map[string]int),
		Papers:    make(map[string]int),
		Companies: make(map[string]int),
	}
	for _, p := range patentTrend {
		if known(p.Country) {
			s.Patents[p.Country] += p.Count
		}
	}
	for _, p := range papers {
		if known(p.Country) {
			s.Papers[p.Country]++
		}
	}
	for _, c := range companies {
		if known(c.Country) {
			s.Companies[c.Country]++
		}
	}
	return s
}

func known(country string) bool {
	return country != "" && country != types.Unknown
}

// Index scores every country present in any signal, normalizes by the top
// score, and sorts descending (ties by country name).
func Index(s Signals) types.InvestmentIndex {
	raw := make(map[string]float64)
	add := func(counts map[string]int, weight float64) {
		for c, n := range counts {
			if known(c) {
				raw[c] += weight * float64(n)
			}
		}
	}
	add(s.Patents, PatentWeight)
	add(s.Papers, PaperWeight)
	add(s.Companies, CompanyWeight)

	if len(raw) == 0 {
		return types.InvestmentIndex{}
	}

	top := 0.0
	for _, v := range raw {
		top = math.Max(top, v)
	}
	if top == 0 {
		top = 1
	}

	ix := make(types.InvestmentIndex, 0, len(raw))
	for c, v := range raw {
		ix = append(ix, types.InvestmentEntry{Country: c, Score: math.Round(v/top*100*100) / 100})
	}
	sort.Slice(ix, func(i, j int) bool {
		if ix[i].Score != ix[j].Score {
			return ix[i].Score > ix[j].Score
		}
		return ix[i].Country < ix[j].Country
	})
	return ix
}
