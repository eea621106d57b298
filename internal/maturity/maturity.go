// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package maturity scores adoption along an S-curve and places a
// technology on the hype cycle from the recent growth of its trends.
package maturity

import (
	"github.com/pdiddy/techscope/internal/trend"
	"github.com/pdiddy/techscope/pkg/types"
)

// Hype thresholds on the average last-step growth rate.
const (
	peakGrowth   = 0.5
	troughGrowth = -0.3
	// minSignals is the patent+paper total below which a technology is
	// still at its innovation trigger.
	minSignals = 5
)

// SCurve accumulates a yearly trend (ascending by year) into an adoption
// curve and returns the maturity score, the adoption fraction at the latest
// year. The score is in [0,1] and 0 for an empty or all-zero trend.
func SCurve(series []types.TrendPoint) (float64, []types.AdoptionPoint) {
	curve := make([]types.AdoptionPoint, len(series))
	total := 0
	for i, p := range series {
		total += p.Count
		curve[i] = types.AdoptionPoint{Year: p.Year, Count: p.Count, Cumulative: total}
	}
	if total == 0 {
		return 0, curve
	}
	for i := range curve {
		curve[i].Adoption = float64(curve[i].Cumulative) / float64(total)
	}
	return curve[len(curve)-1].Adoption, curve
}

// ClassifyHype averages the last-step growth of the three trends and maps
// it to a hype stage. Rules are checked in order; the first match wins.
func ClassifyHype(patents, papers, funding []types.TrendPoint) types.HypeStage {
	if len(patents) == 0 && len(papers) == 0 {
		return types.HypeNoData
	}
	if trend.Total(patents)+trend.Total(papers) < minSignals {
		return types.HypeTrigger
	}

	avg := (trend.LastGrowth(patents) + trend.LastGrowth(papers) + trend.LastGrowth(funding)) / 3
	switch {
	case avg > peakGrowth:
		return types.HypePeak
	case avg < troughGrowth:
		return types.HypeTrough
	case avg >= 0:
		return types.HypeSlope
	default:
		return types.HypePlateau
	}
}
