// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package alerts derives short dashboard notices from trend inflections,
// the market forecast and funding mentions.
package alerts

import (
	"fmt"
	"strings"

	"github.com/pdiddy/techscope/pkg/types"
)

// Growth thresholds that trigger an alert.
const (
	PatentSurge       = 0.3
	ResearchSurge     = 0.25
	MarketMomentumPct = 10.0
)

// Alert horizons.
const (
	Recent   = "recent"
	Forecast = "forecast"
	Current  = "current"
)

var governmentKeywords = []string{"government", "defense", "military", "ministry"}

// Stable is emitted when no other alert fires.
var Stable = types.Alert{
	Type:    types.AlertTech,
	Message: "Technology activity remains stable with no major inflection",
	Time:    Current,
}

// Input carries the analysed series the generator reads.
type Input struct {
	PatentTrend []types.TrendPoint
	PaperTrend  []types.TrendPoint
	Forecast    *types.MarketForecast
	Funding     []types.Funding
}

// Generate returns alerts in a fixed order: patent surge, research
// acceleration, market momentum, funding volume, government involvement.
// The result is never empty.
func Generate(in Input) []types.Alert {
	var out []types.Alert

	if year, prev, last, g, ok := lastStep(in.PatentTrend); ok && g > PatentSurge {
		out = append(out, types.Alert{
			Type:    types.AlertPatent,
			Message: fmt.Sprintf("Patent filings grew by %d%% in %d (%d → %d)", int(g*100), year, prev, last),
			Time:    Recent,
		})
	}

	if year, _, _, g, ok := lastStep(in.PaperTrend); ok && g > ResearchSurge {
		out = append(out, types.Alert{
			Type:    types.AlertTech,
			Message: fmt.Sprintf("Research publications increased by %d%% in %d", int(g*100), year),
			Time:    Recent,
		})
	}

	if f := in.Forecast; f != nil && len(f.Billions) >= 2 && len(f.Years) == len(f.Billions) {
		first, last := f.Billions[0], f.Billions[len(f.Billions)-1]
		pct := 0.0
		if first != 0 {
			pct = (last - first) / first * 100
		}
		if pct > MarketMomentumPct {
			out = append(out, types.Alert{
				Type:    types.AlertMarket,
				Message: fmt.Sprintf("Market projected to grow %d%% (%d–%d)", int(pct), f.Years[0], f.Years[len(f.Years)-1]),
				Time:    Forecast,
			})
		}
	}

	if len(in.Funding) > 0 {
		out = append(out, types.Alert{
			Type:    types.AlertMarket,
			Message: fmt.Sprintf("%d recent funding or investment signals detected", len(in.Funding)),
			Time:    Recent,
		})
		if mentionsGovernment(in.Funding) {
			out = append(out, types.Alert{
				Type:    types.AlertTech,
				Message: "Government or defense-sector involvement observed",
				Time:    Recent,
			})
		}
	}

	if len(out) == 0 {
		out = append(out, Stable)
	}
	return out
}

// lastStep reports the latest year, the last two counts and their growth.
// ok is false for fewer than two points or a zero previous count.
func lastStep(series []types.TrendPoint) (year, prev, last int, growth float64, ok bool) {
	if len(series) < 2 {
		return 0, 0, 0, 0, false
	}
	p, l := series[len(series)-2], series[len(series)-1]
	if p.Count <= 0 {
		return 0, 0, 0, 0, false
	}
	return l.Year, p.Count, l.Count, float64(l.Count-p.Count) / float64(p.Count), true
}

func mentionsGovernment(funding []types.Funding) bool {
	for _, f := range funding {
		s := strings.ToLower(f.Snippet)
		for _, kw := range governmentKeywords {
			if strings.Contains(s, kw) {
				return true
			}
		}
	}
	return false
}
