// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package market projects market-size reports into yearly value series.
package market

import (
	"math"

	"github.com/pdiddy/techscope/internal/extract"
	"github.com/pdiddy/techscope/pkg/types"
)

// Forecast years outside [MinYear, MaxYear] are treated as extraction noise.
const (
	MinYear = 1990
	MaxYear = 2045
)

// BuildForecast compounds the report's base size at its CAGR over the
// forecast range: value(y) = base * (1 + cagr/100)^(y - start). It returns
// nil when any input is missing or the range fails the sanity bounds.
func BuildForecast(r types.MarketReport) *types.MarketForecast {
	base, ok := extract.SizeToBillions(r.MarketSize)
	if !ok {
		return nil
	}
	cagr, ok := extract.CAGRPercent(r.CAGR)
	if !ok {
		return nil
	}
	if r.ForecastStart == nil || r.ForecastEnd == nil {
		return nil
	}
	start, end := *r.ForecastStart, *r.ForecastEnd
	if start < MinYear || end > MaxYear || start > end {
		return nil
	}

	growth := 1 + cagr/100
	f := &types.MarketForecast{
		Years:    make([]int, 0, end-start+1),
		Billions: make([]float64, 0, end-start+1),
	}
	for y := start; y <= end; y++ {
		f.Years = append(f.Years, y)
		f.Billions = append(f.Billions, base*math.Pow(growth, float64(y-start)))
	}
	return f
}

// FirstForecast returns the series of the first report that yields one.
// Later reports are not evaluated.
func FirstForecast(reports []types.MarketReport) *types.MarketForecast {
	for _, r := range reports {
		if f := BuildForecast(r); f != nil {
			return f
		}
	}
	return nil
}
