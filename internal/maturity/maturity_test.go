// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package maturity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/techscope/pkg/types"
)

func series(pairs ...int) []types.TrendPoint {
	var out []types.TrendPoint
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, types.TrendPoint{Year: pairs[i], Count: pairs[i+1]})
	}
	return out
}

func TestSCurve(t *testing.T) {
	score, curve := SCurve(series(2020, 1, 2021, 3, 2022, 4))
	assert.InDelta(t, 1.0, score, 1e-12)
	require.Len(t, curve, 3)
	assert.Equal(t, types.AdoptionPoint{Year: 2020, Count: 1, Cumulative: 1, Adoption: 0.125}, curve[0])
	assert.Equal(t, 4, curve[1].Cumulative)
	assert.InDelta(t, 0.5, curve[1].Adoption, 1e-12)
	assert.Equal(t, 8, curve[2].Cumulative)
}

func TestSCurveEmpty(t *testing.T) {
	score, curve := SCurve(nil)
	assert.Zero(t, score)
	assert.Empty(t, curve)

	score, _ = SCurve(series(2020, 0))
	assert.Zero(t, score)
}

func TestSCurveScoreInRange(t *testing.T) {
	for _, s := range [][]types.TrendPoint{
		series(2020, 5),
		series(2019, 2, 2020, 9, 2021, 1),
		series(2001, 1, 2010, 1, 2020, 100),
	} {
		score, curve := SCurve(s)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
		for i := 1; i < len(curve); i++ {
			assert.GreaterOrEqual(t, curve[i].Adoption, curve[i-1].Adoption)
		}
	}
}

func TestClassifyHype(t *testing.T) {
	tests := []struct {
		name                     string
		patents, papers, funding []types.TrendPoint
		want                     types.HypeStage
	}{
		{
			name: "no data",
			want: types.HypeNoData,
		},
		{
			name:    "funding alone is no data",
			funding: series(2020, 10, 2021, 30),
			want:    types.HypeNoData,
		},
		{
			name:    "few signals",
			patents: series(2021, 3),
			want:    types.HypeTrigger,
		},
		{
			name:    "sharp rise",
			patents: series(2020, 2, 2021, 6),
			papers:  series(2020, 2, 2021, 4),
			want:    types.HypePeak,
		},
		{
			name:    "sharp drop",
			patents: series(2020, 10, 2021, 2),
			papers:  series(2020, 10, 2021, 5),
			want:    types.HypeTrough,
		},
		{
			name:    "steady growth",
			patents: series(2020, 10, 2021, 12),
			papers:  series(2020, 10, 2021, 11),
			want:    types.HypeSlope,
		},
		{
			name:    "flat is slope",
			patents: series(2020, 5, 2021, 5),
			papers:  series(2020, 5, 2021, 5),
			want:    types.HypeSlope,
		},
		{
			name:    "mild decline",
			patents: series(2020, 10, 2021, 8),
			papers:  series(2020, 10, 2021, 9),
			want:    types.HypePlateau,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyHype(tt.patents, tt.papers, tt.funding))
		})
	}
}
