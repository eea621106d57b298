// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/techscope/pkg/types"
)

func TestEmptyBatches(t *testing.T) {
	assert.Empty(t, Patents(nil))
	assert.Empty(t, Papers([]types.Paper{}))
	assert.Empty(t, Companies(nil))
	assert.Empty(t, Funding(nil))
	assert.Empty(t, MarketReports(nil))
	assert.Empty(t, Signals(nil))
}

func TestPatentYearPriority(t *testing.T) {
	tests := []struct {
		name   string
		patent types.Patent
		want   *int
	}{
		{
			name:   "publication date wins",
			patent: types.Patent{PublicationDate: "2021-05-01", FilingDate: "2019-01-01", Snippet: "since 2001"},
			want:   types.IntPtr(2021),
		},
		{
			name:   "filing date when publication missing",
			patent: types.Patent{FilingDate: "2019-01-01", PriorityDate: "2018-02-02"},
			want:   types.IntPtr(2019),
		},
		{
			name:   "non-numeric prefix skipped",
			patent: types.Patent{PublicationDate: "n/a", PriorityDate: "2018-02-02"},
			want:   types.IntPtr(2018),
		},
		{
			name:   "snippet before title",
			patent: types.Patent{Snippet: "filed in 2015", Title: "Method 2010"},
			want:   types.IntPtr(2015),
		},
		{
			name:   "title as last resort",
			patent: types.Patent{Title: "Method 2010"},
			want:   types.IntPtr(2010),
		},
		{
			name:   "no year anywhere",
			patent: types.Patent{Title: "Quantum method"},
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Patents([]types.Patent{tt.patent})
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Year)
		})
	}
}

func TestPatentCountryPriority(t *testing.T) {
	tests := []struct {
		name   string
		patent types.Patent
		want   string
	}{
		{
			name:   "title inference beats link code",
			patent: types.Patent{Title: "Chinese battery cell", Link: "https://patents.google.com/patent/US1234567B2"},
			want:   "China",
		},
		{
			name:   "link code used when title has no country",
			patent: types.Patent{Title: "Battery cell", Link: "https://patents.google.com/patent/KR1234567B1"},
			want:   "South Korea",
		},
		{
			name:   "unmapped code passes through",
			patent: types.Patent{Title: "Battery cell", Link: "https://patents.google.com/patent/DE1020190A1"},
			want:   "DE",
		},
		{
			name:   "unknown without any signal",
			patent: types.Patent{Title: "Battery cell", Link: "https://example.com"},
			want:   types.Unknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Patents([]types.Patent{tt.patent})
			assert.Equal(t, tt.want, got[0].Country)
		})
	}
}

func TestPatentTRLFromSnippet(t *testing.T) {
	got := Patents([]types.Patent{
		{Title: "flight test rig", Snippet: "a prototype was demonstrated"},
		{Title: "x"},
	})
	assert.Equal(t, 6, got[0].TRL)
	assert.Equal(t, 2, got[1].TRL)
}

func TestPatentsDoNotMutateInput(t *testing.T) {
	in := []types.Patent{{Title: "American drone", PublicationDate: "2020-01-01"}}
	out := Patents(in)
	assert.Nil(t, in[0].Year)
	assert.Empty(t, in[0].Country)
	assert.Equal(t, "USA", out[0].Country)
}

func TestEnrichIsIdempotent(t *testing.T) {
	patents := []types.Patent{{Title: "Indian radar 2019", Snippet: "validated", Link: "https://patents.google.com/patent/IN2019A"}}
	once := Patents(patents)
	assert.Equal(t, once, Patents(once))

	markets := []types.MarketReport{{Snippet: "$6.5 billion in 2023, 12% CAGR from 2023 to 2030 in Europe"}}
	m1 := MarketReports(markets)
	assert.Equal(t, m1, MarketReports(m1))
}

func TestPaperYear(t *testing.T) {
	tests := []struct {
		name  string
		paper types.Paper
		want  *int
	}{
		{"numeric field", types.Paper{YearField: "2020", Snippet: "2011"}, types.IntPtr(2020)},
		{"float field", types.Paper{YearField: "2020.0"}, types.IntPtr(2020)},
		{"garbage field falls back to snippet", types.Paper{YearField: "in press", Snippet: "J. Phys 2017"}, types.IntPtr(2017)},
		{"title fallback", types.Paper{Title: "Review 2009"}, types.IntPtr(2009)},
		{"absent", types.Paper{Title: "Review"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Papers([]types.Paper{tt.paper})[0].Year)
		})
	}
}

func TestPaperCountryFromDomain(t *testing.T) {
	got := Papers([]types.Paper{
		{Title: "American study", Link: "https://arxiv.org/abs/1"},
		{Title: "x", Link: "https://mit.edu/paper"},
	})
	assert.Equal(t, types.Unknown, got[0].Country)
	assert.Equal(t, "USA", got[1].Country)
}

func TestCompanyCountryPriority(t *testing.T) {
	got := Companies([]types.Company{
		{Name: "Acme", Description: "a Japanese robotics maker", Link: "https://acme.de"},
		{Name: "Acme", Description: "robotics maker", Link: "https://acme.de"},
		{Name: "Acme", Description: "robotics maker", Link: "https://acme.com"},
	})
	assert.Equal(t, "Japan", got[0].Country)
	assert.Equal(t, "Germany", got[1].Country)
	assert.Equal(t, types.Unknown, got[2].Country)
}

func TestFundingYearFromSnippetOnly(t *testing.T) {
	got := Funding([]types.Funding{
		{ID: 1, Title: "2019 round", Snippet: "raised in 2022"},
		{ID: 2, Title: "2019 round", Snippet: "raised"},
	})
	assert.Equal(t, types.IntPtr(2022), got[0].Year)
	assert.Nil(t, got[1].Year)
}

func TestMarketReports(t *testing.T) {
	got := MarketReports([]types.MarketReport{
		{Title: "Report", Snippet: "The market was $6.5 billion in 2023 and will grow at 12% CAGR from 2023 to 2030, led by North America."},
		{Title: "Empty"},
	})
	require.Len(t, got, 2)

	m := got[0]
	assert.Equal(t, types.IntPtr(2023), m.Year)
	assert.Equal(t, "$6.5 billion", m.MarketSize)
	assert.Equal(t, "12%", m.CAGR)
	assert.Equal(t, types.IntPtr(2023), m.ForecastStart)
	assert.Equal(t, types.IntPtr(2030), m.ForecastEnd)
	assert.Equal(t, []string{"north america"}, m.Regions)

	e := got[1]
	assert.Nil(t, e.Year)
	assert.Empty(t, e.MarketSize)
	assert.Empty(t, e.CAGR)
	assert.Nil(t, e.ForecastStart)
	assert.Nil(t, e.ForecastEnd)
	assert.Empty(t, e.Regions)
}

func TestSignals(t *testing.T) {
	got := Signals([]types.Signal{
		{Title: "Chips", Snippet: "Britain backs fabs", Date: "10/02/2025, 07:00 AM", SignalType: types.SignalNews},
		{Title: "Chinese lidar", Snippet: "american", Date: "2024-11-30", SignalType: types.SignalPatent},
	})
	assert.Equal(t, types.IntPtr(2025), got[0].Year)
	assert.Equal(t, "UK", got[0].Country)
	assert.Equal(t, types.IntPtr(2024), got[1].Year)
	assert.Equal(t, "China", got[1].Country)
}
