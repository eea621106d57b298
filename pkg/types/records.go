// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the techscope pipeline:
// the typed search records per entity kind, the analytics series derived
// from them, the dashboard output schema, and configuration.
package types

// Unknown is the country label assigned when no resolver produced a value.
const Unknown = "Unknown"

// Patent is a patent search result with its derived attributes.
type Patent struct {
	// Title is the patent title as returned by the search engine.
	Title string `json:"title" yaml:"title"`

	// Snippet is the abstract excerpt shown in search results.
	Snippet string `json:"snippet" yaml:"snippet"`

	// Link points at the patent page, e.g. https://patents.google.com/patent/US1234567B2.
	Link string `json:"link" yaml:"link"`

	// PublicationDate, FilingDate and PriorityDate are raw date strings
	// (usually YYYY-MM-DD). Any of them may be empty.
	PublicationDate string `json:"publication_date,omitempty" yaml:"publication_date,omitempty"`
	FilingDate      string `json:"filing_date,omitempty" yaml:"filing_date,omitempty"`
	PriorityDate    string `json:"priority_date,omitempty" yaml:"priority_date,omitempty"`

	// Technology is the query the record was fetched for.
	Technology string `json:"technology" yaml:"technology"`

	// Year is the resolved filing or publication year. Nil when unresolvable.
	Year *int `json:"year" yaml:"year"`

	// Country is the resolved country label, Unknown by default.
	Country string `json:"country" yaml:"country"`

	// TRL is the estimated technology readiness level (1-9).
	TRL int `json:"trl" yaml:"trl"`
}

// Paper is an academic search result with its derived attributes.
type Paper struct {
	Title   string `json:"title" yaml:"title"`
	Snippet string `json:"snippet" yaml:"snippet"`
	Link    string `json:"link" yaml:"link"`

	// YearField is the raw year value reported by the scholar engine. It may
	// be empty, numeric, or garbage.
	YearField string `json:"year_field,omitempty" yaml:"year_field,omitempty"`

	// Authors lists author names in source order.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	Technology string `json:"technology" yaml:"technology"`

	Year    *int   `json:"year" yaml:"year"`
	Country string `json:"country" yaml:"country"`
	TRL     int    `json:"trl" yaml:"trl"`
}

// Company is a web search result describing an organisation active in the
// technology.
type Company struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Link        string `json:"link" yaml:"link"`
	Country     string `json:"country" yaml:"country"`
}

// Funding is a web search result mentioning investment or government
// programmes for the technology.
type Funding struct {
	// ID is the 1-based position in the fetched batch.
	ID         int    `json:"id" yaml:"id"`
	Title      string `json:"title" yaml:"title"`
	Snippet    string `json:"snippet" yaml:"snippet"`
	Link       string `json:"link" yaml:"link"`
	Technology string `json:"technology" yaml:"technology"`
	Year       *int   `json:"year" yaml:"year"`
}

// MarketReport is a web search result quoting a market size or growth rate.
// The parsed fields keep the matched text verbatim; numeric interpretation
// happens when a forecast is built.
type MarketReport struct {
	Title      string `json:"title" yaml:"title"`
	Snippet    string `json:"snippet" yaml:"snippet"`
	Link       string `json:"link" yaml:"link"`
	Technology string `json:"technology" yaml:"technology"`
	Year       *int   `json:"year" yaml:"year"`

	// MarketSize is the matched currency expression, e.g. "$6.5 billion".
	MarketSize string `json:"market_size,omitempty" yaml:"market_size,omitempty"`

	// CAGR is the matched growth rate, e.g. "12%".
	CAGR string `json:"cagr,omitempty" yaml:"cagr,omitempty"`

	ForecastStart *int     `json:"forecast_start" yaml:"forecast_start"`
	ForecastEnd   *int     `json:"forecast_end" yaml:"forecast_end"`
	Regions       []string `json:"regions" yaml:"regions"`
}

// SignalType tags records of the global pulse.
type SignalType string

const (
	SignalNews   SignalType = "news"
	SignalPatent SignalType = "patent"
)

// Signal is a news article or recent patent collected by the global pulse.
type Signal struct {
	Title      string     `json:"title" yaml:"title"`
	Snippet    string     `json:"snippet" yaml:"snippet"`
	Source     string     `json:"source,omitempty" yaml:"source,omitempty"`
	Link       string     `json:"link" yaml:"link"`
	Date       string     `json:"date" yaml:"date"`
	Year       *int       `json:"year" yaml:"year"`
	Country    string     `json:"country" yaml:"country"`
	SignalType SignalType `json:"signal_type" yaml:"signal_type"`
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// RecordYear and RecordCountry expose the derived fields to the trend
// aggregator.
func (p Patent) RecordYear() *int { return p.Year }
func (p Patent) RecordCountry() string { return p.Country }
func (p Paper) RecordYear() *int { return p.Year }
func (p Paper) RecordCountry() string { return p.Country }
func (f Funding) RecordYear() *int { return f.Year }
func (m MarketReport) RecordYear() *int { return m.Year }
func (s Signal) RecordYear() *int { return s.Year }
func (s Signal) RecordCountry() string { return s.Country }
