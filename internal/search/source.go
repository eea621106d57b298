// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search fetches raw record batches from SerpAPI engines
// (google, google_patents, google_scholar, google_news) and converts them
// into typed records. A Source abstracts the transport so that runs can be
// recorded to and replayed from YAML snapshots.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
)

// SerpAPI engine identifiers.
const (
	EngineGoogle  = "google"
	EnginePatents = "google_patents"
	EngineScholar = "google_scholar"
	EngineNews    = "google_news"
)

// ErrMissingAPIKey is returned when a live client is built without a key.
var ErrMissingAPIKey = errors.New("serpapi: api key is not configured")

// Source runs one search request. Implementations must be safe for
// concurrent use.
type Source interface {
	Search(ctx context.Context, p Params) (Response, error)
}

// Params are the request parameters of one search.
type Params struct {
	Engine string `yaml:"engine"`
	Query  string `yaml:"q"`
	Num    int    `yaml:"num,omitempty"`
	// HL and GL are the interface language and country, e.g. "en", "us".
	HL string `yaml:"hl,omitempty"`
	GL string `yaml:"gl,omitempty"`
	// When is a recency window such as "2d".
	When string `yaml:"when,omitempty"`
	Sort string `yaml:"sort,omitempty"`
}

// Values encodes p as query parameters, omitting empty fields.
func (p Params) Values() url.Values {
	v := url.Values{}
	v.Set("engine", p.Engine)
	v.Set("q", p.Query)
	if p.Num > 0 {
		v.Set("num", strconv.Itoa(p.Num))
	}
	for k, val := range map[string]string{"hl": p.HL, "gl": p.GL, "when": p.When, "sort": p.Sort} {
		if val != "" {
			v.Set(k, val)
		}
	}
	return v
}

// Response holds the result lists of a search. A key missing from the
// upstream payload decodes as an empty list.
type Response struct {
	OrganicResults []RawResult `json:"organic_results" yaml:"organic_results"`
	NewsResults    []RawResult `json:"news_results" yaml:"news_results"`
}

// RawResult is the union of fields the engines return per result.
type RawResult struct {
	Title   string `json:"title" yaml:"title"`
	Snippet string `json:"snippet" yaml:"snippet"`
	Link    string `json:"link" yaml:"link"`

	// PatentLink is set by google_patents instead of Link.
	PatentLink string `json:"patent_link,omitempty" yaml:"patent_link,omitempty"`

	PublicationDate string `json:"publication_date,omitempty" yaml:"publication_date,omitempty"`
	FilingDate      string `json:"filing_date,omitempty" yaml:"filing_date,omitempty"`
	PriorityDate    string `json:"priority_date,omitempty" yaml:"priority_date,omitempty"`

	PublicationInfo *PublicationInfo `json:"publication_info,omitempty" yaml:"publication_info,omitempty"`

	Source SourceName `json:"source,omitempty" yaml:"source,omitempty"`
	Date   string     `json:"date,omitempty" yaml:"date,omitempty"`
}

// PublicationInfo is the google_scholar publication block.
type PublicationInfo struct {
	Summary string       `json:"summary,omitempty" yaml:"summary,omitempty"`
	Year    FlexString   `json:"year,omitempty" yaml:"year,omitempty"`
	Authors []AuthorInfo `json:"authors,omitempty" yaml:"authors,omitempty"`
}

// AuthorInfo is one scholar author entry.
type AuthorInfo struct {
	Name string `json:"name" yaml:"name"`
}

// FlexString decodes a JSON string or number as a string. Null and other
// types decode as empty.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&n); err == nil {
		*f = FlexString(n.String())
		return nil
	}
	*f = ""
	return nil
}

// SourceName decodes either a plain string or a {"name": ...} object, the
// two shapes engines use for the publisher of a result.
type SourceName string

// UnmarshalJSON implements json.Unmarshaler.
func (s *SourceName) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = SourceName(str)
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		*s = SourceName(obj.Name)
		return nil
	}
	*s = ""
	return nil
}
