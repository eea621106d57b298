// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// TrendPoint counts records for one year. Series are sorted ascending by year
// and years are unique within a series.
type TrendPoint struct {
	Year  int `json:"year" yaml:"year"`
	Count int `json:"count" yaml:"count"`
}

// CountryTrendPoint counts records for one (country, year) pair.
type CountryTrendPoint struct {
	Country string `json:"country" yaml:"country"`
	Year    int    `json:"year" yaml:"year"`
	Count   int    `json:"count" yaml:"count"`
}

// AdoptionPoint is one step of the cumulative adoption curve.
type AdoptionPoint struct {
	Year       int     `json:"year" yaml:"year"`
	Count      int     `json:"count" yaml:"count"`
	Cumulative int     `json:"cum" yaml:"cum"`
	Adoption   float64 `json:"adoption" yaml:"adoption"`
}

// MarketForecast is a projected market value per year, in billions of USD.
// Years and Billions correspond positionally.
type MarketForecast struct {
	Years    []int     `json:"years" yaml:"years"`
	Billions []float64 `json:"billions" yaml:"billions"`
}

// Max returns the largest projected value, or false for an empty series.
func (f *MarketForecast) Max() (float64, bool) {
	if f == nil || len(f.Billions) == 0 {
		return 0, false
	}
	m := f.Billions[0]
	for _, v := range f.Billions[1:] {
		if v > m {
			m = v
		}
	}
	return m, true
}

// HypeStage labels where a technology sits on the hype cycle.
type HypeStage string

const (
	HypeNoData  HypeStage = "No Data"
	HypeTrigger HypeStage = "Innovation Trigger"
	HypePeak    HypeStage = "Peak of Hype"
	HypeTrough  HypeStage = "Trough of Disillusionment"
	HypeSlope   HypeStage = "Slope of Enlightenment"
	HypePlateau HypeStage = "Plateau of Productivity"
	HypeUnknown HypeStage = "Unknown"
)

// AlertType categorises dashboard alerts.
type AlertType string

const (
	AlertPatent AlertType = "patent"
	AlertTech   AlertType = "tech"
	AlertMarket AlertType = "market"
)

// Alert is a short, human-readable notice derived from the trends.
type Alert struct {
	Type    AlertType `json:"type" yaml:"type"`
	Message string    `json:"message" yaml:"message"`
	// Time is a coarse horizon: "recent", "forecast" or "current".
	Time string `json:"time" yaml:"time"`
}

// Number is a float that serializes NaN and infinities as JSON null.
type Number float64

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// UnmarshalJSON implements json.Unmarshaler. A null decodes as NaN.
func (n *Number) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*n = Number(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// NumberPtr converts f to a *Number, returning nil for NaN and infinities.
func NumberPtr(f float64) *Number {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	n := Number(f)
	return &n
}

// InvestmentEntry is one country's relative investment score (0-100).
type InvestmentEntry struct {
	Country string  `json:"country" yaml:"country"`
	Score   float64 `json:"score" yaml:"score"`
}

// InvestmentIndex is an ordered country -> score mapping, highest score
// first. It serializes as a JSON object whose keys keep that order.
type InvestmentIndex []InvestmentEntry

// MarshalJSON implements json.Marshaler.
func (ix InvestmentIndex) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range ix {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Country)
		if err != nil {
			return nil, err
		}
		val, err := Number(e.Score).MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler, preserving key order.
func (ix *InvestmentIndex) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*ix = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("investment index: expected object, got %v", tok)
	}
	out := InvestmentIndex{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("investment index: expected string key, got %v", keyTok)
		}
		var n Number
		if err := dec.Decode(&n); err != nil {
			return fmt.Errorf("investment index: value for %q: %w", key, err)
		}
		out = append(out, InvestmentEntry{Country: key, Score: float64(n)})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*ix = out
	return nil
}

// FormatPercent renders v with at most two decimals, trimming trailing zeros.
func FormatPercent(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
