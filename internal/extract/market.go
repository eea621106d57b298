// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	marketSizePattern = regexp.MustCompile(`(?i)\$?\s*\d[\d.,]*\s*(?:billion|million|trillion|bn|mn|b|m|t)`)
	cagrPattern       = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*%\s*(?:cagr|compound annual growth)`)
	forecastPattern   = regexp.MustCompile(`(20\d\d).{0,15}(20\d\d)`)
	leadingNumber     = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// regions are matched as lower-case substrings, reported in this order.
var regions = []string{
	"north america", "europe", "asia-pacific", "apac", "china", "india",
	"japan", "middle east", "latin america", "usa", "uk",
}

// MarketSize returns the first currency expression in text, e.g.
// "$6.5 billion", exactly as matched.
func MarketSize(text string) (string, bool) {
	m := marketSizePattern.FindString(text)
	return m, m != ""
}

// CAGR returns the growth rate quoted before "CAGR" or "compound annual
// growth", formatted as "<n>%".
func CAGR(text string) (string, bool) {
	m := cagrPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1] + "%", true
}

// ForecastYears returns two 20xx years at most 15 characters apart, such as
// the range in "from 2024 to 2030".
func ForecastYears(text string) (start, end int, ok bool) {
	m := forecastPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, false
	}
	start, _ = strconv.Atoi(m[1])
	end, _ = strconv.Atoi(m[2])
	return start, end, true
}

// Regions lists the known regions mentioned in text. The result is never nil.
func Regions(text string) []string {
	t := strings.ToLower(text)
	out := []string{}
	for _, r := range regions {
		if strings.Contains(t, r) {
			out = append(out, r)
		}
	}
	return out
}

// SizeToBillions converts a market size expression to billions of USD.
// The unit word directly after the number decides the scale: trillion, tn
// and t multiply by 1000; million, mn and m divide by 1000; anything else
// is read as billions.
func SizeToBillions(size string) (float64, bool) {
	s := strings.ToLower(size)
	s = strings.NewReplacer("$", "", "usd", "", ",", "").Replace(s)
	loc := leadingNumber.FindStringIndex(s)
	if loc == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[loc[0]:loc[1]], 64)
	if err != nil {
		return 0, false
	}
	switch unitAfter(s[loc[1]:]) {
	case "trillion", "tn", "t":
		return v * 1000, true
	case "million", "mn", "m":
		return v / 1000, true
	}
	return v, true
}

func unitAfter(s string) string {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })
	if end < 0 {
		return s
	}
	return s[:end]
}

// CAGRPercent reads the leading number of a percentage string like "12.5%".
func CAGRPercent(s string) (float64, bool) {
	m := leadingNumber.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
