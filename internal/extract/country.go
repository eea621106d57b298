// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/techscope/pkg/types"
)

// countryKeywords maps a canonical country label to lower-case keywords.
// Tables are slices so that the first matching country wins in a fixed order.
type countryKeywords struct {
	Country  string
	Keywords []string
}

// broadCountries is used for patent titles and company descriptions.
var broadCountries = []countryKeywords{
	{"USA", []string{"usa", "united states", "us-based", "american"}},
	{"China", []string{"china", "chinese"}},
	{"India", []string{"india", "indian"}},
	{"Japan", []string{"japan", "japanese"}},
	{"Germany", []string{"germany", "german"}},
	{"France", []string{"france", "french"}},
	{"UK", []string{"uk", "united kingdom", "british"}},
	{"South Korea", []string{"korea", "south korea"}},
	{"Israel", []string{"israel", "israeli"}},
}

// newsCountries is used for pulse news snippets and recent patent titles.
var newsCountries = []countryKeywords{
	{"USA", []string{"usa", "united states", "american"}},
	{"China", []string{"china", "chinese"}},
	{"India", []string{"india", "indian"}},
	{"Japan", []string{"japan"}},
	{"Germany", []string{"germany"}},
	{"UK", []string{"uk", "britain"}},
	{"France", []string{"france"}},
}

// InferCountry matches text against the broad nine-country keyword table.
// It returns types.Unknown when no keyword occurs.
func InferCountry(text string) string {
	return inferFrom(broadCountries, text)
}

// InferNewsCountry matches text against the seven-country news table.
func InferNewsCountry(text string) string {
	return inferFrom(newsCountries, text)
}

func inferFrom(table []countryKeywords, text string) string {
	if text == "" {
		return types.Unknown
	}
	t := strings.ToLower(text)
	for _, c := range table {
		for _, kw := range c.Keywords {
			if strings.Contains(t, kw) {
				return c.Country
			}
		}
	}
	return types.Unknown
}

var patentCodePattern = regexp.MustCompile(`/patent/([A-Z]{2})`)

// jurisdictions maps patent office codes to country labels.
var jurisdictions = map[string]string{
	"US": "USA",
	"EP": "Europe",
	"WO": "WIPO",
	"CN": "China",
	"JP": "Japan",
	"KR": "South Korea",
	"IN": "India",
}

// PatentCountry reads the two-letter jurisdiction code from a patent URL
// path (".../patent/US1234567B2"). Unmapped codes are returned verbatim.
func PatentCountry(link string) (string, bool) {
	m := patentCodePattern.FindStringSubmatch(link)
	if m == nil {
		return "", false
	}
	if c, ok := jurisdictions[m[1]]; ok {
		return c, true
	}
	return m[1], true
}

// domainCountries is checked in order.
var domainCountries = []struct {
	Suffix  string
	Country string
}{
	{".edu", "USA"},
	{".ac.uk", "UK"},
	{".uk", "UK"},
	{".cn", "China"},
	{".in", "India"},
	{".de", "Germany"},
	{".jp", "Japan"},
	{".fr", "France"},
}

// DomainCountry guesses a country from well-known domain fragments in link.
func DomainCountry(link string) (string, bool) {
	if link == "" {
		return "", false
	}
	l := strings.ToLower(link)
	for _, d := range domainCountries {
		if strings.Contains(l, d.Suffix) {
			return d.Country, true
		}
	}
	return "", false
}
