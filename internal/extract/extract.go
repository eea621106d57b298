// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns free text into scalar facts: years, countries,
// readiness levels, and market figures. Every extractor is total. A
// missing or unmatched input yields "no value" (false, or Unknown for
// country inference), never an error.
package extract

import (
	"regexp"
	"strconv"
)

var yearPattern = regexp.MustCompile(`(?:19|20)\d\d`)

// Year returns the first 19xx or 20xx substring of text as an integer.
func Year(text string) (int, bool) {
	m := yearPattern.FindString(text)
	if m == "" {
		return 0, false
	}
	y, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return y, true
}

// DateYear reads the year from the first four characters of a date string
// such as "2021-03-04". All four characters must be digits.
func DateYear(date string) (int, bool) {
	if len(date) < 4 {
		return 0, false
	}
	for i := 0; i < 4; i++ {
		if date[i] < '0' || date[i] > '9' {
			return 0, false
		}
	}
	y, _ := strconv.Atoi(date[:4])
	return y, true
}
