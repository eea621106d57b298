// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import "strings"

// DefaultTRL is assigned when no readiness keyword matches.
const DefaultTRL = 2

// trlLevels is checked from the highest level down; the first level with a
// matching keyword wins.
var trlLevels = []struct {
	Level    int
	Keywords []string
}{
	{9, []string{"mission proven", "flight test", "operational system"}},
	{8, []string{"qualified", "completed system"}},
	{7, []string{"system prototype", "operational environment"}},
	{6, []string{"prototype", "demonstrated"}},
	{5, []string{"validated", "tested"}},
	{4, []string{"lab testing", "laboratory validation"}},
	{3, []string{"proof of concept"}},
	{2, []string{"concept", "modeling", "simulation"}},
	{1, []string{"theoretical", "hypothesis"}},
}

// EstimateTRL estimates the technology readiness level (1-9) described by text.
func EstimateTRL(text string) int {
	t := strings.ToLower(text)
	for _, l := range trlLevels {
		for _, kw := range l.Keywords {
			if strings.Contains(t, kw) {
				return l.Level
			}
		}
	}
	return DefaultTRL
}
