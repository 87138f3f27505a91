// Package search ranks entry titles against a query fragment.
//
// Scoring is layered: an exact title match beats a prefix match, a prefix
// match beats a substring match, and a substring match beats a near-miss
// within a small edit distance. Titles outside all tiers score zero and are
// excluded from the result. All comparisons are case-insensitive.
package search

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

const (
	ScoreExactMatch     = 100.0
	ScorePrefixMatch    = 75.0
	ScoreSubstringMatch = 50.0
	ScoreFuzzyMatch     = 25.0

	// Bonus for substring matches that start earlier in the title.
	ScorePositionBonus = 10.0

	// Minimum normalized similarity for the edit-distance tier.
	fuzzyThreshold = 0.5
)

// Match pairs an index into the ranked slice with its score.
type Match struct {
	Index int
	Score float64
}

// Rank scores every title against fragment and returns the matches ordered
// by descending score. Equal scores keep the original title order. An empty
// fragment matches nothing.
func Rank(fragment string, titles []string) []Match {
	fragment = strings.ToLower(strings.TrimSpace(fragment))
	if fragment == "" {
		return nil
	}

	matches := make([]Match, 0, len(titles))
	for i, title := range titles {
		score := Score(fragment, strings.ToLower(title))
		if score == 0 {
			continue
		}
		matches = append(matches, Match{Index: i, Score: score})
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Score > matches[b].Score
	})
	return matches
}

// Score computes the lexical score of a single lower-cased title against a
// lower-cased fragment.
func Score(fragment, title string) float64 {
	if fragment == "" || title == "" {
		return 0
	}

	if fragment == title {
		return ScoreExactMatch
	}

	if strings.HasPrefix(title, fragment) {
		return ScorePrefixMatch
	}

	if idx := strings.Index(title, fragment); idx >= 0 {
		// Earlier substring matches score higher.
		bonus := ScorePositionBonus * (1.0 - float64(idx)/float64(len(title)))
		return ScoreSubstringMatch + bonus
	}

	if sim := similarity(fragment, title); sim > fuzzyThreshold {
		return ScoreFuzzyMatch * sim
	}

	return 0
}

// similarity normalizes the edit distance between two strings into [0, 1],
// where 1 means equal.
func similarity(a, b string) float64 {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(longest)
}
