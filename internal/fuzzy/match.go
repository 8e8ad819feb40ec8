// Package fuzzy provides deterministic approximate string matching for the
// resolvers. Matching is similarity-ratio based: a fixed threshold, a single
// best match, and lexicographic tie-breaking, so callers can assert exact
// outcomes in tests.
package fuzzy

import (
	"github.com/agnivade/levenshtein"
)

// DefaultMinRatio is the similarity threshold used by the resolvers.
const DefaultMinRatio = 0.72

// Ratio returns the similarity between two strings in [0, 1].
// 1.0 means identical; 0.0 means nothing in common.
func Ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	distance := levenshtein.ComputeDistance(a, b)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

// Closest returns the candidate with the highest similarity ratio to query,
// provided it clears minRatio. Ties resolve to the lexicographically smaller
// candidate, so the result does not depend on input order.
func Closest(query string, candidates []string, minRatio float64) (string, bool) {
	if query == "" {
		return "", false
	}
	best := ""
	bestRatio := minRatio
	found := false
	for _, candidate := range candidates {
		r := Ratio(query, candidate)
		if r < bestRatio {
			continue
		}
		if r > bestRatio || !found || candidate < best {
			best = candidate
			bestRatio = r
			found = true
		}
	}
	return best, found
}
