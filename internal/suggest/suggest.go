package suggest

import (
	"cmp"
	"slices"
	"strings"
)

// MinSimilarity is the score below which candidates are not suggested.
const MinSimilarity = 0.8

type scored struct {
	path  string
	score float64
}

// Normalize folds the spellings of a class name users mix up: dotted or
// slashed packages, '$' or '.' before nested classes, and letter case.
func Normalize(name string) string {
	return strings.ToLower(strings.NewReplacer(".", "/", "$", "/").Replace(name))
}

// Closest returns up to limit candidates most similar to query, best first.
// Ties keep candidate order.
func Closest(query string, candidates []string, limit int) []string {
	q := Normalize(query)

	var ranked []scored

	for _, c := range candidates {
		score := Similarity(q, Normalize(c))
		if score >= MinSimilarity {
			ranked = append(ranked, scored{path: c, score: score})
		}
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.path
	}

	return out
}
