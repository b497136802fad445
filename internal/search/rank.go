package search

import (
	"slices"
	"strings"
)

// Field weights for the combined record score.
const (
	weightTitle = 3
	weightTags  = 2
	weightURL   = 1
)

// Record is anything that can be ranked against a query.
type Record interface {
	// MatchTitle returns the title used for matching. Implementations
	// prefer an alternate search title when one is set.
	MatchTitle() string
	MatchURL() string
	MatchTags() []string
}

// scored pairs a record with its combined score.
type scored[R Record] struct {
	record R
	score  int
}

// Rank filters records down to those matching query and orders them by
// relevance, best first. Records with equal scores keep their input order.
// An empty or whitespace-only query returns records unchanged.
func Rank[R Record](records []R, query string) []R {
	if strings.TrimSpace(query) == "" {
		return records
	}

	matches := rankScored(records, query)
	ranked := make([]R, len(matches))
	for i, m := range matches {
		ranked[i] = m.record
	}
	return ranked
}

// rankScored returns the matching records with their scores, sorted.
// query must not be blank.
func rankScored[R Record](records []R, query string) []scored[R] {
	q := lowerRunes(strings.TrimSpace(query))
	chars := queryChars(q)

	var matches []scored[R]
	for _, r := range records {
		score, ok := scoreRecord(r, q, chars)
		if ok {
			matches = append(matches, scored[R]{record: r, score: score})
		}
	}

	slices.SortStableFunc(matches, func(a, b scored[R]) int {
		return b.score - a.score
	})
	return matches
}

// scoreRecord combines the title, URL and best tag scores of r.
func scoreRecord(r Record, q, chars []rune) (int, bool) {
	title := scoreRunes(lowerRunes(r.MatchTitle()), q, chars)
	url := scoreRunes(lowerRunes(r.MatchURL()), q, chars)

	var tag MatchResult
	for _, t := range r.MatchTags() {
		res := scoreRunes(lowerRunes(t), q, chars)
		if res.Score > tag.Score {
			tag = res
		}
	}

	score := title.Score*weightTitle + tag.Score*weightTags + url.Score*weightURL
	return score, title.Matched || url.Matched || tag.Matched
}
