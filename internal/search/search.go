package search

import (
	"strings"

	"github.com/nikbrunner/bmdash/internal/model"
	"github.com/sahilm/fuzzy"
)

// Result is a ranked bookmark with its title split for highlighting.
type Result struct {
	Bookmark *model.Bookmark
	Score    int
	Segments []Segment
}

// Search ranks bookmarks against query and keeps at most limit results
// (limit <= 0 keeps all). Results point into the bookmarks slice.
// An empty query returns every bookmark in its stored order.
func Search(bookmarks []model.Bookmark, query string, limit int) []Result {
	ptrs := make([]*model.Bookmark, len(bookmarks))
	for i := range bookmarks {
		ptrs[i] = &bookmarks[i]
	}

	var results []Result
	if strings.TrimSpace(query) == "" {
		results = make([]Result, len(ptrs))
		for i, b := range ptrs {
			results[i] = Result{Bookmark: b, Segments: []Segment{{Text: b.Title}}}
		}
	} else {
		matches := rankScored(ptrs, query)
		results = make([]Result, len(matches))
		for i, m := range matches {
			results[i] = Result{
				Bookmark: m.record,
				Score:    m.score,
				Segments: Highlight(m.record.Title, query),
			}
		}
	}

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// tagSource adapts a tag list to fuzzy.Source.
type tagSource []string

func (t tagSource) String(i int) string { return t[i] }
func (t tagSource) Len() int            { return len(t) }

// SuggestTags returns tags from all that fuzzy-match input, best first,
// leaving out tags that are already applied.
func SuggestTags(all, applied []string, input string) []string {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	skip := make(map[string]bool, len(applied))
	for _, t := range applied {
		skip[t] = true
	}
	var candidates tagSource
	for _, t := range all {
		if !skip[t] {
			candidates = append(candidates, t)
		}
	}

	matches := fuzzy.FindFrom(input, candidates)
	suggestions := make([]string, len(matches))
	for i, m := range matches {
		suggestions[i] = m.Str
	}
	return suggestions
}
