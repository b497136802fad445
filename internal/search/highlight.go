package search

import (
	"slices"
	"strings"
)

// Span is a half-open [Start, End) range of rune offsets into a text.
type Span struct {
	Start int
	End   int
}

// Segment is a slice of the original text, marked when it matched the query.
type Segment struct {
	Text        string
	Highlighted bool
}

// FindSpans returns the ranges of text that match query, in ascending order.
// A direct substring match yields a single span. Otherwise the query
// characters (spaces removed) are matched as a subsequence repeatedly, left
// to right, with each match starting after the previous one ends.
func FindSpans(text, query string) []Span {
	q := lowerRunes(strings.TrimSpace(query))
	if len(q) == 0 {
		return nil
	}

	lower := lowerRunes(text)
	if pos := indexRunes(lower, q); pos >= 0 {
		return []Span{{Start: pos, End: pos + len(q)}}
	}

	chars := queryChars(q)
	if len(chars) == 0 {
		return nil
	}

	var spans []Span
	from := 0
	for from < len(lower) {
		span, ok := subsequenceSpan(lower, chars, from)
		if !ok {
			break
		}
		spans = append(spans, span)
		from = span.End
	}
	return spans
}

// subsequenceSpan greedily matches chars in text starting at from. The span
// runs from the first to one past the last matched position.
func subsequenceSpan(text, chars []rune, from int) (Span, bool) {
	start, qi := -1, 0
	for i := from; i < len(text) && qi < len(chars); i++ {
		if text[i] != chars[qi] {
			continue
		}
		if start < 0 {
			start = i
		}
		qi++
		if qi == len(chars) {
			return Span{Start: start, End: i + 1}, true
		}
	}
	return Span{}, false
}

// MergeSpans sorts spans by start and merges any that overlap or touch.
// The input slice is not modified.
func MergeSpans(spans []Span) []Span {
	if len(spans) == 0 {
		return nil
	}

	sorted := slices.Clone(spans)
	slices.SortStableFunc(sorted, func(a, b Span) int {
		return a.Start - b.Start
	})

	merged := []Span{sorted[0]}
	for _, cur := range sorted[1:] {
		last := &merged[len(merged)-1]
		if cur.Start <= last.End {
			last.End = max(last.End, cur.End)
			continue
		}
		merged = append(merged, cur)
	}
	return merged
}

// Highlight splits text into plain and highlighted segments for query.
// Joining the segment texts always gives back text.
func Highlight(text, query string) []Segment {
	spans := MergeSpans(FindSpans(text, query))
	if len(spans) == 0 {
		return []Segment{{Text: text}}
	}

	offsets := runeOffsets(text)
	segments := make([]Segment, 0, 2*len(spans)+1)
	last := 0
	for _, s := range spans {
		if s.Start > last {
			segments = append(segments, Segment{Text: text[offsets[last]:offsets[s.Start]]})
		}
		segments = append(segments, Segment{Text: text[offsets[s.Start]:offsets[s.End]], Highlighted: true})
		last = s.End
	}
	if last < len(offsets)-1 {
		segments = append(segments, Segment{Text: text[offsets[last]:]})
	}
	return segments
}

// runeOffsets maps rune index i of s to its byte offset. The final element
// is len(s), so offsets[n] is valid for a span ending at the last rune.
func runeOffsets(s string) []int {
	offsets := make([]int, 0, len(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	return append(offsets, len(s))
}
