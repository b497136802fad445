package search

import (
	"slices"
	"unicode"
)

// Score constants. Ranking depends on these exact values.
const (
	scoreExact         = 1000
	scoreSubstring     = 100
	bonusPrefix        = 50
	bonusWordBoundary  = 30
	bonusPositionLimit = 20
	scoreFuzzy         = 10
	bonusConsecutive   = 5
	bonusDensity       = 20
)

// MatchResult is the outcome of scoring a single text against a query.
type MatchResult struct {
	Matched bool
	Score   int
}

// ScoreText scores text against query, comparing case-insensitively. The
// query is expected to be trimmed already.
func ScoreText(text, query string) MatchResult {
	q := lowerRunes(query)
	return scoreRunes(lowerRunes(text), q, queryChars(q))
}

// scoreRunes does the work of ScoreText on pre-lowered runes. chars is query
// with spaces removed, so Rank can derive it once per call.
func scoreRunes(text, query, chars []rune) MatchResult {
	if len(text) == 0 {
		return MatchResult{}
	}

	if slices.Equal(text, query) {
		return MatchResult{Matched: true, Score: scoreExact}
	}

	if pos := indexRunes(text, query); pos >= 0 {
		score := scoreSubstring
		if pos == 0 {
			score += bonusPrefix
		}
		if pos == 0 || isBoundary(text[pos-1]) {
			score += bonusWordBoundary
		}
		score += max(0, bonusPositionLimit-pos)
		return MatchResult{Matched: true, Score: score}
	}

	return fuzzyScore(text, chars)
}

// fuzzyScore performs the greedy subsequence match.
func fuzzyScore(text, chars []rune) MatchResult {
	qi := 0
	run, maxRun := 0, 0
	last := -2

	for i := 0; i < len(text) && qi < len(chars); i++ {
		if text[i] != chars[qi] {
			continue
		}
		qi++
		if last == i-1 {
			run++
		} else {
			run = 1
		}
		last = i
		maxRun = max(maxRun, run)
	}

	if qi < len(chars) {
		return MatchResult{}
	}

	score := scoreFuzzy + bonusConsecutive*maxRun + bonusDensity*len(chars)/len(text)
	return MatchResult{Matched: true, Score: score}
}

func isBoundary(r rune) bool {
	switch r {
	case ' ', '-', '_', '/':
		return true
	}
	return false
}

// lowerRunes lower-cases s one rune at a time. The result has exactly one
// element per rune of s, so indexes into it are indexes into []rune(s).
func lowerRunes(s string) []rune {
	rs := []rune(s)
	for i, r := range rs {
		rs[i] = unicode.ToLower(r)
	}
	return rs
}

// queryChars returns q without spaces.
func queryChars(q []rune) []rune {
	chars := make([]rune, 0, len(q))
	for _, r := range q {
		if r != ' ' {
			chars = append(chars, r)
		}
	}
	return chars
}

// indexRunes returns the index of the first occurrence of needle in hay, or -1.
func indexRunes(hay, needle []rune) int {
	n := len(needle)
	for i := 0; i+n <= len(hay); i++ {
		if slices.Equal(hay[i:i+n], needle) {
			return i
		}
	}
	return -1
}
