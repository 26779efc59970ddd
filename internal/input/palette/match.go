package palette

import (
	"strings"
	"unicode"
)

// scoring weights
const (
	baseScore         = 100
	consecutiveBonus  = 20
	wordBoundaryBonus = 15
	prefixBonus       = 25
	exactPrefixBonus  = 50
	gapPenalty        = 2
	lengthBonusLimit  = 20
)

// fuzzyMatch reports whether every rune of query (already lowercased)
// appears in text in order, ignoring case. It returns the score and the
// rune indices matched in text.
func fuzzyMatch(query []rune, text string) (int, []int) {
	if len(query) == 0 || text == "" {
		return 0, nil
	}
	original := []rune(text)
	lower := make([]rune, len(original))
	for i, r := range original {
		lower[i] = unicode.ToLower(r)
	}

	matches := make([]int, 0, len(query))
	qi := 0
	for i := 0; i < len(lower) && qi < len(query); i++ {
		if lower[i] == query[qi] {
			matches = append(matches, i)
			qi++
		}
	}
	if qi != len(query) {
		return 0, nil
	}
	return score(query, original, lower, matches), matches
}

func score(query, original, lower []rune, matches []int) int {
	s := baseScore
	for i := 1; i < len(matches); i++ {
		if matches[i] == matches[i-1]+1 {
			s += consecutiveBonus
		}
	}
	for _, idx := range matches {
		if isWordBoundary(original, idx) {
			s += wordBoundaryBonus
		}
	}
	if matches[0] == 0 {
		s += prefixBonus
	}
	if len(matches) > 1 {
		if gap := matches[len(matches)-1] - matches[0] - len(matches) + 1; gap > 0 {
			s -= gap * gapPenalty
		}
	}
	s -= matches[0]
	if len(lower) < lengthBonusLimit {
		s += lengthBonusLimit - len(lower)
	}
	if hasPrefix(lower, query) {
		s += exactPrefixBonus
	}
	return max(s, 1)
}

func hasPrefix(text, prefix []rune) bool {
	if len(text) < len(prefix) {
		return false
	}
	for i, r := range prefix {
		if text[i] != r {
			return false
		}
	}
	return true
}

// isWordBoundary reports whether runes[idx] starts a word: the first rune,
// a rune after punctuation or space, or a camelCase hump ("newFill").
func isWordBoundary(runes []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	prev, cur := runes[idx-1], runes[idx]
	if unicode.IsSpace(prev) || unicode.IsPunct(prev) {
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(cur)
}

// queryTerms lowercases query and splits it on whitespace. Each term is
// matched on its own, so "mask ao" finds "Add AO Generator Mask".
func queryTerms(query string) [][]rune {
	var terms [][]rune
	for _, f := range strings.Fields(query) {
		terms = append(terms, []rune(strings.ToLower(f)))
	}
	return terms
}
