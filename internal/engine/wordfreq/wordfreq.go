// Package wordfreq ranks the words of a set of titles by frequency.
package wordfreq

import (
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// WordCount is one ranked entry.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Ranking is ordered by Count descending; equal counts keep first-occurrence order.
type Ranking []WordCount

// Top returns the first k entries. k <= 0 returns the whole ranking.
func (r Ranking) Top(k int) Ranking {
	if k <= 0 || k >= len(r) {
		return r
	}
	return r[:k]
}

// Words returns just the words, in rank order.
func (r Ranking) Words() []string {
	out := make([]string, len(r))
	for i, wc := range r {
		out[i] = wc.Word
	}
	return out
}

// Corpus joins titles with a single space, keeping input order.
func Corpus(titles []string) string {
	return strings.Join(titles, " ")
}

// Tokenize lower-cases text and returns its maximal runs of letters, numbers and underscores.
func Tokenize(text string) []string {
	// A Caser keeps state, so each call builds its own.
	lower := cases.Lower(language.Und).String(text)
	return strings.FieldsFunc(lower, func(r rune) bool { return !isWordRune(r) })
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Count tallies tokens.
func Count(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}
	return counts
}

// Analyze builds the full ranking for titles. Empty input gives an empty ranking.
func Analyze(titles []string) Ranking {
	tokens := Tokenize(Corpus(titles))
	counts := Count(tokens)

	ranking := make(Ranking, 0, len(counts))
	seen := make(map[string]bool, len(counts))
	for _, tok := range tokens {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		ranking = append(ranking, WordCount{Word: tok, Count: counts[tok]})
	}

	slices.SortStableFunc(ranking, func(a, b WordCount) int {
		return b.Count - a.Count
	})
	return ranking
}
