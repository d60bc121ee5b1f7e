// Package search ranks recipes and users against a free-text query. Matching
// tolerates typos: a term hits a field when it is a substring of it, or when
// it is within a bounded edit distance of one of its words.
package search

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Threshold is the worst score still counted as a match. Scores run from 0
// (substring hit) to 1 (nothing in common).
const Threshold = 0.4

// Terms splits a query on whitespace and commas into lowercase terms
func Terms(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), isSeparator)
	seen := make(map[string]bool, len(fields))
	terms := fields[:0]
	for _, f := range fields {
		if !seen[f] {
			seen[f] = true
			terms = append(terms, f)
		}
	}
	return terms
}

// Score returns the best score of any term against any field, and whether it
// is within Threshold.
func Score(terms []string, fields ...string) (float64, bool) {
	best := 1.0
	for _, term := range terms {
		for _, field := range fields {
			if s := termScore(term, field); s < best {
				best = s
			}
			if best == 0 {
				return 0, true
			}
		}
	}
	return best, best <= Threshold
}

func termScore(term, field string) float64 {
	f := strings.ToLower(field)
	if f == "" {
		return 1
	}
	if strings.Contains(f, term) {
		return 0
	}
	best := 1.0
	for _, word := range strings.FieldsFunc(f, isSeparator) {
		if s := editScore(term, word); s < best {
			best = s
		}
		// abbreviations such as "chkn" for "chicken"
		if fuzzy.Match(term, word) {
			if s := 1 - float64(utf8.RuneCountInString(term))/float64(utf8.RuneCountInString(word)); s < best {
				best = s
			}
		}
	}
	return best
}

func editScore(a, b string) float64 {
	n := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	return float64(fuzzy.LevenshteinDistance(a, b)) / float64(n)
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == ',' || r == '-' || r == '/'
}

// Hit is one matched item and its score
type Hit[T any] struct {
	Item  T
	Score float64
}

// Rank keeps the items whose fields match the query, best score first.
// Items with equal scores keep their input order. At most limit hits are
// returned when limit is positive.
func Rank[T any](query string, items []T, fields func(T) []string, limit int) []T {
	terms := Terms(query)
	if len(terms) == 0 {
		return []T{}
	}
	hits := make([]Hit[T], 0, len(items))
	for _, item := range items {
		if s, ok := Score(terms, fields(item)...); ok {
			hits = append(hits, Hit[T]{Item: item, Score: s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score < hits[j].Score })
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]T, len(hits))
	for i, h := range hits {
		out[i] = h.Item
	}
	return out
}
