// Package search matches user input against catalog category names.
package search

import (
	"fmt"
	"sort"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/aisle/internal/domain"
	"github.com/sahilm/fuzzy"
)

// CategoryMatch is one category matching a picker query
type CategoryMatch struct {
	Name           string
	Index          int   // position in the source list
	MatchedIndexes []int // rune positions that matched, for highlighting
}

// CategoryIndex implements fuzzy.Source over a category list
type CategoryIndex struct {
	names []string
	lower []string
}

// NewCategoryIndex indexes names. The order of names is kept.
func NewCategoryIndex(names []string) *CategoryIndex {
	lower := make([]string, len(names))
	for i, n := range names {
		lower[i] = strings.ToLower(n)
	}
	return &CategoryIndex{names: names, lower: lower}
}

// String returns the lowercase name at index i (implements fuzzy.Source)
func (idx *CategoryIndex) String(i int) string { return idx.lower[i] }

// Len returns the number of names (implements fuzzy.Source)
func (idx *CategoryIndex) Len() int { return len(idx.names) }

// Names returns the indexed names in source order
func (idx *CategoryIndex) Names() []string { return idx.names }

// Match returns the categories matching query, best first.
// An empty query returns every category in source order.
func (idx *CategoryIndex) Match(query string) []CategoryMatch {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		out := make([]CategoryMatch, len(idx.names))
		for i, n := range idx.names {
			out[i] = CategoryMatch{Name: n, Index: i}
		}
		return out
	}

	matches := fuzzy.FindFrom(query, idx)
	out := make([]CategoryMatch, len(matches))
	for i, m := range matches {
		out[i] = CategoryMatch{
			Name:           idx.names[m.Index],
			Index:          m.Index,
			MatchedIndexes: m.MatchedIndexes,
		}
	}
	return out
}

// ResolveCategory maps loose user input to exactly one category name.
//
// A case-insensitive exact match wins. Otherwise the closest fuzzy match is
// used if it is unique. Empty input resolves to "" (no category).
func ResolveCategory(input string, categories []string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}

	for _, c := range categories {
		if strings.EqualFold(c, input) {
			return c, nil
		}
	}

	ranks := lfuzzy.RankFindNormalizedFold(input, categories)
	if len(ranks) == 0 {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownCategory, input)
	}
	sort.Sort(ranks)

	if len(ranks) > 1 && ranks[0].Distance == ranks[1].Distance {
		candidates := make([]string, 0, len(ranks))
		for _, r := range ranks {
			if r.Distance == ranks[0].Distance {
				candidates = append(candidates, r.Target)
			}
		}
		return "", fmt.Errorf("%w: %q is ambiguous (%s)", domain.ErrUnknownCategory, input, strings.Join(candidates, ", "))
	}

	return ranks[0].Target, nil
}
