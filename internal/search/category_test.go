package search

import (
	"testing"

	"github.com/mmcdole/aisle/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var categories = []string{
	"beauty", "fragrances", "furniture", "groceries", "home-decoration",
	"laptops", "mens-shirts", "smartphones", "womens-shoes",
}

func names(ms []CategoryMatch) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Name
	}
	return out
}

func TestCategoryIndex_Match(t *testing.T) {
	idx := NewCategoryIndex(categories)

	t.Run("empty query lists everything in order", func(t *testing.T) {
		got := idx.Match("  ")
		assert.Equal(t, categories, names(got))
		assert.Empty(t, got[0].MatchedIndexes)
	})

	t.Run("subsequence match", func(t *testing.T) {
		got := idx.Match("lap")
		require.NotEmpty(t, got)
		assert.Equal(t, "laptops", got[0].Name)
		assert.Equal(t, []int{0, 1, 2}, got[0].MatchedIndexes)
	})

	t.Run("case insensitive", func(t *testing.T) {
		got := idx.Match("SMART")
		require.NotEmpty(t, got)
		assert.Equal(t, "smartphones", got[0].Name)
		assert.Equal(t, 7, got[0].Index)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, idx.Match("xyz"))
	})
}

func TestCategoryIndex_Source(t *testing.T) {
	idx := NewCategoryIndex([]string{"Beauty", "Laptops"})

	assert.Equal(t, 2, idx.Len())
	assert.Equal(t, "beauty", idx.String(0))
	assert.Equal(t, []string{"Beauty", "Laptops"}, idx.Names())
}

func TestResolveCategory(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "empty clears", input: "", want: ""},
		{name: "exact", input: "laptops", want: "laptops"},
		{name: "exact ignoring case", input: "Laptops", want: "laptops"},
		{name: "unique prefix", input: "frag", want: "fragrances"},
		{name: "unique subsequence", input: "hmdeco", want: "home-decoration"},
		{name: "unknown", input: "cars", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveCategory(tt.input, categories)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUnknownCategory)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveCategory_Ambiguous(t *testing.T) {
	_, err := ResolveCategory("shirts", []string{"mens-shirts", "kids-shirts"})

	require.ErrorIs(t, err, domain.ErrUnknownCategory)
	assert.ErrorContains(t, err, "ambiguous")
}
