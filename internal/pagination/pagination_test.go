package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"abc", 1},
		{"0", 1},
		{"-3", 1},
		{"1", 1},
		{"2", 2},
		{"42", 42},
		{"2.5", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParsePageNumber(tt.raw), "raw=%q", tt.raw)
	}
}

func TestPaginateSplitsIntoFixedPages(t *testing.T) {
	items := make([]int, 13)
	for i := range items {
		items[i] = i
	}

	first := Paginate(items, 10, 1)
	require.Len(t, first.Items, 10)
	assert.Equal(t, 0, first.Items[0])
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 2, first.TotalPages)
	assert.False(t, first.HasPrevious)
	assert.True(t, first.HasNext)

	second := Paginate(items, 10, 2)
	require.Len(t, second.Items, 3)
	assert.Equal(t, 10, second.Items[0])
	assert.Equal(t, 2, second.Number)
	assert.True(t, second.HasPrevious)
	assert.False(t, second.HasNext)
}

func TestPaginateExactMultiple(t *testing.T) {
	items := make([]string, 20)

	page := Paginate(items, 10, 2)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, 2, page.TotalPages)
	assert.False(t, page.HasNext)
}

func TestPaginateOutOfRangeFallsBackToFirstPage(t *testing.T) {
	items := []int{1, 2, 3}

	page := Paginate(items, 10, 99)
	assert.Equal(t, 1, page.Number)
	assert.Len(t, page.Items, 3)
	assert.Equal(t, 1, page.TotalPages)
}

func TestPaginateEmpty(t *testing.T) {
	page := Paginate([]int{}, 10, 1)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.TotalPages)
	assert.False(t, page.HasPrevious)
	assert.False(t, page.HasNext)
}

func TestPaginateIsStable(t *testing.T) {
	items := []int{5, 4, 3, 2, 1}

	a := Paginate(items, 2, 2)
	b := Paginate(items, 2, 2)
	assert.Equal(t, a, b)
	assert.Equal(t, []int{3, 2}, a.Items)
}
