package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := make([]int, 30)
	for i := range items {
		items[i] = i
	}

	t.Run("first page fills up", func(t *testing.T) {
		page := Paginate(items, 1, PerPage)
		assert.Len(t, page.Items, 25)
		assert.Equal(t, 0, page.Start)
		assert.Equal(t, 0, page.Items[0])
		assert.True(t, page.HasNext)
	})

	t.Run("last page holds the remainder", func(t *testing.T) {
		page := Paginate(items, 2, PerPage)
		assert.Len(t, page.Items, 5)
		assert.Equal(t, 25, page.Start)
		assert.Equal(t, 25, page.Items[0])
		assert.False(t, page.HasNext)
	})

	t.Run("past the end is empty, not an error", func(t *testing.T) {
		page := Paginate(items, 3, PerPage)
		assert.Empty(t, page.Items)
		assert.False(t, page.HasNext)
	})

	t.Run("short input fits one page", func(t *testing.T) {
		page := Paginate(items[:10], 1, PerPage)
		assert.Len(t, page.Items, 10)
		assert.False(t, page.HasNext)
	})

	t.Run("empty input", func(t *testing.T) {
		page := Paginate([]int{}, 1, PerPage)
		assert.Empty(t, page.Items)
		assert.Equal(t, 0, page.Start)
		assert.False(t, page.HasNext)
	})
}
