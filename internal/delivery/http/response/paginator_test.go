package response

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaginatorMiddlePage(t *testing.T) {
	r := httptest.NewRequest("GET", "http://api.local/api/contacts?per_page=10&search=sao", nil)

	p := NewPaginator(r, []int{1, 2, 3}, 10, 25, 2, 10)

	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 3, p.LastPage)
	assert.Equal(t, int64(25), p.Total)
	assert.Equal(t, "http://api.local/api/contacts", p.Path)
	assert.Equal(t, "http://api.local/api/contacts?page=1&per_page=10&search=sao", p.FirstPageURL)
	assert.Equal(t, "http://api.local/api/contacts?page=3&per_page=10&search=sao", p.LastPageURL)
	require.NotNil(t, p.PrevPageURL)
	require.NotNil(t, p.NextPageURL)
	assert.Contains(t, *p.NextPageURL, "page=3")
	require.NotNil(t, p.From)
	assert.Equal(t, 11, *p.From)
	assert.Equal(t, 20, *p.To)

	// previous, 1, 2, 3, next
	require.Len(t, p.Links, 5)
	assert.True(t, p.Links[2].Active)
	assert.Equal(t, "2", p.Links[2].Label)
}

func TestNewPaginatorEmpty(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/contacts", nil)

	p := NewPaginator(r, []int{}, 0, 0, 1, 10)

	assert.Equal(t, 1, p.LastPage)
	assert.Nil(t, p.From)
	assert.Nil(t, p.To)
	assert.Nil(t, p.PrevPageURL)
	assert.Nil(t, p.NextPageURL)
}

func TestPageNumbersWindow(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4, 5}, pageNumbers(1, 5))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 0, 49, 50}, pageNumbers(2, 50))
	assert.Equal(t, []int{1, 2, 0, 22, 23, 24, 25, 26, 27, 28, 0, 49, 50}, pageNumbers(25, 50))
	assert.Equal(t, []int{1, 2, 0, 43, 44, 45, 46, 47, 48, 49, 50}, pageNumbers(50, 50))
}
