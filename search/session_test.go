package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tech-blog/search"
)

func TestSession_States(t *testing.T) {
	s := search.NewSession(nil)
	assert.Equal(t, search.StateIdle, s.State())
	assert.Empty(t, s.Results())

	s.SetQuery("nonexistent")
	assert.Equal(t, search.StateIdle, s.State(), "SetQuery alone does not search")

	s.Search(corpus())
	assert.Equal(t, search.StateNoResults, s.State())
	assert.Equal(t, "nonexistent", s.SearchedQuery())
	assert.Empty(t, s.Results())

	s.SetQuery("react")
	results := s.Search(corpus())
	assert.Equal(t, search.StateResults, s.State())
	require.Len(t, results, 3)
	assert.Equal(t, results, s.Results())

	s.SetQuery("  ")
	s.Search(corpus())
	assert.Equal(t, search.StateIdle, s.State())
	assert.Empty(t, s.Results())
}

func TestSession_FiltersAndClear(t *testing.T) {
	s := search.NewSession(search.NewEngine())
	s.SetQuery("react")
	s.SetFilters(search.Filters{Tags: []string{"Generics"}})

	results := s.Search(corpus())
	require.Len(t, results, 1)
	assert.Equal(t, "typescript-generics-guide", results[0].Post.Slug)

	s.ClearSearch()
	assert.Equal(t, "", s.Query())
	assert.True(t, s.Filters().IsZero())
	assert.Empty(t, s.Results())
	assert.Equal(t, search.StateIdle, s.State())
	assert.Equal(t, "idle", s.State().String())
}
