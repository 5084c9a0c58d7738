package search_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tech-blog/models"
	"tech-blog/search"
)

func hooksGuide(excerpt string) models.Post {
	return models.Post{
		Slug:         "post-1",
		CategoryPath: "javascript/post-1",
		Metadata: models.PostMetadata{
			Title:       "React Hooks Guide",
			Excerpt:     excerpt,
			PublishedAt: "2024-01-15",
			Category:    "JavaScript",
			Tags:        []string{"React", "Hooks"},
		},
		Content: "Body text.",
	}
}

func corpus() []models.Post {
	return []models.Post{
		{
			Slug:         "react-hooks-complete-guide",
			CategoryPath: "javascript/react-hooks-complete-guide",
			Metadata: models.PostMetadata{
				Title:       "React Hooks Complete Guide",
				Excerpt:     "useState, useEffect and custom hooks",
				PublishedAt: "2024-01-15",
				Category:    "JavaScript",
				Tags:        []string{"React", "Hooks", "JavaScript"},
			},
			Content: "Hooks let you use state in function components.",
		},
		{
			Slug:         "typescript-generics-guide",
			CategoryPath: "typescript/typescript-generics-guide",
			Metadata: models.PostMetadata{
				Title:       "TypeScript Generics Guide",
				Excerpt:     "Reusable types",
				PublishedAt: "2024-01-20",
				Category:    "TypeScript",
				Tags:        []string{"TypeScript", "Generics"},
			},
			Content: "Generic components in React are typed with generics.",
		},
		{
			Slug:         "nextjs-14-new-features",
			CategoryPath: "react/nextjs-14-new-features",
			Metadata: models.PostMetadata{
				Title:       "Next.js 14 New Features",
				PublishedAt: "2024-01-10",
				Category:    "React",
				Tags:        []string{"Next.js", "React"},
			},
			Content: "Server actions and partial prerendering.",
		},
	}
}

func resultSlugs(results []search.Result) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Post.Slug)
	}
	return out
}

func TestSearch_SingleTerm(t *testing.T) {
	results := search.NewEngine().Search("react", []models.Post{hooksGuide("Learn hooks")}, search.Filters{})

	require.Len(t, results, 1)
	assert.Equal(t, 18, results[0].Score)
	assert.Equal(t, []string{search.FieldTitle, search.FieldTags}, results[0].MatchedFields)
}

func TestSearch_MultipleTerms(t *testing.T) {
	engine := search.NewEngine()

	results := engine.Search("hooks guide", []models.Post{hooksGuide("")}, search.Filters{})
	require.Len(t, results, 1)
	assert.Equal(t, 28, results[0].Score)

	// excerpt 에도 "hooks" 가 있으면 description 가중치가 더해진다.
	results = engine.Search("hooks guide", []models.Post{hooksGuide("Learn hooks")}, search.Filters{})
	require.Len(t, results, 1)
	assert.Equal(t, 33, results[0].Score)
	assert.Equal(t, []string{search.FieldTitle, search.FieldDescription, search.FieldTags}, results[0].MatchedFields)
}

func TestSearch_NoMatch(t *testing.T) {
	results := search.NewEngine().Search("nonexistent", corpus(), search.Filters{})
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearch_EmptyQuery(t *testing.T) {
	engine := search.NewEngine()
	filters := search.Filters{Category: "react", Tags: []string{"React"}}

	for _, q := range []string{"", "   ", "\t\n"} {
		assert.Empty(t, engine.Search(q, corpus(), filters))
		assert.Empty(t, engine.Search(q, corpus(), search.Filters{}))
	}
}

func TestSearch_RepeatedTermsDoubleCount(t *testing.T) {
	engine := search.NewEngine()
	post := []models.Post{hooksGuide("")}

	once := engine.Search("react", post, search.Filters{})
	twice := engine.Search("react react", post, search.Filters{})
	require.Len(t, once, 1)
	require.Len(t, twice, 1)
	assert.Equal(t, 2*once[0].Score, twice[0].Score)
}

func TestSearch_CaseInsensitive(t *testing.T) {
	engine := search.NewEngine()
	lower := engine.Search("generics", corpus(), search.Filters{})
	upper := engine.Search("GENERICS", corpus(), search.Filters{})
	assert.Equal(t, lower, upper)
	require.NotEmpty(t, lower)
}

func TestSearch_SortedByScoreStable(t *testing.T) {
	results := search.NewEngine().Search("react", corpus(), search.Filters{})

	require.Len(t, results, 3)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
	// hooks: title 10 + tags 8 + category 6 = 24
	// nextjs: tags 8 + category 6 = 14
	// generics: content 2
	assert.Equal(t, []string{"react-hooks-complete-guide", "nextjs-14-new-features", "typescript-generics-guide"}, resultSlugs(results))
	assert.Equal(t, []int{24, 14, 2}, []int{results[0].Score, results[1].Score, results[2].Score})
}

func TestSearch_TiesKeepCorpusOrder(t *testing.T) {
	posts := []models.Post{
		{Slug: "b", CategoryPath: "x/b", Metadata: models.PostMetadata{Title: "Go tips"}},
		{Slug: "a", CategoryPath: "x/a", Metadata: models.PostMetadata{Title: "Go tricks"}},
		{Slug: "c", CategoryPath: "x/c", Metadata: models.PostMetadata{Title: "Go notes"}},
	}
	results := search.NewEngine().Search("go", posts, search.Filters{})
	assert.Equal(t, []string{"b", "a", "c"}, resultSlugs(results))
}

func TestSearch_Deterministic(t *testing.T) {
	engine := search.NewEngine()
	first := engine.Search("react guide", corpus(), search.Filters{})
	second := engine.Search("react guide", corpus(), search.Filters{})
	assert.Equal(t, first, second)
}

func TestSearch_AddingMatchingTermNeverDecreasesScore(t *testing.T) {
	engine := search.NewEngine()
	queries := [][2]string{
		{"react", "react generics"},
		{"hooks", "hooks guide"},
		{"guide", "guide typescript"},
		{"server", "server react"},
	}

	for _, q := range queries {
		base := scoresBySlug(engine.Search(q[0], corpus(), search.Filters{}))
		extended := scoresBySlug(engine.Search(q[1], corpus(), search.Filters{}))
		for slug, score := range base {
			assert.GreaterOrEqual(t, extended[slug], score, "%s: %q -> %q", slug, q[0], q[1])
		}
	}
}

func scoresBySlug(results []search.Result) map[string]int {
	out := make(map[string]int, len(results))
	for _, r := range results {
		out[r.Post.Slug] = r.Score
	}
	return out
}

func TestSearch_Filters(t *testing.T) {
	engine := search.NewEngine()

	t.Run("category is a substring of category path", func(t *testing.T) {
		results := engine.Search("react", corpus(), search.Filters{Category: "script"})
		assert.Equal(t, []string{"react-hooks-complete-guide", "typescript-generics-guide"}, resultSlugs(results))
	})

	t.Run("category is case sensitive", func(t *testing.T) {
		results := engine.Search("react", corpus(), search.Filters{Category: "TypeScript"})
		assert.Empty(t, results)
	})

	t.Run("tags use OR semantics", func(t *testing.T) {
		results := engine.Search("react", corpus(), search.Filters{Tags: []string{"Generics", "Next.js"}})
		assert.Equal(t, []string{"nextjs-14-new-features", "typescript-generics-guide"}, resultSlugs(results))
	})

	t.Run("tags match exactly", func(t *testing.T) {
		results := engine.Search("react", corpus(), search.Filters{Tags: []string{"generics"}})
		assert.Empty(t, results)
	})

	t.Run("date range is inclusive", func(t *testing.T) {
		results := engine.Search("react", corpus(), search.Filters{DateRange: &search.DateRange{
			Start: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		}})
		assert.Equal(t, []string{"react-hooks-complete-guide", "nextjs-14-new-features"}, resultSlugs(results))
	})

	t.Run("open ended date range", func(t *testing.T) {
		results := engine.Search("react", corpus(), search.Filters{DateRange: &search.DateRange{
			Start: time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC),
		}})
		assert.Equal(t, []string{"typescript-generics-guide"}, resultSlugs(results))
	})

	t.Run("filters only narrow", func(t *testing.T) {
		all := engine.Search("react guide", corpus(), search.Filters{})
		filtered := []search.Filters{
			{Category: "react"},
			{Tags: []string{"React"}},
			{DateRange: &search.DateRange{End: time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)}},
			{Category: "javascript", Tags: []string{"Hooks"}},
		}
		for _, f := range filtered {
			assert.LessOrEqual(t, len(engine.Search("react guide", corpus(), f)), len(all))
		}
	})
}

func TestSearch_UnparsableDateExcludedByDateRange(t *testing.T) {
	posts := corpus()
	posts[0].Metadata.PublishedAt = "not a date"

	results := search.NewEngine().Search("react", posts, search.Filters{DateRange: &search.DateRange{
		Start: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	}})
	assert.NotContains(t, resultSlugs(results), "react-hooks-complete-guide")
}

func TestSearch_MalformedPostIsSkipped(t *testing.T) {
	posts := append(corpus(), models.Post{Metadata: models.PostMetadata{Title: "React"}, Content: "react"})

	results := search.NewEngine().Search("react", posts, search.Filters{})
	assert.Len(t, results, 3)
	assert.NotContains(t, resultSlugs(results), "")
}

func TestSearch_BlankTitleScoresOtherFields(t *testing.T) {
	untitled := models.Post{
		Slug:     "untitled",
		Metadata: models.PostMetadata{Tags: []string{"React"}},
		Content:  "react",
	}

	results := search.NewEngine().Search("react", []models.Post{untitled}, search.Filters{})
	require.Len(t, results, 1)
	assert.Equal(t, search.WeightTags+search.WeightContent, results[0].Score)
	assert.Equal(t, []string{search.FieldTags, search.FieldContent}, results[0].MatchedFields)
}

func TestSearch_PanickingScorerIsContained(t *testing.T) {
	engine := search.NewEngineWithScorer(func(p models.Post, terms []string) (search.Result, error) {
		if p.Slug == "typescript-generics-guide" {
			panic("bad metadata")
		}
		return search.Result{Post: p, Score: 1}, nil
	})

	results := engine.Search("anything", corpus(), search.Filters{})
	assert.Equal(t, []string{"react-hooks-complete-guide", "nextjs-14-new-features"}, resultSlugs(results))
}

func TestSearch_PassFailureYieldsEmptyResults(t *testing.T) {
	engine := search.NewEngineWithFilter(func(search.Filters, []search.Result) []search.Result {
		panic("filter exploded")
	})

	results := engine.Search("react", corpus(), search.Filters{})
	require.NotNil(t, results)
	assert.Equal(t, []search.Result{}, results)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"react", "hooks", "react"}, search.Tokenize("  React\tHOOKS \n react "))
	assert.Empty(t, search.Tokenize("   "))
}
