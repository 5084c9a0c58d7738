package search

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"tech-blog/internal/logger"
	"tech-blog/models"
)

// Field names reported in Result.MatchedFields.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldTags        = "tags"
	FieldCategory    = "category"
	FieldContent     = "content"
)

// Weights per field. A field contributes weight × (number of query terms
// found in it).
const (
	WeightTitle       = 10
	WeightDescription = 5
	WeightTags        = 8
	WeightCategory    = 6
	WeightContent     = 2
)

// Result is one scored post. MatchedFields follows field order
// (title, description, tags, category, content).
type Result struct {
	Post          models.Post `json:"post"`
	Score         int         `json:"score"`
	MatchedFields []string    `json:"matched_fields"`
}

// Engine scores posts against free-text queries. The zero value is not
// usable; use NewEngine.
type Engine struct {
	score  func(post models.Post, terms []string) (Result, error)
	filter func(f Filters, results []Result) []Result
}

func NewEngine() *Engine {
	return &Engine{score: scorePost, filter: Filters.apply}
}

// Tokenize lowercases the query and splits it on whitespace.
// Repeated terms are kept, so "react react" counts react twice.
func Tokenize(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// Search scores every post, keeps those with a positive score, sorts them by
// score (stable on corpus order) and applies filters.
//
// It never fails: a post that cannot be scored is skipped, and an unexpected
// failure of the whole pass yields an empty result.
func (e *Engine) Search(query string, posts []models.Post, filters Filters) (results []Result) {
	if strings.TrimSpace(query) == "" {
		return []Result{}
	}

	defer func() {
		if r := recover(); r != nil {
			err := &SearchFailure{Query: query, Err: fmt.Errorf("%v", r)}
			logger.ErrorWithFields("search failed", logger.Fields{
				"query": query,
				"error": err.Error(),
			})
			results = []Result{}
		}
	}()

	terms := Tokenize(query)
	scored := make([]Result, 0)
	for _, p := range posts {
		r, err := e.scoreSafely(p, terms)
		if err != nil {
			logger.WarnWithFields("skip post: scoring failed", logger.Fields{
				"slug":  p.Slug,
				"error": err.Error(),
			})
			continue
		}
		if r.Score > 0 {
			scored = append(scored, r)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return e.filter(filters, scored)
}

func (e *Engine) scoreSafely(p models.Post, terms []string) (r Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &ScoringError{Slug: p.Slug, Err: fmt.Errorf("%v", rec)}
		}
	}()
	r, err = e.score(p, terms)
	if err != nil {
		var scoringErr *ScoringError
		if !errors.As(err, &scoringErr) {
			err = &ScoringError{Slug: p.Slug, Err: err}
		}
	}
	return r, err
}

func scorePost(p models.Post, terms []string) (Result, error) {
	// 제목이 비어 있으면 title 필드는 0점이고 나머지 필드로 점수를 매긴다.
	if p.Slug == "" {
		return Result{}, ErrMalformedPost
	}

	tags := make([]string, len(p.Metadata.Tags))
	for i, t := range p.Metadata.Tags {
		tags[i] = strings.ToLower(t)
	}

	fields := []struct {
		name   string
		weight int
		match  func(term string) bool
	}{
		{FieldTitle, WeightTitle, containsFn(p.Metadata.Title)},
		{FieldDescription, WeightDescription, containsFn(p.Metadata.Excerpt)},
		{FieldTags, WeightTags, func(term string) bool {
			for _, t := range tags {
				if strings.Contains(t, term) {
					return true
				}
			}
			return false
		}},
		{FieldCategory, WeightCategory, containsFn(p.CategoryPath)},
		{FieldContent, WeightContent, containsFn(p.Content)},
	}

	r := Result{Post: p, MatchedFields: make([]string, 0, len(fields))}
	for _, f := range fields {
		matches := 0
		for _, term := range terms {
			if f.match(term) {
				matches++
			}
		}
		if matches > 0 {
			r.Score += matches * f.weight
			r.MatchedFields = append(r.MatchedFields, f.name)
		}
	}
	return r, nil
}

// containsFn matches terms against text case-insensitively. Empty text
// (e.g. a missing excerpt) never matches.
func containsFn(text string) func(string) bool {
	lower := strings.ToLower(text)
	return func(term string) bool {
		return lower != "" && strings.Contains(lower, term)
	}
}
