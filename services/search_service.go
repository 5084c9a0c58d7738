package services

import (
	"context"
	"fmt"
	"strings"

	"tech-blog/dto"
	"tech-blog/models"
	"tech-blog/search"
)

type SearchInput struct {
	Query    string
	Category string
	Tags     []string
	// From/To are inclusive publish date bounds, e.g. "2024-01-01".
	From string
	To   string
}

// SearchService runs ranked searches over the current corpus.
type SearchService struct {
	posts  PostIndexer
	engine *search.Engine
}

func NewSearchService(posts PostIndexer, engine *search.Engine) *SearchService {
	if engine == nil {
		engine = search.NewEngine()
	}
	return &SearchService{posts: posts, engine: engine}
}

// Search returns ranked results. Scoring problems never fail the call;
// only a corpus load failure or malformed filter input does.
func (s *SearchService) Search(ctx context.Context, in SearchInput) (*dto.SearchResponseDTO, error) {
	filters, err := ParseFilters(in.Category, in.Tags, in.From, in.To)
	if err != nil {
		return nil, err
	}

	idx, err := s.posts.Index(ctx)
	if err != nil {
		return nil, err
	}

	sess := search.NewSession(s.engine)
	sess.SetQuery(in.Query)
	sess.SetFilters(filters)
	results := sess.Search(idx.All())

	out := &dto.SearchResponseDTO{
		Query:   strings.TrimSpace(in.Query),
		State:   sess.State().String(),
		Total:   len(results),
		Results: make([]dto.SearchResultDTO, 0, len(results)),
	}
	for _, r := range results {
		out.Results = append(out.Results, dto.SearchResultDTO{
			Post:          dto.NewPostSummaryDTO(r.Post),
			Score:         r.Score,
			MatchedFields: r.MatchedFields,
		})
	}
	return out, nil
}

// ParseFilters builds search filters from request input. Tags may be given
// as repeated values or comma separated; blanks are dropped.
func ParseFilters(category string, tags []string, from, to string) (search.Filters, error) {
	f := search.Filters{Category: strings.TrimSpace(category)}

	for _, raw := range tags {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				f.Tags = append(f.Tags, t)
			}
		}
	}

	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" && to == "" {
		return f, nil
	}

	var r search.DateRange
	if from != "" {
		t, err := models.ParsePublishedAt(from)
		if err != nil {
			return search.Filters{}, fmt.Errorf("%w: from %q: %v", ErrInvalidInput, from, err)
		}
		r.Start = t
	}
	if to != "" {
		t, err := models.ParsePublishedAt(to)
		if err != nil {
			return search.Filters{}, fmt.Errorf("%w: to %q: %v", ErrInvalidInput, to, err)
		}
		r.End = t
	}
	if !r.Start.IsZero() && !r.End.IsZero() && r.End.Before(r.Start) {
		return search.Filters{}, fmt.Errorf("%w: date range end before start", ErrInvalidInput)
	}
	f.DateRange = &r
	return f, nil
}
