package search

import (
	"slices"
	"strings"
	"time"

	"tech-blog/models"
)

// DateRange is an inclusive publish date window. A zero bound is open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

// Filters narrow scored results. They are applied in field order:
// category, then tags, then date range.
type Filters struct {
	// Category is a case-sensitive substring of the post's category path.
	Category string
	// Tags keeps posts carrying at least one of these tags (exact match).
	Tags []string
	// DateRange excludes posts whose date does not parse.
	DateRange *DateRange
}

func (f Filters) IsZero() bool {
	return f.Category == "" && len(f.Tags) == 0 && f.DateRange == nil
}

func (f Filters) apply(results []Result) []Result {
	if f.Category != "" {
		results = keep(results, func(p models.Post) bool {
			return strings.Contains(p.CategoryPath, f.Category)
		})
	}
	if len(f.Tags) > 0 {
		results = keep(results, func(p models.Post) bool {
			for _, want := range f.Tags {
				if slices.Contains(p.Metadata.Tags, want) {
					return true
				}
			}
			return false
		})
	}
	if f.DateRange != nil {
		results = keep(results, func(p models.Post) bool {
			t, err := models.ParsePublishedAt(p.Metadata.PublishedAt)
			if err != nil {
				return false
			}
			return f.DateRange.Contains(t)
		})
	}
	return results
}

func keep(results []Result, fn func(models.Post) bool) []Result {
	out := make([]Result, 0, len(results))
	for _, r := range results {
		if fn(r.Post) {
			out = append(out, r)
		}
	}
	return out
}
