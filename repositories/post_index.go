package repositories

import (
	"errors"
	"sort"
	"strings"
	"time"

	"tech-blog/models"
)

var ErrPostNotFound = errors.New("post not found")

const (
	relatedCategoryWeight = 2
	relatedTagWeight      = 1
)

// NameCount is a category or tag with the number of posts carrying it.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PostIndex is an immutable snapshot of the corpus and its derived views.
// It is built once per load and replaced wholesale, never mutated.
type PostIndex struct {
	posts  []models.Post
	bySlug map[string]int
}

// NewPostIndex keeps posts in the given order. When two posts share a slug
// the first one wins for ByID.
func NewPostIndex(posts []models.Post) *PostIndex {
	idx := &PostIndex{
		posts:  append([]models.Post(nil), posts...),
		bySlug: make(map[string]int, len(posts)),
	}
	for i, p := range idx.posts {
		if _, ok := idx.bySlug[p.Slug]; !ok {
			idx.bySlug[p.Slug] = i
		}
	}
	return idx
}

func (x *PostIndex) Len() int { return len(x.posts) }

// All returns the corpus in materialized order. Callers must not modify the
// returned posts' Tags slices.
func (x *PostIndex) All() []models.Post {
	return append([]models.Post(nil), x.posts...)
}

func (x *PostIndex) ByID(slug string) (models.Post, bool) {
	i, ok := x.bySlug[slug]
	if !ok {
		return models.Post{}, false
	}
	return x.posts[i], true
}

// BySlugAndCategory looks a post up by slug, requiring its category to match.
func (x *PostIndex) BySlugAndCategory(slug, category string) (models.Post, bool) {
	p, ok := x.ByID(slug)
	if !ok || !strings.EqualFold(p.Metadata.Category, category) {
		return models.Post{}, false
	}
	return p, true
}

// ByCategory matches metadata.category case-insensitively.
func (x *PostIndex) ByCategory(name string) []models.Post {
	out := make([]models.Post, 0)
	for _, p := range x.posts {
		if strings.EqualFold(p.Metadata.Category, name) {
			out = append(out, p)
		}
	}
	return out
}

// ByTag matches any element of metadata.tags case-insensitively.
func (x *PostIndex) ByTag(tag string) []models.Post {
	out := make([]models.Post, 0)
	for _, p := range x.posts {
		for _, t := range p.Metadata.Tags {
			if strings.EqualFold(t, tag) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// Recent sorts by publish date, newest first. Posts whose date does not
// parse sort as the zero time, after every dated post.
func (x *PostIndex) Recent(n int) []models.Post {
	type dated struct {
		post models.Post
		at   time.Time
	}
	items := make([]dated, len(x.posts))
	for i, p := range x.posts {
		items[i] = dated{post: p, at: p.PublishedTime()}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].at.After(items[j].at)
	})

	out := make([]models.Post, len(items))
	for i, it := range items {
		out[i] = it.post
	}
	return take(out, n)
}

// Popular sorts by metadata view count, highest first.
func (x *PostIndex) Popular(n int) []models.Post {
	out := x.All()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Metadata.ViewCount > out[j].Metadata.ViewCount
	})
	return take(out, n)
}

// Categories returns the distinct category names, sorted.
func (x *PostIndex) Categories() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range x.posts {
		c := p.Metadata.Category
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Tags returns the distinct trimmed, non-blank tags, sorted.
func (x *PostIndex) Tags() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range x.posts {
		for _, t := range cleanTags(p.Metadata.Tags) {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

// CategoryCounts 는 카테고리별 포스트 수를 많은 순으로 반환한다. (동률은 이름순)
func (x *PostIndex) CategoryCounts() []NameCount {
	counts := make(map[string]int)
	for _, p := range x.posts {
		counts[p.Metadata.Category]++
	}
	return sortedCounts(counts)
}

// TagCounts 는 태그별 포스트 수를 많은 순으로 반환한다. (동률은 이름순)
// 한 포스트에 같은 태그가 여러 번 있어도 한 번만 센다.
func (x *PostIndex) TagCounts() []NameCount {
	counts := make(map[string]int)
	for _, p := range x.posts {
		for _, t := range cleanTags(p.Metadata.Tags) {
			counts[t]++
		}
	}
	return sortedCounts(counts)
}

// Featured returns the first post in materialized order. The loader orders
// the corpus newest first, so in practice this is the latest post, but the
// rule is "first element", not "most recent".
func (x *PostIndex) Featured() (models.Post, bool) {
	if len(x.posts) == 0 {
		return models.Post{}, false
	}
	return x.posts[0], true
}

// RelatedTo ranks every other post by relatedness to post: +2 for the same
// category and +1 per shared tag. There is no minimum score, so unrelated
// posts fill the tail when fewer than n posts match.
func (x *PostIndex) RelatedTo(post models.Post, n int) []models.Post {
	own := make(map[string]struct{})
	for _, t := range cleanTags(post.Metadata.Tags) {
		own[t] = struct{}{}
	}

	type scored struct {
		post  models.Post
		score int
	}
	candidates := make([]scored, 0, len(x.posts))
	for _, p := range x.posts {
		if p.Slug == post.Slug {
			continue
		}
		score := 0
		if p.Metadata.Category == post.Metadata.Category {
			score += relatedCategoryWeight
		}
		for _, t := range cleanTags(p.Metadata.Tags) {
			if _, ok := own[t]; ok {
				score += relatedTagWeight
			}
		}
		candidates = append(candidates, scored{post: p, score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	out := make([]models.Post, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.post)
	}
	return take(out, n)
}

// cleanTags trims tags and drops blanks and duplicates, keeping first-seen order.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func sortedCounts(counts map[string]int) []NameCount {
	out := make([]NameCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, NameCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func take(posts []models.Post, n int) []models.Post {
	if n < 0 {
		n = 0
	}
	if n < len(posts) {
		return posts[:n]
	}
	return posts
}
