package dto

import (
	"strings"

	"tech-blog/models"
)

// PostSummaryDTO is a post without its body, used by list endpoints.
// Tags are presented trimmed, without blanks or duplicates.
type PostSummaryDTO struct {
	Slug         string   `json:"slug" example:"react-hooks-complete-guide"`
	CategoryPath string   `json:"category_path" example:"javascript/react-hooks-complete-guide"`
	Title        string   `json:"title"`
	Excerpt      string   `json:"excerpt"`
	Author       string   `json:"author"`
	PublishedAt  string   `json:"published_at" example:"2024-01-15"`
	ReadingTime  int      `json:"reading_time"`
	ViewCount    int64    `json:"view_count"`
	Likes        int64    `json:"likes"`
	Comments     int64    `json:"comments"`
	Category     string   `json:"category" example:"JavaScript"`
	Tags         []string `json:"tags"`
	StatsID      string   `json:"stats_id" example:"javascript-react-hooks-complete-guide"`
}

// PostDTO is a full post including the raw MDX body.
type PostDTO struct {
	PostSummaryDTO
	Content string `json:"content"`
}

func NewPostSummaryDTO(p models.Post) PostSummaryDTO {
	m := p.Metadata
	return PostSummaryDTO{
		Slug:         p.Slug,
		CategoryPath: p.CategoryPath,
		Title:        m.Title,
		Excerpt:      m.Excerpt,
		Author:       m.Author,
		PublishedAt:  m.PublishedAt,
		ReadingTime:  m.ReadingTime,
		ViewCount:    m.ViewCount,
		Likes:        m.Likes,
		Comments:     m.Comments,
		Category:     m.Category,
		Tags:         PresentTags(m.Tags),
		StatsID:      m.StatsID,
	}
}

func NewPostSummaryDTOs(posts []models.Post) []PostSummaryDTO {
	out := make([]PostSummaryDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewPostSummaryDTO(p))
	}
	return out
}

func NewPostDTO(p models.Post) PostDTO {
	return PostDTO{PostSummaryDTO: NewPostSummaryDTO(p), Content: p.Content}
}

// ApplyStats overrides metadata counters with values from the stats store.
func (d *PostSummaryDTO) ApplyStats(s *models.PostStats) {
	if s == nil {
		return
	}
	d.ViewCount = s.ViewCount
	d.Likes = s.Likes
	d.Comments = s.Comments
}

// PresentTags trims tags and drops blank or repeated entries.
func PresentTags(tags []string) []string {
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

// PostListDTO is a swagger-friendly list envelope.
// swagger:model PostListDTO
type PostListDTO struct {
	Data  []PostSummaryDTO `json:"data"`
	Total int              `json:"total"`
}

// NameCountDTO is a category or tag with its post count.
type NameCountDTO struct {
	Name  string `json:"name" example:"React"`
	Count int    `json:"count" example:"3"`
}
