package models

import (
	"errors"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Post is a single article loaded from a content source.
// Slug is unique within a corpus; CategoryPath is the source address
// relative to the content root without extension (e.g. "react/hooks-guide").
type Post struct {
	Slug         string       `json:"slug"`
	CategoryPath string       `json:"category_path"`
	Metadata     PostMetadata `json:"metadata"`
	Content      string       `json:"content"`
}

// PostMetadata is the typed front-matter block of a post.
//
// Tags are stored exactly as authored; blank or duplicated entries are
// filtered when tags are presented, not here.
type PostMetadata struct {
	Title       string   `json:"title"`
	Excerpt     string   `json:"excerpt"`
	Author      string   `json:"author"`
	PublishedAt string   `json:"published_at"`
	ReadingTime int      `json:"reading_time"`
	ViewCount   int64    `json:"view_count"`
	Likes       int64    `json:"likes"`
	Comments    int64    `json:"comments"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	IsPublished bool     `json:"is_published"`
	// StatsID 는 외부 통계 저장소 조회용 키다. (lowercase(category) + "-" + slug)
	// 코퍼스 내 유일성은 Slug 로 보장하며 StatsID 는 사용하지 않는다.
	StatsID string `json:"stats_id"`
}

var ErrEmptyDate = errors.New("empty date")

// ParsePublishedAt parses a published_at string such as "2024-01-15" or an
// RFC3339 timestamp. Dates without a zone are interpreted as UTC.
func ParsePublishedAt(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrEmptyDate
	}
	return dateparse.ParseIn(s, time.UTC)
}

// PublishedTime returns the parsed publish date, or the zero time when the
// date is missing or malformed.
func (p Post) PublishedTime() time.Time {
	t, err := ParsePublishedAt(p.Metadata.PublishedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}
