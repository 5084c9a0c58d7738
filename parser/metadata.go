package parser

import (
	"errors"
	"fmt"
	"math"

	"tech-blog/models"
)

// FieldError reports a front-matter field that does not fit the post schema.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("front matter field %q: %s", e.Field, e.Reason)
}

// DecodeMetadata validates a header against the post schema.
//
// Required: title, publishedAt (or date). Counters must be non-negative
// integers, tags must be a list and isPublished a bool (default true).
// Scalar values are accepted for string fields using their source text.
// All field errors are returned together.
func DecodeMetadata(h Header) (models.PostMetadata, error) {
	d := decoder{h: h}
	meta := models.PostMetadata{
		Title:       d.requiredText("title"),
		Excerpt:     d.text("excerpt"),
		Author:      d.text("author"),
		ReadingTime: int(d.count("readingTime", math.MaxInt)),
		ViewCount:   d.count("viewCount", math.MaxInt64),
		Likes:       d.count("likes", math.MaxInt64),
		Comments:    d.count("comments", math.MaxInt64),
		Category:    d.text("category"),
		Tags:        d.list("tags"),
		IsPublished: d.flag("isPublished", true),
	}

	dateKey := "publishedAt"
	if _, ok := h.Get(dateKey); !ok {
		if _, ok := h.Get("date"); ok {
			dateKey = "date"
		}
	}
	meta.PublishedAt = d.requiredText(dateKey)
	if meta.PublishedAt != "" {
		if _, err := models.ParsePublishedAt(meta.PublishedAt); err != nil {
			d.fail(dateKey, fmt.Sprintf("unparseable date %q", meta.PublishedAt))
		}
	}

	if len(d.errs) > 0 {
		return models.PostMetadata{}, errors.Join(d.errs...)
	}
	return meta, nil
}

type decoder struct {
	h    Header
	errs []error
}

func (d *decoder) fail(field, reason string) {
	d.errs = append(d.errs, &FieldError{Field: field, Reason: reason})
}

func (d *decoder) text(key string) string {
	v, ok := d.h.Get(key)
	if !ok {
		return ""
	}
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber, KindBool:
		return v.Raw
	default:
		d.fail(key, fmt.Sprintf("want string, got %s", v.Kind))
		return ""
	}
}

func (d *decoder) requiredText(key string) string {
	if _, ok := d.h.Get(key); !ok {
		d.fail(key, "required")
		return ""
	}
	s := d.text(key)
	if s == "" {
		d.fail(key, "must not be empty")
	}
	return s
}

// count decodes a non-negative integer no larger than limit.
func (d *decoder) count(key string, limit int64) int64 {
	v, ok := d.h.Get(key)
	if !ok {
		return 0
	}
	if v.Kind != KindNumber {
		d.fail(key, fmt.Sprintf("want number, got %s %q", v.Kind, v.Raw))
		return 0
	}
	if v.Num < 0 || v.Num != math.Trunc(v.Num) {
		d.fail(key, fmt.Sprintf("want non-negative integer, got %s", v.Raw))
		return 0
	}
	// float64(math.MaxInt64)+1 는 2^63 으로 반올림되므로 변환 시 넘치는 값은 모두 걸러진다.
	if v.Num >= float64(limit)+1 {
		d.fail(key, fmt.Sprintf("out of range, got %s", v.Raw))
		return 0
	}
	return int64(v.Num)
}

func (d *decoder) list(key string) []string {
	v, ok := d.h.Get(key)
	if !ok {
		return nil
	}
	if v.Kind != KindStringList {
		d.fail(key, fmt.Sprintf("want list, got %s %q", v.Kind, v.Raw))
		return nil
	}
	return v.List
}

func (d *decoder) flag(key string, def bool) bool {
	v, ok := d.h.Get(key)
	if !ok {
		return def
	}
	if v.Kind != KindBool {
		d.fail(key, fmt.Sprintf("want bool, got %s %q", v.Kind, v.Raw))
		return def
	}
	return v.Bool
}
