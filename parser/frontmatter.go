package parser

import (
	"errors"
	"strings"

	"tech-blog/models"
)

const delimiter = "---"

var (
	ErrMissingFrontMatter      = errors.New("front matter: missing opening delimiter")
	ErrUnterminatedFrontMatter = errors.New("front matter: missing closing delimiter")
)

// Header is the ordered key/value content of a front-matter block.
type Header struct {
	keys   []string
	values map[string]Value
}

// Get returns the value stored under key.
func (h Header) Get(key string) (Value, bool) {
	v, ok := h.values[key]
	return v, ok
}

// Keys returns the header keys in first-seen order.
func (h Header) Keys() []string {
	return append([]string(nil), h.keys...)
}

func (h Header) Len() int { return len(h.keys) }

// Document is a parsed content source: typed metadata plus the raw body.
type Document struct {
	Header   Header
	Metadata models.PostMetadata
	Body     string
}

// Split separates a leading "---" delimited header from the body.
func Split(raw string) (header string, body string, err error) {
	raw = strings.TrimPrefix(raw, "\ufeff")
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	if !strings.HasPrefix(raw, delimiter+"\n") {
		return "", "", ErrMissingFrontMatter
	}
	rest := raw[len(delimiter)+1:]

	// 헤더가 비어 있는 경우: "---\n---\n"
	if rest == delimiter || strings.HasPrefix(rest, delimiter+"\n") {
		return "", strings.TrimPrefix(strings.TrimPrefix(rest, delimiter), "\n"), nil
	}

	closing := "\n" + delimiter + "\n"
	if idx := strings.Index(rest, closing); idx >= 0 {
		return rest[:idx], rest[idx+len(closing):], nil
	}
	if strings.HasSuffix(rest, "\n"+delimiter) {
		return rest[:len(rest)-len(delimiter)-1], "", nil
	}
	return "", "", ErrUnterminatedFrontMatter
}

// ParseHeader parses "key: value" lines. The line is split on the first
// colon so values may contain colons; lines without a colon or with an empty
// key are ignored. A repeated key keeps the last value.
func ParseHeader(header string) Header {
	h := Header{values: make(map[string]Value)}
	for _, line := range strings.Split(header, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if _, seen := h.values[key]; !seen {
			h.keys = append(h.keys, key)
		}
		h.values[key] = ParseValue(value)
	}
	return h
}

// ParseDocument splits, parses and validates a raw content source.
func ParseDocument(raw string) (Document, error) {
	header, body, err := Split(raw)
	if err != nil {
		return Document{}, err
	}
	h := ParseHeader(header)
	meta, err := DecodeMetadata(h)
	if err != nil {
		return Document{}, err
	}
	return Document{Header: h, Metadata: meta, Body: body}, nil
}
