package loader

import (
	"strings"
)

// DefaultCategory is used for sources placed directly under the content root.
const DefaultCategory = "General"

// RelativePath strips leading slashes and the source extension from an address.
// "react/hooks-guide.mdx" -> "react/hooks-guide"
func RelativePath(address, ext string) string {
	rel := strings.TrimLeft(address, "/")
	if ext != "" {
		rel = strings.TrimSuffix(rel, ext)
	}
	return rel
}

// ParsePostPath derives the category display name and slug from a relative
// path. The first segment is a category key mapped through categories
// (unmapped keys pass through unchanged); the last segment is the slug.
func ParsePostPath(relPath string, categories map[string]string) (category, slug string) {
	parts := strings.Split(relPath, "/")
	if len(parts) < 2 {
		return DefaultCategory, parts[0]
	}

	key := parts[0]
	category = key
	if name, ok := categories[key]; ok {
		category = name
	}
	return category, parts[len(parts)-1]
}

// StatsID builds the opaque key used by the external stats store.
func StatsID(category, slug string) string {
	return strings.ToLower(category) + "-" + slug
}
