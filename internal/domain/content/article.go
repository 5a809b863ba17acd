package content

import (
	"strings"
	"time"
)

// ArticleMeta is what the index and the list pages need to know about a
// published article.
type ArticleMeta struct {
	ID          string
	Title       string
	Slug        string
	Description string
	Date        time.Time
	Updated     time.Time

	Tags  []string
	Cover string
}

// Article is the derived view of one Articles record.
type Article struct {
	Meta       ArticleMeta
	Published  bool
	Status     string
	ProductIDs []string
	// Body is markdown, empty when the collection has no body column.
	Body string
}

func (m *ArticleMeta) Normalize() {
	m.Title = strings.TrimSpace(m.Title)
	m.Slug = strings.TrimSpace(m.Slug)
	m.Description = strings.TrimSpace(m.Description)
	m.Cover = strings.TrimSpace(m.Cover)

	m.Tags = normalizeStrings(m.Tags)
}

// Newer reports whether a sorts before b in newest-first order. Undated
// articles go last; ties fall back to the slug.
func Newer(a, b ArticleMeta) bool {
	switch {
	case a.Date.IsZero() != b.Date.IsZero():
		return !a.Date.IsZero()
	case !a.Date.Equal(b.Date):
		return a.Date.After(b.Date)
	}
	return a.Slug < b.Slug
}

func normalizeStrings(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		item = strings.ToLower(item)
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
