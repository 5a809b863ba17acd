package index

import "notionsite/internal/domain/content"

// Latest returns the n most recent articles for the home page.
func (s *Store) Latest(n int) ([]content.ArticleMeta, error) {
	if n <= 0 {
		return nil, nil
	}
	return s.List(ListOptions{Page: 1, Size: n})
}
