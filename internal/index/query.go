package index

import (
	"encoding/json"

	bolt "go.etcd.io/bbolt"

	"notionsite/internal/domain/content"
)

type ListOptions struct {
	Page int
	// Size <= 0 lists everything.
	Size int
}

func normalizePaging(page, size int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if size > 1000 {
		size = 1000
	}
	return page, size
}

// List returns metas newest first. Undated articles come last.
func (s *Store) List(opt ListOptions) ([]content.ArticleMeta, error) {
	opt.Page, opt.Size = normalizePaging(opt.Page, opt.Size)

	var out []content.ArticleMeta
	err := s.db.View(func(tx *bolt.Tx) error {
		idx := tx.Bucket(bIdxDate)
		metaB := tx.Bucket(bMeta)
		if idx == nil || metaB == nil {
			return nil
		}

		skip := 0
		if opt.Size > 0 {
			skip = (opt.Page - 1) * opt.Size
		}
		cur := idx.Cursor()

		for k, _ := cur.First(); k != nil; k, _ = cur.Next() {
			slug := slugFromDateSlugKey(k)
			if slug == "" {
				continue
			}
			v := metaB.Get([]byte(slug))
			if v == nil {
				continue
			}

			var m content.ArticleMeta
			if err := json.Unmarshal(v, &m); err != nil {
				continue
			}
			if skip > 0 {
				skip--
				continue
			}
			out = append(out, m)
			if opt.Size > 0 && len(out) >= opt.Size {
				break
			}
		}
		return nil
	})
	return out, err
}

// Count is the number of indexed articles.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bMeta)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			n++
			return nil
		})
	})
	return n, err
}
