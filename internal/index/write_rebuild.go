package index

import (
	"encoding/json"
	"strings"

	bolt "go.etcd.io/bbolt"

	"notionsite/internal/domain/content"
)

// Rebuild replaces the article metas with metas. File fingerprints are left
// alone; they follow the output directory, not the content.
func (s *Store) Rebuild(metas []content.ArticleMeta) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		_ = tx.DeleteBucket(bMeta)
		_ = tx.DeleteBucket(bIdxDate)

		metaB, err := tx.CreateBucket(bMeta)
		if err != nil {
			return err
		}
		idxDateB, err := tx.CreateBucket(bIdxDate)
		if err != nil {
			return err
		}

		for _, m := range metas {
			if strings.TrimSpace(m.Slug) == "" {
				continue
			}
			mb, err := json.Marshal(m)
			if err != nil {
				return err
			}
			if err := metaB.Put([]byte(m.Slug), mb); err != nil {
				return err
			}
			if err := idxDateB.Put(makeDateSlugKey(m.Date, m.Slug), []byte{1}); err != nil {
				return err
			}
		}
		return nil
	})
}
