package index

import (
	bolt "go.etcd.io/bbolt"
)

// Fingerprints returns the output path -> content hash map recorded by the
// last build. It is empty on a first build.
func (s *Store) Fingerprints() (map[string]string, error) {
	out := make(map[string]string)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bFiles)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			out[string(k)] = string(v)
			return nil
		})
	})
	return out, err
}

// ReplaceFingerprints stores files as the complete set written by a build.
func (s *Store) ReplaceFingerprints(files map[string]string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		_ = tx.DeleteBucket(bFiles)
		b, err := tx.CreateBucket(bFiles)
		if err != nil {
			return err
		}
		for path, hash := range files {
			if err := b.Put([]byte(path), []byte(hash)); err != nil {
				return err
			}
		}
		return nil
	})
}
