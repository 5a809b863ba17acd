package build

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint identifies the bytes written to one output path.
type Fingerprint struct {
	Path        string
	ContentHash string
}

func Compute(path string, data []byte) Fingerprint {
	return Fingerprint{Path: path, ContentHash: HashBytes(data)}
}

func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Unchanged reports whether data hashes to the fingerprint recorded for the
// same path by a previous build.
func (f Fingerprint) Unchanged(previous map[string]string) bool {
	prev, ok := previous[f.Path]
	return ok && prev == f.ContentHash
}
