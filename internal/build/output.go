package build

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	dbuild "notionsite/internal/domain/build"
)

// output writes files under root and remembers the fingerprint of every path
// it was given. A file is skipped only when the new bytes match the previous
// build and the copy on disk still hashes the same, so hand edits are undone.
type output struct {
	root     string
	previous map[string]string
	current  map[string]string
	written  int
}

func newOutput(root string, previous map[string]string) *output {
	if previous == nil {
		previous = map[string]string{}
	}
	return &output{root: root, previous: previous, current: make(map[string]string)}
}

func (o *output) write(rel string, data []byte) error {
	fp := dbuild.Compute(filepath.ToSlash(rel), data)
	o.current[fp.Path] = fp.ContentHash

	full := filepath.Join(o.root, filepath.FromSlash(rel))
	if fp.Unchanged(o.previous) {
		if onDisk, err := os.ReadFile(full); err == nil && dbuild.HashBytes(onDisk) == fp.ContentHash {
			return nil
		}
	}
	if err := writeFile(o.root, rel, data); err != nil {
		return err
	}
	o.written++
	return nil
}

// prune removes the files the previous build wrote that this one did not,
// returning them sorted.
func (o *output) prune() ([]string, error) {
	var stale []string
	for path := range o.previous {
		if _, ok := o.current[path]; !ok {
			stale = append(stale, path)
		}
	}
	sort.Strings(stale)
	for _, rel := range stale {
		err := os.Remove(filepath.Join(o.root, filepath.FromSlash(rel)))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return stale, nil
}

func writeFile(root, rel string, data []byte) error {
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}
