// Package fs provides file system adapters for walking, hashing and writing files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields the regular files below root as slash-separated paths relative to root.
// Directories named .git are always skipped. An ignore entry matches either a base name
// pattern or a relative directory path.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(root, p)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)

			if d.IsDir() {
				if rel != "." && w.ignored(d.Name(), rel, ignores) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() || w.ignored(d.Name(), rel, ignores) {
				return nil
			}
			if !yield(rel, nil) {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			yield("", err)
		}
	}
}

func (w *Walker) ignored(name, rel string, ignores []string) bool {
	if name == ".git" {
		return true
	}
	for _, ignore := range ignores {
		if ignore == rel {
			return true
		}
		if matched, _ := filepath.Match(ignore, name); matched {
			return true
		}
	}
	return false
}
