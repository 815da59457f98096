package domain

import (
	"bytes"
	"maps"
	"path"
	"slices"
	"strings"
)

// SourceFile is one file of a source tree.
type SourceFile struct {
	Path    string `json:"path"`
	Content []byte `json:"content"`
}

// SourceTree is an immutable set of files keyed by slash-separated relative path.
type SourceTree struct {
	files map[string][]byte
}

// NewSourceTree builds a tree from files. Later files replace earlier ones with the same path.
func NewSourceTree(files ...SourceFile) SourceTree {
	m := make(map[string][]byte, len(files))
	for _, f := range files {
		m[cleanSourcePath(f.Path)] = bytes.Clone(f.Content)
	}
	return SourceTree{files: m}
}

func cleanSourcePath(p string) string {
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}

// With returns a new tree with files added or replaced.
func (t SourceTree) With(files ...SourceFile) SourceTree {
	m := make(map[string][]byte, len(t.files)+len(files))
	maps.Copy(m, t.files)
	for _, f := range files {
		m[cleanSourcePath(f.Path)] = bytes.Clone(f.Content)
	}
	return SourceTree{files: m}
}

// Without returns a new tree with the given paths removed.
func (t SourceTree) Without(paths ...string) SourceTree {
	m := maps.Clone(t.files)
	if m == nil {
		m = make(map[string][]byte)
	}
	for _, p := range paths {
		delete(m, cleanSourcePath(p))
	}
	return SourceTree{files: m}
}

// Paths returns all paths in lexical order.
func (t SourceTree) Paths() []string {
	return slices.Sorted(maps.Keys(t.files))
}

// Len returns the number of files.
func (t SourceTree) Len() int {
	return len(t.files)
}

// Content returns a copy of the content stored at p.
func (t SourceTree) Content(p string) ([]byte, bool) {
	c, ok := t.files[cleanSourcePath(p)]
	if !ok {
		return nil, false
	}
	return bytes.Clone(c), true
}

// Files returns every file in path order.
func (t SourceTree) Files() []SourceFile {
	out := make([]SourceFile, 0, len(t.files))
	for _, p := range t.Paths() {
		out = append(out, SourceFile{Path: p, Content: bytes.Clone(t.files[p])})
	}
	return out
}

// Match returns the paths ending in one of the extensions, in lexical order.
func (t SourceTree) Match(extensions ...string) []string {
	var out []string
	for _, p := range t.Paths() {
		for _, ext := range extensions {
			if strings.HasSuffix(p, ext) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// Under returns the paths below dir, in lexical order.
func (t SourceTree) Under(dir string) []string {
	prefix := cleanSourcePath(dir) + "/"
	var out []string
	for _, p := range t.Paths() {
		if strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	return out
}

// Equal reports structural equality.
func (t SourceTree) Equal(other SourceTree) bool {
	return maps.EqualFunc(t.files, other.files, bytes.Equal)
}

// ChangeKind classifies a Delta.
type ChangeKind int

const (
	// Created marks a path present only in the newer tree.
	Created ChangeKind = iota + 1
	// Modified marks a path whose content differs.
	Modified
	// Deleted marks a path present only in the older tree.
	Deleted
)

// String returns the name of the change.
func (k ChangeKind) String() string {
	switch k {
	case Created:
		return "Created"
	case Modified:
		return "Modified"
	case Deleted:
		return "Deleted"
	default:
		return "Unchanged"
	}
}

// Delta is a path-level change between two trees.
type Delta struct {
	Path   string
	Change ChangeKind
}

// DeltaFrom lists the changes that turn other into t, ordered by path.
func (t SourceTree) DeltaFrom(other SourceTree) []Delta {
	var deltas []Delta
	for _, p := range t.Paths() {
		old, ok := other.files[p]
		switch {
		case !ok:
			deltas = append(deltas, Delta{Path: p, Change: Created})
		case !bytes.Equal(old, t.files[p]):
			deltas = append(deltas, Delta{Path: p, Change: Modified})
		}
	}
	for _, p := range other.Paths() {
		if _, ok := t.files[p]; !ok {
			deltas = append(deltas, Delta{Path: p, Change: Deleted})
		}
	}
	slices.SortStableFunc(deltas, func(a, b Delta) int {
		return strings.Compare(a.Path, b.Path)
	})
	return deltas
}
