// Package cas implements the content-keyed compile cache.
package cas

import (
	"encoding/json"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/janekdb/rug-cli/internal/adapters/fs"
	"github.com/janekdb/rug-cli/internal/core/domain"
	"go.trai.ch/zerr"
)

const memoryEntries = 256

// Store implements ports.CompileCache with one JSON file per key.
// Entries are immutable once written, so a memory front never goes stale.
type Store struct {
	root   string
	memory *lru.Cache[string, []domain.SourceFile]
}

// NewStore creates a Store rooted at the given directory.
func NewStore(root string) (*Store, error) {
	memory, err := lru.New[string, []domain.SourceFile](memoryEntries)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create cache front")
	}
	return &Store{root: filepath.Clean(root), memory: memory}, nil
}

// Root returns the cache directory.
func (s *Store) Root() string {
	return s.root
}

func (s *Store) entryPath(key string) string {
	shard := key
	if len(shard) > 2 {
		shard = shard[:2]
	}
	return filepath.Join(s.root, shard, key+".json")
}

// Get returns the files stored under key.
func (s *Store) Get(key string) ([]domain.SourceFile, bool, error) {
	if files, ok := s.memory.Get(key); ok {
		return files, true, nil
	}

	data, err := os.ReadFile(s.entryPath(key))
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, zerr.With(zerr.Wrap(domain.ErrCacheReadFailed, err.Error()), "key", key)
	}

	var files []domain.SourceFile
	if err := json.Unmarshal(data, &files); err != nil {
		// A truncated or foreign entry is treated as a miss and rewritten by the caller.
		return nil, false, nil
	}

	s.memory.Add(key, files)
	return files, true, nil
}

// Put stores files under key. Concurrent writers of the same key converge on one entry.
func (s *Store) Put(key string, files []domain.SourceFile) error {
	if files == nil {
		files = []domain.SourceFile{}
	}
	data, err := json.Marshal(files)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCacheWriteFailed, err.Error()), "key", key)
	}

	if err := fs.WriteFileAtomic(s.entryPath(key), data); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCacheWriteFailed, err.Error()), "key", key)
	}

	s.memory.Add(key, files)
	return nil
}
