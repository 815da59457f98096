package cas

import (
	"path/filepath"
	"sync"

	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/core/ports"
)

// Factory opens the compile cache of an artifact directory.
// Stores are shared per directory for the life of the process.
type Factory struct {
	mu     sync.Mutex
	stores map[string]*Store
}

// NewFactory creates a new Factory.
func NewFactory() *Factory {
	return &Factory{stores: make(map[string]*Store)}
}

// Open returns the cache under <root>/.atomist/target/.jscache.
func (f *Factory) Open(root string) (ports.CompileCache, error) {
	dir := cacheDir(root)

	f.mu.Lock()
	defer f.mu.Unlock()

	if s, ok := f.stores[dir]; ok {
		return s, nil
	}
	s, err := NewStore(dir)
	if err != nil {
		return nil, err
	}
	f.stores[dir] = s
	return s, nil
}

// Evict drops the store of root together with its memory front.
func (f *Factory) Evict(root string) {
	dir := cacheDir(root)

	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.stores, dir)
}

func cacheDir(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = filepath.Clean(root)
	}
	return domain.CachePath(abs)
}
