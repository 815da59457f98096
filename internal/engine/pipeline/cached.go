package pipeline

import (
	"context"
	"sync/atomic"

	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/core/ports"
)

// CachedCompiler decorates a compiler with a content-keyed cache.
// A source already compiled with identical content is never handed to the compiler again.
type CachedCompiler struct {
	ports.Compiler
	cache  ports.CompileCache
	hasher ports.Hasher

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCachedCompiler wraps c with cache.
func NewCachedCompiler(c ports.Compiler, cache ports.CompileCache, hasher ports.Hasher) *CachedCompiler {
	return &CachedCompiler{Compiler: c, cache: cache, hasher: hasher}
}

// Compile returns the cached output for path and content, compiling and storing it on a miss.
func (c *CachedCompiler) Compile(ctx context.Context, path string, content []byte) ([]domain.SourceFile, error) {
	key := c.hasher.ContentKey(c.Name(), path, content)

	files, found, err := c.cache.Get(key)
	if err != nil {
		return nil, err
	}
	if found {
		c.hits.Add(1)
		return files, nil
	}

	c.misses.Add(1)
	files, err = c.Compiler.Compile(ctx, path, content)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Put(key, files); err != nil {
		return nil, err
	}
	return files, nil
}

// Misses returns how many sources were compiled rather than served from the cache.
func (c *CachedCompiler) Misses() int64 {
	return c.misses.Load()
}

// Hits returns how many sources were served from the cache.
func (c *CachedCompiler) Hits() int64 {
	return c.hits.Load()
}
