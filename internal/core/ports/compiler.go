package ports

import (
	"context"

	"github.com/janekdb/rug-cli/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks

// Compiler translates one script source into generated files.
type Compiler interface {
	// Name identifies the compiler in progress output and cache keys.
	Name() string
	// Extensions lists the source suffixes the compiler accepts.
	Extensions() []string
	// Compile returns the files generated from the source at path.
	// Generated paths are relative to the artifact root.
	Compile(ctx context.Context, path string, content []byte) ([]domain.SourceFile, error)
}

// CompileCache stores compiler outputs by content key.
type CompileCache interface {
	// Get returns the cached output for key. A miss returns found == false.
	Get(key string) (files []domain.SourceFile, found bool, err error)
	// Put stores the output for key.
	Put(key string, files []domain.SourceFile) error
}

// CacheFactory opens the compile cache belonging to an artifact directory.
type CacheFactory interface {
	Open(root string) (CompileCache, error)
	// Evict forgets the cache opened for root so that the next Open starts from disk.
	Evict(root string)
}

// Hasher derives compile cache keys.
type Hasher interface {
	// ContentKey identifies the output of compiler for the source at path with the given content.
	ContentKey(compiler, path string, content []byte) string
}
