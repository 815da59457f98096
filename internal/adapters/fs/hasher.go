package fs

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/janekdb/rug-cli/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes compile cache keys.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// ContentKey returns the XXHash of the compiler name, the source path and its content.
func (h *Hasher) ContentKey(compiler, path string, content []byte) string {
	hasher := xxhash.New()
	_, _ = hasher.WriteString(compiler)
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.WriteString(path)
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.Write(content)
	return fmt.Sprintf("%016x", hasher.Sum64())
}
