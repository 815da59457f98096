package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/janekdb/rug-cli/internal/core/ports"
)

// NodeID is the unique identifier for the compile cache Graft node.
const NodeID graft.ID = "adapter.compile_cache"

func init() {
	graft.Register(graft.Node[ports.CacheFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.CacheFactory, error) {
			return NewFactory(), nil
		},
	})
}
