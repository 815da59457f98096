package compiler

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/janekdb/rug-cli/internal/core/ports"
)

// NodeID is the unique identifier for the compiler set Graft node.
const NodeID graft.ID = "adapter.compilers"

// Set is the ordered list of compilers applied to an artifact.
type Set []ports.Compiler

// NewSet returns the compilers in application order.
func NewSet() Set {
	return Set{NewRug(), NewDefaults()}
}

func init() {
	graft.Register(graft.Node[Set]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (Set, error) {
			return NewSet(), nil
		},
	})
}
