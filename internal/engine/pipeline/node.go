package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/janekdb/rug-cli/internal/adapters/cas"       //nolint:depguard // Wired in engine wiring
	"github.com/janekdb/rug-cli/internal/adapters/compiler"  //nolint:depguard // Wired in engine wiring
	"github.com/janekdb/rug-cli/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"github.com/janekdb/rug-cli/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"github.com/janekdb/rug-cli/internal/core/ports"
)

// NodeID is the unique identifier for the compilation pipeline Graft node.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Pipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			compiler.NodeID,
			cas.NodeID,
			fs.HasherNodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Pipeline, error) {
			compilers, err := graft.Dep[compiler.Set](ctx)
			if err != nil {
				return nil, err
			}

			caches, err := graft.Dep[ports.CacheFactory](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return New(compilers, caches, hasher, tel), nil
		},
	})
}
