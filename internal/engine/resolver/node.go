package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/janekdb/rug-cli/internal/adapters/repository" //nolint:depguard // Wired in engine wiring
	"github.com/janekdb/rug-cli/internal/adapters/telemetry"  //nolint:depguard // Wired in engine wiring
	"github.com/janekdb/rug-cli/internal/build"
	"github.com/janekdb/rug-cli/internal/core/ports"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			repository.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Resolver, error) {
			repo, err := graft.Dep[ports.Repository](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return New(repo, tel, build.RuntimeVersion), nil
		},
	})
}
