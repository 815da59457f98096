package environment

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/janekdb/rug-cli/internal/adapters/fs" //nolint:depguard // Wired in engine wiring
	"github.com/janekdb/rug-cli/internal/core/ports"
)

// NodeID is the unique identifier for the environment builder Graft node.
const NodeID graft.ID = "engine.environment"

func init() {
	graft.Register(graft.Node[ports.EnvironmentBuilder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.VerifierNodeID},
		Run: func(ctx context.Context) (ports.EnvironmentBuilder, error) {
			verifier, err := graft.Dep[ports.Verifier](ctx)
			if err != nil {
				return nil, err
			}
			return New(verifier, ""), nil
		},
	})
}
