package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/janekdb/rug-cli/internal/adapters/telemetry/console"
	"github.com/janekdb/rug-cli/internal/adapters/telemetry/progrock"
	"github.com/janekdb/rug-cli/internal/core/ports"
)

// NodeID is the unique identifier for the telemetry Graft node.
const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Telemetry, error) {
			return NewTee(console.New(nil), progrock.New()), nil
		},
	})
}
