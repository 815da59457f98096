package terminal

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"github.com/janekdb/rug-cli/internal/adapters/config"
	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/core/ports"
)

// NodeID is the unique identifier for the line reader Graft node.
const NodeID graft.ID = "adapter.line_reader"

func init() {
	graft.Register(graft.Node[ports.LineReader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.LineReader, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return New(os.Stdin, os.Stdout, settings.Prompt), nil
		},
	})
}
