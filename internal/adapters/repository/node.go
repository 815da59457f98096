package repository

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/janekdb/rug-cli/internal/adapters/config"
	"github.com/janekdb/rug-cli/internal/adapters/logger"
	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/core/ports"
)

// NodeID is the unique identifier for the repository Graft node.
const NodeID graft.ID = "adapter.repository"

func init() {
	graft.Register(graft.Node[ports.Repository]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Repository, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(settings, log)
		},
	})
}
