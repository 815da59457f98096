package completion

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/janekdb/rug-cli/internal/adapters/config"
	"github.com/janekdb/rug-cli/internal/core/domain"
)

// NodeID is the unique identifier for the operations catalog Graft node.
const NodeID graft.ID = "adapter.catalog"

func init() {
	graft.Register(graft.Node[*Catalog]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (*Catalog, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewCatalog(settings.OperationsFile), nil
		},
	})
}
