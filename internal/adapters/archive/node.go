package archive

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/janekdb/rug-cli/internal/adapters/fs"
	"github.com/janekdb/rug-cli/internal/build"
	"github.com/janekdb/rug-cli/internal/core/ports"
)

const (
	// ReaderNodeID is the unique identifier for the archive reader Graft node.
	ReaderNodeID graft.ID = "adapter.archive_reader"
	// LoaderNodeID is the unique identifier for the unit loader Graft node.
	LoaderNodeID graft.ID = "adapter.unit_loader"
)

func init() {
	graft.Register(graft.Node[ports.ArchiveReader]{
		ID:        ReaderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WalkerNodeID},
		Run: func(ctx context.Context) (ports.ArchiveReader, error) {
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewReader(walker), nil
		},
	})

	graft.Register(graft.Node[ports.UnitLoader]{
		ID:        LoaderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.UnitLoader, error) {
			return NewLoader(build.RuntimeVersion), nil
		},
	})
}
