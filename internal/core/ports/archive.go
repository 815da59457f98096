package ports

import (
	"context"

	"github.com/janekdb/rug-cli/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=archive.go -destination=mocks/mock_archive.go -package=mocks

// ArchiveReader reads artifact contents.
type ArchiveReader interface {
	// Read returns the file tree of the artifact at c.Location.
	// Local artifacts are read from their directory, published ones from their zip archive.
	Read(ctx context.Context, c domain.Coordinate) (domain.SourceTree, error)
	// Manifest reads the manifest of the local artifact rooted at dir.
	Manifest(dir string) (*domain.Descriptor, error)
}

// UnitLoader loads compiled operations into an environment.
type UnitLoader interface {
	Load(ctx context.Context, env *domain.Environment, artifact domain.Coordinate, tree domain.SourceTree) (*domain.LoadedUnits, error)
}
