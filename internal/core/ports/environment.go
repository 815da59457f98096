package ports

import (
	"context"

	"github.com/janekdb/rug-cli/internal/core/domain"
)

// EnvironmentBuilder creates isolated runtime environments.
//
//go:generate go run go.uber.org/mock/mockgen -source=environment.go -destination=mocks/mock_environment.go -package=mocks
type EnvironmentBuilder interface {
	// Build creates an environment exposing exactly the closure, the root and the extra locations.
	// The caller owns the result and must Close it.
	Build(ctx context.Context, root domain.Coordinate, closure domain.Closure, cmd domain.CommandDescriptor) (*domain.Environment, error)
}

// Verifier checks unit locations before an environment is handed out.
type Verifier interface {
	// VerifyLocations returns domain.ErrUnitMissing for the first location that does not exist.
	VerifyLocations(ctx context.Context, locations []string) error
}
