package ports

import (
	"context"

	"github.com/janekdb/rug-cli/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks

// Repository locates published artifacts and their descriptors.
type Repository interface {
	// ResolveVersion turns a symbolic version into the highest concrete version available.
	// Concrete versions are returned unchanged.
	ResolveVersion(ctx context.Context, c domain.Coordinate) (domain.Coordinate, error)

	// Describe fetches the descriptor of a concrete coordinate, downloading the archive if needed.
	Describe(ctx context.Context, c domain.Coordinate) (*domain.Descriptor, error)

	// Dependencies returns the transitive dependencies of root, excluding root itself.
	// When two paths reach the same identity, the one nearest to root wins.
	Dependencies(ctx context.Context, root *domain.Descriptor) ([]*domain.Descriptor, error)

	// Install publishes an artifact built from tree into the local repository.
	Install(ctx context.Context, desc *domain.Descriptor, tree domain.SourceTree) error

	// List returns every artifact in the local repository.
	List(ctx context.Context) ([]domain.Coordinate, error)
}

// TransferListener receives artifact transfer events.
type TransferListener interface {
	OnTransfer(ev domain.TransferEvent)
}

// TransferListenerFunc adapts a function to TransferListener.
type TransferListenerFunc func(ev domain.TransferEvent)

// OnTransfer calls f.
func (f TransferListenerFunc) OnTransfer(ev domain.TransferEvent) {
	f(ev)
}

type transferKey struct{}

// WithTransferListener returns a context whose transfers are reported to l.
func WithTransferListener(ctx context.Context, l TransferListener) context.Context {
	return context.WithValue(ctx, transferKey{}, l)
}

// TransferListenerFrom returns the listener carried by ctx. It never returns nil.
func TransferListenerFrom(ctx context.Context) TransferListener {
	if l, ok := ctx.Value(transferKey{}).(TransferListener); ok && l != nil {
		return l
	}
	return TransferListenerFunc(func(domain.TransferEvent) {})
}
