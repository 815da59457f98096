// Package resolver turns a root coordinate into a session holding its dependency closure.
package resolver

import (
	"context"

	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/core/ports"
)

// VertexName is the progress vertex of dependency resolution.
const VertexName = "Processing dependencies"

// Resolver builds dependency closures through a repository.
type Resolver struct {
	repo           ports.Repository
	telemetry      ports.Telemetry
	runtimeVersion string
}

// New creates a Resolver that accepts artifacts compatible with runtimeVersion.
func New(repo ports.Repository, telemetry ports.Telemetry, runtimeVersion string) *Resolver {
	return &Resolver{
		repo:           repo,
		telemetry:      telemetry,
		runtimeVersion: runtimeVersion,
	}
}

// Resolve resolves a published coordinate, which may carry a symbolic version.
func (r *Resolver) Resolve(ctx context.Context, c domain.Coordinate, verbose bool) (*domain.Session, error) {
	return r.run(ctx, c.String(), verbose, func(ctx context.Context) (*domain.Descriptor, error) {
		resolved, err := r.repo.ResolveVersion(ctx, c)
		if err != nil {
			return nil, err
		}
		return r.repo.Describe(ctx, resolved)
	})
}

// ResolveLocal resolves the dependencies of a locally built artifact.
// The local descriptor replaces any published artifact of the same identity in the closure.
func (r *Resolver) ResolveLocal(ctx context.Context, local *domain.Descriptor, verbose bool) (*domain.Session, error) {
	return r.run(ctx, local.Coordinate.String(), verbose, func(context.Context) (*domain.Descriptor, error) {
		return local, nil
	})
}

func (r *Resolver) run(
	ctx context.Context,
	name string,
	verbose bool,
	root func(context.Context) (*domain.Descriptor, error),
) (*domain.Session, error) {
	ctx, vertex := r.telemetry.Record(ctx, VertexName)
	ctx = ports.WithTransferListener(ctx, NewTransferPrinter(vertex.Stdout(), verbose))

	session, err := r.closure(ctx, root)
	if err != nil {
		failure := domain.Fail(domain.KindResolution, "failed to resolve "+name, err)
		vertex.Complete(failure)
		return nil, failure
	}
	vertex.Complete(nil)
	return session, nil
}

func (r *Resolver) closure(ctx context.Context, root func(context.Context) (*domain.Descriptor, error)) (*domain.Session, error) {
	desc, err := root(ctx)
	if err != nil {
		return nil, err
	}

	deps, err := r.repo.Dependencies(ctx, desc)
	if err != nil {
		return nil, err
	}

	if err := desc.CheckRuntime(r.runtimeVersion); err != nil {
		return nil, err
	}
	entries := make([]domain.Coordinate, 0, len(deps))
	for _, d := range deps {
		if err := d.CheckRuntime(r.runtimeVersion); err != nil {
			return nil, err
		}
		entries = append(entries, d.Coordinate)
	}

	return &domain.Session{
		Root:    desc.Coordinate,
		Closure: domain.NewClosure(entries...).Override(desc.Coordinate),
	}, nil
}
