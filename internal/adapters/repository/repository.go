// Package repository implements the artifact repository over a local directory and HTTP remotes.
package repository

import (
	"context"
	"errors"
	iofs "io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/janekdb/rug-cli/internal/adapters/archive"
	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	httpClientTimeout = 30 * time.Second
	descriptorEntries = 512
	localName         = "local"
)

// Repository implements ports.Repository.
// Published artifacts are looked up in the local repository first, then in each remote in order.
// Files fetched from a remote are stored in the local repository.
type Repository struct {
	local       string
	remotes     []domain.Remote
	httpClient  *http.Client
	logger      ports.Logger
	descriptors *lru.Cache[string, *domain.Descriptor]
}

// New creates a Repository from settings.
func New(settings *domain.Settings, logger ports.Logger) (*Repository, error) {
	return NewWithClient(settings, logger, &http.Client{Timeout: httpClientTimeout})
}

// NewWithClient creates a Repository using the given HTTP client.
func NewWithClient(settings *domain.Settings, logger ports.Logger, client *http.Client) (*Repository, error) {
	descriptors, err := lru.New[string, *domain.Descriptor](descriptorEntries)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create descriptor cache")
	}
	return &Repository{
		local:       filepath.Clean(settings.LocalRepository),
		remotes:     settings.Remotes,
		httpClient:  client,
		logger:      logger,
		descriptors: descriptors,
	}, nil
}

func (r *Repository) localPath(rel string) string {
	return filepath.Join(r.local, filepath.FromSlash(rel))
}

// ResolveVersion returns c with its symbolic version replaced by the highest matching version.
func (r *Repository) ResolveVersion(ctx context.Context, c domain.Coordinate) (domain.Coordinate, error) {
	if !c.IsSymbolic() {
		return c, nil
	}

	var req domain.Requirement
	if domain.IsRange(c.Version) {
		parsed, err := domain.ParseRequirement(c.Version)
		if err != nil {
			return c, zerr.With(err, "coordinate", c.String())
		}
		req = parsed
	}

	versions, err := r.versions(ctx, c.Identity())
	if err != nil {
		return c, err
	}
	if len(versions) == 0 {
		return c, zerr.With(zerr.Wrap(domain.ErrArtifactNotFound, "no versions published"), "artifact", c.Identity().String())
	}

	best := ""
	for _, v := range versions {
		if domain.CanonicalVersion(v) == "" || !req.Allows(v) {
			continue
		}
		if best == "" || domain.CompareVersions(v, best) > 0 {
			best = v
		}
	}
	if best == "" {
		err := zerr.With(zerr.Wrap(domain.ErrVersionUnsatisfiable, "no published version matches"), "artifact", c.Identity().String())
		return c, zerr.With(err, "requested", c.Version)
	}
	return c.WithVersion(best), nil
}

// versions merges the version indexes of every repository.
// A failing remote is skipped unless no repository lists any version.
func (r *Repository) versions(ctx context.Context, id domain.Identity) ([]string, error) {
	merged := &Index{}
	if data, err := os.ReadFile(r.localPath(indexPath(id))); err == nil {
		if idx, err := parseIndex(data); err == nil {
			for _, v := range idx.Versions {
				merged.add(v)
			}
		}
	}

	var transportErr error
	for _, remote := range r.remotes {
		data, err := r.fetch(ctx, remote, indexPath(id))
		if errors.Is(err, domain.ErrArtifactNotFound) {
			continue
		}
		if err != nil {
			transportErr = err
			r.logger.Warn("failed to read index from " + remote.Name)
			continue
		}
		idx, err := parseIndex(data)
		if err != nil {
			transportErr = zerr.With(zerr.Wrap(domain.ErrTransportFailure, err.Error()), "repository", remote.Name)
			continue
		}
		for _, v := range idx.Versions {
			merged.add(v)
		}
	}

	if len(merged.Versions) == 0 && transportErr != nil {
		return nil, transportErr
	}
	return merged.Versions, nil
}

// Describe returns the descriptor of a concrete coordinate with Location pointing to the local archive.
func (r *Repository) Describe(ctx context.Context, c domain.Coordinate) (*domain.Descriptor, error) {
	if c.IsSymbolic() {
		return nil, zerr.With(zerr.Wrap(domain.ErrArtifactNotFound, "version must be resolved before describing"), "coordinate", c.String())
	}
	if desc, ok := r.descriptors.Get(c.String()); ok {
		return desc, nil
	}

	data, err := r.ensure(ctx, descriptorPath(c))
	if err != nil {
		return nil, zerr.With(err, "coordinate", c.String())
	}
	desc, err := archive.ParseDescriptor(data)
	if err != nil {
		return nil, zerr.With(err, "coordinate", c.String())
	}
	if desc.Coordinate.Identity() != c.Identity() || desc.Coordinate.Version != c.Version {
		err := zerr.Wrap(domain.ErrMalformedArchive, "descriptor does not match its location")
		return nil, zerr.With(zerr.With(err, "coordinate", c.String()), "declared", desc.Coordinate.String())
	}

	if _, err := r.ensureArchive(ctx, c); err != nil {
		return nil, zerr.With(err, "coordinate", c.String())
	}
	desc.Coordinate.Location = r.localPath(archivePath(c))

	r.descriptors.Add(c.String(), desc)
	return desc, nil
}

// Dependencies walks the dependency graph of root breadth first.
// The first coordinate reached for an identity wins, so nearer declarations shadow deeper ones.
func (r *Repository) Dependencies(ctx context.Context, root *domain.Descriptor) ([]*domain.Descriptor, error) {
	seen := map[domain.Identity]bool{root.Coordinate.Identity(): true}
	queue := []*domain.Descriptor{root}
	var out []*domain.Descriptor

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, dep := range current.Dependencies {
			if seen[dep.Identity()] {
				continue
			}
			seen[dep.Identity()] = true

			resolved, err := r.ResolveVersion(ctx, dep)
			if err != nil {
				return nil, zerr.With(err, "required_by", current.Coordinate.String())
			}
			desc, err := r.Describe(ctx, resolved)
			if err != nil {
				return nil, zerr.With(err, "required_by", current.Coordinate.String())
			}
			out = append(out, desc)
			queue = append(queue, desc)
		}
	}
	return out, nil
}

// ensure returns the content of rel, fetching it from the first remote that has it.
func (r *Repository) ensure(ctx context.Context, rel string) ([]byte, error) {
	data, err := os.ReadFile(r.localPath(rel))
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, iofs.ErrNotExist) {
		return nil, zerr.With(zerr.Wrap(err, "failed to read local repository"), "path", rel)
	}

	data, _, err = r.download(ctx, rel)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// ensureArchive makes sure the archive of c is present in the local repository.
func (r *Repository) ensureArchive(ctx context.Context, c domain.Coordinate) (string, error) {
	rel := archivePath(c)
	if _, err := os.Stat(r.localPath(rel)); err == nil {
		return r.localPath(rel), nil
	}

	if _, _, err := r.download(ctx, rel); err != nil {
		return "", err
	}
	return r.localPath(rel), nil
}
