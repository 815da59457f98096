// Package environment builds the isolated runtime scope of one invocation.
package environment

import (
	"context"
	"os"

	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/core/ports"
	"go.trai.ch/zerr"
)

// Builder creates environments over verified unit locations.
type Builder struct {
	verifier    ports.Verifier
	scratchRoot string
}

// New creates a Builder. Scratch directories are created under scratchRoot,
// or under the system temporary directory when it is empty.
func New(verifier ports.Verifier, scratchRoot string) *Builder {
	return &Builder{verifier: verifier, scratchRoot: scratchRoot}
}

// Build creates an environment whose visible units are the closure with root in place
// of its published counterpart, plus the extra locations of cmd.
func (b *Builder) Build(
	ctx context.Context,
	root domain.Coordinate,
	closure domain.Closure,
	cmd domain.CommandDescriptor,
) (*domain.Environment, error) {
	if existing, ok := closure.Find(root.Identity()); ok && existing != root {
		return nil, zerr.With(
			zerr.With(zerr.Wrap(domain.ErrDuplicateIdentity, "root conflicts with closure entry"), "root", root.String()),
			"entry", existing.String(),
		)
	}
	units := closure.Override(root).Entries()

	locations := make([]string, 0, len(units)+len(cmd.ExtraLocations))
	ids := make(map[string]string, len(units)+len(cmd.ExtraLocations))
	for _, u := range units {
		locations = append(locations, u.Location)
		ids[u.Identity().String()] = u.Location
	}
	for _, extra := range cmd.ExtraLocations {
		locations = append(locations, extra)
		ids["extra:"+extra] = extra
	}

	if err := b.verifier.VerifyLocations(ctx, locations); err != nil {
		return nil, err
	}

	scratch, err := os.MkdirTemp(b.scratchRoot, "rug-env-")
	if err != nil {
		return nil, zerr.Wrap(domain.ErrEnvironmentCreateFailed, err.Error())
	}

	extra := append([]string(nil), cmd.ExtraLocations...)
	release := func() error {
		return os.RemoveAll(scratch)
	}
	return domain.NewEnvironment(domain.GenerateEnvID(ids), root, units, extra, scratch, release), nil
}
