package repository

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	iofs "io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/janekdb/rug-cli/internal/adapters/archive"
	"github.com/janekdb/rug-cli/internal/adapters/fs"
	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Install writes tree as the archive of desc into the local repository and records it in the index.
func (r *Repository) Install(ctx context.Context, desc *domain.Descriptor, tree domain.SourceTree) error {
	c := desc.Coordinate
	if c.Group == "" || c.Artifact == "" || domain.CanonicalVersion(c.Version) == "" {
		return zerr.With(zerr.Wrap(domain.ErrInstallFailed, "artifact needs a group, a name and a semantic version"), "coordinate", c.String())
	}

	listener := ports.TransferListenerFrom(ctx)
	ev := domain.TransferEvent{
		Direction:  domain.Upload,
		State:      domain.TransferInitiated,
		Resource:   archivePath(c),
		Repository: localName,
	}
	listener.OnTransfer(ev)

	fail := func(err error) error {
		ev.State, ev.Err = domain.TransferFailed, err
		listener.OnTransfer(ev)
		return zerr.With(zerr.Wrap(domain.ErrInstallFailed, err.Error()), "coordinate", c.String())
	}

	var buf bytes.Buffer
	if err := archive.WriteZip(&buf, tree); err != nil {
		return fail(err)
	}
	sum := sha256.Sum256(buf.Bytes())

	published := *desc
	published.Coordinate.Location = ""
	published.Coordinate.Local = false
	descriptor, err := archive.MarshalDescriptor(&published)
	if err != nil {
		return fail(err)
	}

	writes := []struct {
		rel  string
		data []byte
	}{
		{archivePath(c), buf.Bytes()},
		{checksumPath(c), []byte(hex.EncodeToString(sum[:]) + "\n")},
		{descriptorPath(c), descriptor},
	}
	for _, w := range writes {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}
		if err := fs.WriteFileAtomic(r.localPath(w.rel), w.data); err != nil {
			return fail(err)
		}
	}

	if err := r.addToIndex(c); err != nil {
		return fail(err)
	}

	r.descriptors.Remove(c.String())
	ev.State, ev.Size = domain.TransferSucceeded, int64(buf.Len())
	listener.OnTransfer(ev)
	return nil
}

func (r *Repository) addToIndex(c domain.Coordinate) error {
	p := r.localPath(indexPath(c.Identity()))
	idx := &Index{}
	data, err := os.ReadFile(p) //nolint:gosec // path is built from the repository root
	switch {
	case err == nil:
		if idx, err = parseIndex(data); err != nil {
			return err
		}
	case !errors.Is(err, iofs.ErrNotExist):
		return zerr.Wrap(err, "failed to read repository index")
	}

	idx.add(c.Version)
	out, err := yaml.Marshal(idx)
	if err != nil {
		return zerr.Wrap(err, "failed to encode repository index")
	}
	return fs.WriteFileAtomic(p, out)
}

// List returns every artifact version in the local repository, ordered by identity then version.
func (r *Repository) List(ctx context.Context) ([]domain.Coordinate, error) {
	if _, err := os.Stat(r.local); errors.Is(err, iofs.ErrNotExist) {
		return nil, nil
	}

	var out []domain.Coordinate
	for rel, err := range fs.NewWalker().WalkFiles(r.local, nil) {
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to list local repository"), "path", r.local)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if path.Base(rel) != indexFile {
			continue
		}

		dir := path.Dir(rel)
		group := strings.ReplaceAll(path.Dir(dir), "/", ".")
		if group == "." || group == "" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(r.local, filepath.FromSlash(rel))) //nolint:gosec // rel comes from walking the repository
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to read repository index"), "path", rel)
		}
		idx, err := parseIndex(data)
		if err != nil {
			r.logger.Warn("skipping unreadable index " + rel)
			continue
		}
		for _, v := range idx.Versions {
			out = append(out, domain.Coordinate{
				Group:     group,
				Artifact:  path.Base(dir),
				Version:   v,
				Extension: domain.ExtensionZip,
				Location:  r.localPath(archivePath(domain.Coordinate{Group: group, Artifact: path.Base(dir), Version: v})),
			})
		}
	}

	slices.SortFunc(out, func(a, b domain.Coordinate) int {
		if c := strings.Compare(a.Identity().String(), b.Identity().String()); c != 0 {
			return c
		}
		return domain.CompareVersions(a.Version, b.Version)
	})
	return out, nil
}
