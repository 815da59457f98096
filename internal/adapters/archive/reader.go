// Package archive reads artifact contents and loads compiled operations.
package archive

import (
	"bytes"
	"context"
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/janekdb/rug-cli/internal/adapters/fs"
	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/klauspost/compress/zip"
	"go.trai.ch/zerr"
)

// ignoredPaths are never read from a local artifact directory.
var ignoredPaths = []string{domain.TargetDir, "node_modules"}

// Reader implements ports.ArchiveReader for artifact directories and zip archives.
type Reader struct {
	walker *fs.Walker
}

// NewReader creates a new Reader.
func NewReader(walker *fs.Walker) *Reader {
	return &Reader{walker: walker}
}

// Read returns the file tree at c.Location.
func (r *Reader) Read(ctx context.Context, c domain.Coordinate) (domain.SourceTree, error) {
	info, err := os.Stat(c.Location)
	if err != nil {
		return domain.SourceTree{}, zerr.With(zerr.Wrap(domain.ErrArtifactNotFound, err.Error()), "location", c.Location)
	}
	if info.IsDir() {
		return r.readDir(ctx, c.Location)
	}
	return readZip(c.Location)
}

func (r *Reader) readDir(ctx context.Context, dir string) (domain.SourceTree, error) {
	var files []domain.SourceFile
	for rel, err := range r.walker.WalkFiles(dir, ignoredPaths) {
		if err != nil {
			return domain.SourceTree{}, zerr.With(zerr.Wrap(err, "failed to read artifact directory"), "dir", dir)
		}
		if err := ctx.Err(); err != nil {
			return domain.SourceTree{}, err
		}
		content, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel))) //nolint:gosec // rel comes from walking the artifact directory
		if err != nil {
			return domain.SourceTree{}, zerr.With(zerr.Wrap(err, "failed to read artifact file"), "path", rel)
		}
		files = append(files, domain.SourceFile{Path: rel, Content: content})
	}
	return domain.NewSourceTree(files...), nil
}

func readZip(location string) (domain.SourceTree, error) {
	zr, err := zip.OpenReader(location)
	if err != nil {
		return domain.SourceTree{}, zerr.With(zerr.Wrap(domain.ErrMalformedArchive, err.Error()), "archive", location)
	}
	defer func() { _ = zr.Close() }()

	files := make([]domain.SourceFile, 0, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := path.Clean(f.Name)
		if path.IsAbs(name) || name == ".." || strings.HasPrefix(name, "../") {
			return domain.SourceTree{}, zerr.With(zerr.Wrap(domain.ErrMalformedArchive, "entry escapes archive root"), "entry", f.Name)
		}

		rc, err := f.Open()
		if err != nil {
			return domain.SourceTree{}, zerr.With(zerr.Wrap(domain.ErrMalformedArchive, err.Error()), "entry", f.Name)
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return domain.SourceTree{}, zerr.With(zerr.Wrap(domain.ErrMalformedArchive, err.Error()), "entry", f.Name)
		}
		files = append(files, domain.SourceFile{Path: name, Content: content})
	}
	return domain.NewSourceTree(files...), nil
}

// Manifest reads the manifest of the local artifact rooted at dir.
func (r *Reader) Manifest(dir string) (*domain.Descriptor, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve artifact directory")
	}

	data, err := os.ReadFile(filepath.Join(abs, filepath.FromSlash(domain.ManifestPath))) //nolint:gosec // dir is provided by user
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, zerr.With(zerr.Wrap(domain.ErrManifestNotFound, "no manifest in directory"), "dir", abs)
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read manifest"), "dir", abs)
	}

	desc, err := ParseDescriptor(data)
	if err != nil {
		return nil, zerr.With(err, "manifest", domain.ManifestPath)
	}
	desc.Coordinate.Location = abs
	desc.Coordinate.Local = true
	return desc, nil
}

// WriteZip writes tree as a zip archive to w.
// Entries are stored in path order without timestamps so equal trees produce equal archives.
func WriteZip(w io.Writer, tree domain.SourceTree) error {
	zw := zip.NewWriter(w)
	for _, f := range tree.Files() {
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: f.Path, Method: zip.Deflate})
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to add archive entry"), "entry", f.Path)
		}
		if _, err := io.Copy(fw, bytes.NewReader(f.Content)); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to write archive entry"), "entry", f.Path)
		}
	}
	if err := zw.Close(); err != nil {
		return zerr.Wrap(err, "failed to finish archive")
	}
	return nil
}
