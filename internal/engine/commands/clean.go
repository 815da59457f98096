package commands

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/core/ports"
	"go.trai.ch/zerr"
)

// Clean removes the compiler output of the local artifact.
type Clean struct {
	caches ports.CacheFactory
}

// NewClean creates the clean command. Open compile caches of the cleaned directory are evicted from caches.
func NewClean(caches ports.CacheFactory) *Clean {
	return &Clean{caches: caches}
}

// Descriptor returns the command metadata.
func (c *Clean) Descriptor() domain.CommandDescriptor {
	return domain.CommandDescriptor{
		Name:        "clean",
		Usage:       "clean",
		Description: "Remove compiler output and the compile cache of the local archive",
		Order:       70,
	}
}

// Run deletes the target directory under the artifact directory.
func (c *Clean) Run(_ context.Context, inv *domain.Invocation) error {
	dir := inv.Request.Flags.Dir
	if c.caches != nil {
		defer c.caches.Evict(dir)
	}

	target := filepath.Join(dir, filepath.FromSlash(domain.TargetDir))
	if _, err := os.Stat(target); errors.Is(err, iofs.ErrNotExist) {
		_, _ = fmt.Fprintln(inv.Out, "Nothing to clean")
		return nil
	}
	if err := os.RemoveAll(target); err != nil {
		return domain.Fail(domain.KindInvocation, "failed to clean "+domain.TargetDir, zerr.With(err, "dir", target))
	}
	_, _ = fmt.Fprintf(inv.Out, "Removed %s\n", domain.TargetDir)
	return nil
}
