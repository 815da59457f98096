package commands

import (
	"context"
	"fmt"

	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/core/ports"
	"github.com/janekdb/rug-cli/internal/engine/dispatcher"
	"github.com/janekdb/rug-cli/internal/engine/resolver"
)

// Install publishes the compiled local artifact into the local repository.
type Install struct {
	repo      ports.Repository
	reader    ports.ArchiveReader
	telemetry ports.Telemetry
}

// NewInstall creates the install command.
func NewInstall(repo ports.Repository, reader ports.ArchiveReader, telemetry ports.Telemetry) *Install {
	return &Install{repo: repo, reader: reader, telemetry: telemetry}
}

// Descriptor returns the command metadata.
func (c *Install) Descriptor() domain.CommandDescriptor {
	return domain.CommandDescriptor{
		Name:        "install",
		Usage:       "install [options]",
		Description: "Install the local archive into the local repository",
		Options: []domain.Option{{
			Long:  dispatcher.ArchiveVersionOption,
			Short: "a",
			Usage: "Override the version of the installed archive",
		}},
		Order:            60,
		RequiresArtifact: true,
	}
}

// Run installs the compiled source tree under the manifest coordinate, or the overriding version.
func (c *Install) Run(ctx context.Context, inv *domain.Invocation) error {
	if !inv.Artifact.Local {
		return domain.Fail(domain.KindInvocation, "install needs a local archive", domain.ErrNoArtifact)
	}

	desc, err := c.reader.Manifest(inv.Artifact.Location)
	if err != nil {
		return domain.Fail(domain.KindLoad, "failed to read local manifest", err)
	}
	if v := inv.Request.Option(dispatcher.ArchiveVersionOption); v != "" {
		desc.Coordinate = desc.Coordinate.WithVersion(v)
	}

	ctx, vertex := c.telemetry.Record(ctx, "Installing "+desc.Coordinate.String())
	ctx = ports.WithTransferListener(ctx, resolver.NewTransferPrinter(vertex.Stdout(), inv.Request.Flags.Verbose))
	if err := c.repo.Install(ctx, desc, inv.Source); err != nil {
		failure := domain.Fail(domain.KindInvocation, "failed to install "+desc.Coordinate.String(), err)
		vertex.Complete(failure)
		return failure
	}
	vertex.Complete(nil)

	_, _ = fmt.Fprintf(inv.Out, "Successfully installed %s into %s\n", desc.Coordinate, inv.Settings.LocalRepository)
	return nil
}
