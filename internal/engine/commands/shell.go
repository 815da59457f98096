package commands

import (
	"context"
	"fmt"

	"github.com/janekdb/rug-cli/internal/core/domain"
)

// Shell prints the session banner. The caller enters the interactive loop once it succeeds.
type Shell struct{}

// NewShell creates the shell command.
func NewShell() *Shell {
	return &Shell{}
}

// Descriptor returns the command metadata.
func (c *Shell) Descriptor() domain.CommandDescriptor {
	return domain.CommandDescriptor{
		Name:             "shell",
		Usage:            "shell [options] [group:artifact[:version]]",
		Description:      "Start an interactive shell over the loaded archive",
		Detail:           "Without an archive argument the shell loads the local archive in the working directory.",
		Options:          []domain.Option{archiveVersion},
		Order:            40,
		ArchiveArg:       1,
		RequiresArtifact: true,
		Interactive:      true,
	}
}

// Run prints the artifact and the number of operations available in the session.
func (c *Shell) Run(_ context.Context, inv *domain.Invocation) error {
	s := newStyles(inv.Out)
	count := 0
	if inv.Units != nil {
		count = len(inv.Units.Operations)
	}
	_, _ = fmt.Fprintf(inv.Out, "%s %s (%d operations, %d dependencies)\n",
		s.heading.Render("Shell for"), s.name.Render(inv.Artifact.String()), count, inv.Session.Closure.Len()-1)
	_, _ = fmt.Fprintln(inv.Out, s.muted.Render("Type exit or press Ctrl-D to leave, !<command> runs a shell command."))
	return nil
}
