// Package commands implements the bodies of the registered CLI commands.
package commands

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/core/ports"
	"github.com/janekdb/rug-cli/internal/engine/dispatcher"
)

// Deps are the collaborators shared by the command bodies.
type Deps struct {
	Repository ports.Repository
	Reader     ports.ArchiveReader
	Runner     ports.ProcessRunner
	Telemetry  ports.Telemetry
	Caches     ports.CacheFactory
}

// All returns every command in registry order.
func All(d Deps) []ports.Command {
	return []ports.Command{
		NewList(d.Repository),
		NewDescribe(),
		NewOperation(domain.KindEditor, d.Runner),
		NewOperation(domain.KindGenerator, d.Runner),
		NewOperation(domain.KindExecutor, d.Runner),
		NewOperation(domain.KindReviewer, d.Runner),
		NewShell(),
		NewInstall(d.Repository, d.Reader, d.Telemetry),
		NewClean(d.Caches),
	}
}

var archiveVersion = domain.Option{
	Long:  dispatcher.ArchiveVersionOption,
	Short: "a",
	Usage: "Version of the artifact to use",
}

type styles struct {
	heading lipgloss.Style
	name    lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		heading: r.NewStyle().Bold(true),
		name:    r.NewStyle().Foreground(lipgloss.Color("6")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}
