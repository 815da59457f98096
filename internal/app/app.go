// Package app implements the application layer for rug.
package app

import (
	"context"
	"io"

	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/core/ports"
	"github.com/janekdb/rug-cli/internal/engine/dispatcher"
	"go.trai.ch/zerr"
)

// Dispatcher runs single invocations.
type Dispatcher interface {
	Dispatch(ctx context.Context, req domain.Request, session *domain.Session) dispatcher.Outcome
	SetOutput(stdout, stderr io.Writer)
}

// Shell serves interactive lines over a resolved session.
type Shell interface {
	Run(ctx context.Context, session *domain.Session, flags domain.Flags) error
	SetOutput(w io.Writer)
}

// App represents the main application logic.
type App struct {
	registry   *dispatcher.Registry
	dispatcher Dispatcher
	shell      Shell
	telemetry  ports.Telemetry
	logger     ports.Logger
}

// New creates a new App instance.
func New(
	registry *dispatcher.Registry,
	d Dispatcher,
	shell Shell,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *App {
	return &App{
		registry:   registry,
		dispatcher: d,
		shell:      shell,
		telemetry:  telemetry,
		logger:     logger,
	}
}

// Commands returns the registered command descriptors in display order.
func (a *App) Commands() []domain.CommandDescriptor {
	cmds := a.registry.Commands()
	out := make([]domain.CommandDescriptor, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, c.Descriptor())
	}
	return out
}

// SetOutput redirects command output to stdout and progress, logs and failures to stderr.
func (a *App) SetOutput(stdout, stderr io.Writer) {
	a.dispatcher.SetOutput(stdout, stderr)
	a.shell.SetOutput(stdout)
	if o, ok := a.telemetry.(interface{ SetOutput(io.Writer) }); ok {
		o.SetOutput(stderr)
	}
	if o, ok := a.logger.(interface{ SetOutput(io.Writer) }); ok {
		o.SetOutput(stderr)
	}
}

// Run dispatches req and returns the process exit code.
// An interactive command that succeeds continues into the shell over the session it resolved.
func (a *App) Run(ctx context.Context, req domain.Request) int {
	a.setVerbose(req.Flags.Verbose)

	out := a.dispatcher.Dispatch(ctx, req, nil)
	if out.ExitCode != dispatcher.ExitOK || !out.Command.Interactive || out.Session == nil {
		return out.ExitCode
	}

	if err := a.shell.Run(ctx, out.Session, req.Flags); err != nil {
		a.logger.Error(zerr.Wrap(err, "shell terminated"))
		return dispatcher.ExitFailure
	}
	return dispatcher.ExitOK
}

// Close flushes the progress recording.
func (a *App) Close() error {
	return a.telemetry.Close()
}

func (a *App) setVerbose(verbose bool) {
	if v, ok := a.telemetry.(interface{ SetVerbose(bool) }); ok {
		v.SetVerbose(verbose)
	}
	if v, ok := a.logger.(interface{ SetVerbose(bool) }); ok {
		v.SetVerbose(verbose)
	}
}
