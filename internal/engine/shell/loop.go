// Package shell runs the interactive read-dispatch loop over one resolved session.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/core/ports"
	"github.com/janekdb/rug-cli/internal/engine/dispatcher"
	"go.trai.ch/zerr"
	"mvdan.cc/sh/v3/shell"
)

// Farewell is printed when the session ends.
const Farewell = "Goodbye!"

// LineDispatcher dispatches one tokenized shell line.
type LineDispatcher interface {
	DispatchLine(ctx context.Context, argv []string, flags domain.Flags, session *domain.Session) dispatcher.Outcome
}

// Loop reads lines and hands them to the dispatcher until exit or end of input.
type Loop struct {
	reader     ports.LineReader
	dispatcher LineDispatcher
	runner     ports.ProcessRunner
	completer  ports.Completer
	logger     ports.Logger
	out        io.Writer
	env        func(string) string
}

// New creates a Loop writing its own messages to out.
func New(
	reader ports.LineReader,
	d LineDispatcher,
	runner ports.ProcessRunner,
	completer ports.Completer,
	logger ports.Logger,
	out io.Writer,
) *Loop {
	if out == nil {
		out = os.Stdout
	}
	return &Loop{
		reader:     reader,
		dispatcher: d,
		runner:     runner,
		completer:  completer,
		logger:     logger,
		out:        out,
		env:        os.Getenv,
	}
}

// SetOutput replaces the writer for farewell and escaped process output.
func (l *Loop) SetOutput(w io.Writer) {
	if w != nil {
		l.out = w
	}
}

// Run serves lines against session. Every dispatched line receives the same session.
// Interrupts abort only the line being read. Run returns nil on exit or end of input.
func (l *Loop) Run(ctx context.Context, session *domain.Session, flags domain.Flags) error {
	// The reader turns interrupts into per-line aborts; they must not end the session.
	ctx = context.WithoutCancel(ctx)

	if l.completer != nil {
		l.reader.SetCompleter(l.completer)
	}
	defer func() {
		if err := l.reader.Close(); err != nil {
			l.logger.Warn("failed to restore terminal: " + err.Error())
		}
	}()

	for {
		line, err := l.reader.ReadLine()
		switch {
		case errors.Is(err, domain.ErrInterrupted):
			continue
		case errors.Is(err, io.EOF):
			l.farewell()
			return nil
		case err != nil:
			return zerr.Wrap(err, "failed to read shell input")
		}

		if done := l.handle(ctx, strings.TrimSpace(line), session, flags); done {
			l.farewell()
			return nil
		}
	}
}

// handle processes one line and reports whether the session should end.
func (l *Loop) handle(ctx context.Context, line string, session *domain.Session, flags domain.Flags) bool {
	switch {
	case line == "":
		return false
	case line == "exit" || line == "quit" || line == "q":
		return true
	case line == "clear":
		if err := l.reader.Clear(); err != nil {
			l.logger.Error(err)
		}
		return false
	case strings.HasPrefix(line, "!"):
		l.escape(ctx, strings.TrimPrefix(line, "!"), flags.Dir)
		return false
	}

	argv, err := shell.Fields(line, l.env)
	if err != nil {
		l.logger.Error(domain.Fail(domain.KindParse, "failed to parse line", err))
		return false
	}
	if len(argv) == 0 {
		return false
	}
	// Failures are reported by the dispatcher and never end the session.
	_ = l.dispatcher.DispatchLine(ctx, argv, flags, session)
	return false
}

// escape runs an external process. Its failures are logged.
func (l *Loop) escape(ctx context.Context, line, dir string) {
	argv, err := shell.Fields(line, l.env)
	if err != nil {
		l.logger.Error(zerr.With(zerr.Wrap(err, "failed to parse command"), "command", line))
		return
	}
	if len(argv) == 0 {
		return
	}
	if err := l.runner.Run(ctx, dir, argv, nil, l.out, l.out); err != nil {
		l.logger.Error(err)
	}
}

func (l *Loop) farewell() {
	_, _ = fmt.Fprintln(l.out, Farewell)
}
