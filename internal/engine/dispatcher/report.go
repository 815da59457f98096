package dispatcher

import (
	"fmt"
	"strings"
	"time"

	"github.com/janekdb/rug-cli/internal/core/domain"
)

// report writes the single failure message of out, then the elapsed time when requested.
func (d *Dispatcher) report(flags domain.Flags, start time.Time, out Outcome) Outcome {
	if out.Err != nil {
		out.ExitCode = ExitFailure
		_, _ = fmt.Fprintln(d.stderr, d.styles.err.Render(Message(out.Err, flags.Trace)))
	}
	if flags.Timer {
		_, _ = fmt.Fprintln(d.stdout, d.styles.muted.Render(
			fmt.Sprintf("Command completed in %.2fs", time.Since(start).Seconds())))
	}
	return out
}

// Message returns the user-facing text of err, or the full cause chain when trace is set.
// A stage failure is followed by the reported sentinel it carries. Compilation failures are
// followed by the compiler's own error.
func Message(err error, trace bool) string {
	if err == nil {
		return ""
	}
	if trace {
		return domain.Trace(err)
	}

	root := domain.RootCause(err)
	if f, ok := root.(*domain.Failure); ok {
		return "Error: " + failureMessage(f)
	}
	return "Error: " + root.Error()
}

func failureMessage(f *domain.Failure) string {
	if f.Err == nil {
		return f.Message()
	}
	if f.Msg == "" {
		return f.Err.Error()
	}

	var reason string
	switch cause := domain.KnownCause(f.Err); {
	case cause != nil:
		reason = cause.Error()
	case f.Kind == domain.KindCompilation:
		reason = f.Err.Error()
	}
	if reason == "" || strings.HasSuffix(f.Msg, reason) {
		return f.Msg
	}
	return f.Msg + ": " + reason
}
