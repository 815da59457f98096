// Package console renders progress vertices as plain lines on a terminal stream.
package console

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/core/ports"
	"github.com/muesli/termenv"
)

const (
	iconDone   = "✓"
	iconFailed = "✗"
	iconCached = "⚡"
)

// Renderer implements ports.Telemetry by writing one line per event.
// Vertex names and failures are always shown; completions only in verbose mode.
type Renderer struct {
	mu      sync.Mutex
	out     io.Writer
	styles  styles
	verbose bool
}

// New creates a Renderer writing to w. A nil writer means os.Stderr.
func New(w io.Writer) *Renderer {
	r := &Renderer{}
	r.SetOutput(w)
	return r
}

// SetOutput replaces the destination stream and re-detects its colour profile.
func (r *Renderer) SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	out := termenv.NewOutput(w)
	renderer := lipgloss.NewRenderer(w)
	if out.EnvNoColor() {
		renderer.SetColorProfile(termenv.Ascii)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.out = w
	r.styles = newStyles(renderer)
}

// SetVerbose toggles rendering of debug lines and completions.
func (r *Renderer) SetVerbose(verbose bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.verbose = verbose
}

// Record prints the vertex name and returns a vertex bound to it.
func (r *Renderer) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	v := &vertex{renderer: r, name: name}
	r.line(func(s styles) string { return s.title.Render(name) })
	return ports.ContextWithVertex(ctx, v), v
}

// Close is a no-op; every line is written as it happens.
func (r *Renderer) Close() error {
	return nil
}

func (r *Renderer) line(render func(styles) string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = io.WriteString(r.out, render(r.styles)+"\n")
}

func (r *Renderer) isVerbose() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.verbose
}

// lockedWriter serializes writes from concurrent vertices onto the shared stream.
type lockedWriter struct {
	r *Renderer
}

func (w lockedWriter) Write(p []byte) (int, error) {
	w.r.mu.Lock()
	defer w.r.mu.Unlock()
	return w.r.out.Write(p)
}

type vertex struct {
	renderer *Renderer
	name     string
	once     sync.Once
	cached   bool
}

func (v *vertex) Stdout() io.Writer {
	return lockedWriter{r: v.renderer}
}

func (v *vertex) Stderr() io.Writer {
	return lockedWriter{r: v.renderer}
}

func (v *vertex) Log(level domain.LogLevel, msg string) {
	if level == domain.LogLevelDebug && !v.renderer.isVerbose() {
		return
	}
	v.renderer.line(func(s styles) string {
		switch {
		case level >= domain.LogLevelError:
			return s.failed.Render(msg)
		case level >= domain.LogLevelWarn:
			return s.warn.Render(msg)
		case level >= domain.LogLevelSuccess:
			return s.success.Render(msg)
		case level <= domain.LogLevelDebug:
			return s.debug.Render(msg)
		default:
			return msg
		}
	})
}

func (v *vertex) Cached() {
	v.renderer.mu.Lock()
	defer v.renderer.mu.Unlock()
	v.cached = true
}

func (v *vertex) Complete(err error) {
	v.once.Do(func() {
		if err != nil {
			v.renderer.line(func(s styles) string { return s.failed.Render(iconFailed + " " + v.name) })
			return
		}
		if !v.renderer.isVerbose() {
			return
		}
		v.renderer.mu.Lock()
		cached := v.cached
		v.renderer.mu.Unlock()
		if cached {
			v.renderer.line(func(s styles) string { return s.cached.Render(iconCached + " " + v.name) })
			return
		}
		v.renderer.line(func(s styles) string { return s.done.Render(iconDone + " " + v.name) })
	})
}
