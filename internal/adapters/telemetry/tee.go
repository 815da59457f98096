// Package telemetry combines progress recorders.
package telemetry

import (
	"context"
	"errors"
	"io"

	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/core/ports"
)

// Tee implements ports.Telemetry by fanning every event out to several recorders.
type Tee struct {
	sinks []ports.Telemetry
}

// NewTee creates a Tee over sinks.
func NewTee(sinks ...ports.Telemetry) *Tee {
	return &Tee{sinks: sinks}
}

// SetVerbose forwards the verbosity to every sink that supports it.
func (t *Tee) SetVerbose(verbose bool) {
	for _, s := range t.sinks {
		if v, ok := s.(interface{ SetVerbose(bool) }); ok {
			v.SetVerbose(verbose)
		}
	}
}

// SetOutput forwards the output stream to every sink that supports it.
func (t *Tee) SetOutput(w io.Writer) {
	for _, s := range t.sinks {
		if o, ok := s.(interface{ SetOutput(io.Writer) }); ok {
			o.SetOutput(w)
		}
	}
}

// Record starts a vertex on every sink.
func (t *Tee) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	v := &teeVertex{}
	for _, s := range t.sinks {
		var sub ports.Vertex
		ctx, sub = s.Record(ctx, name)
		v.vertices = append(v.vertices, sub)
	}
	return ports.ContextWithVertex(ctx, v), v
}

// Close closes every sink and joins their errors.
func (t *Tee) Close() error {
	var errs []error
	for _, s := range t.sinks {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}

type teeVertex struct {
	vertices []ports.Vertex
}

func (v *teeVertex) Stdout() io.Writer {
	ws := make([]io.Writer, 0, len(v.vertices))
	for _, sub := range v.vertices {
		ws = append(ws, sub.Stdout())
	}
	return io.MultiWriter(ws...)
}

func (v *teeVertex) Stderr() io.Writer {
	ws := make([]io.Writer, 0, len(v.vertices))
	for _, sub := range v.vertices {
		ws = append(ws, sub.Stderr())
	}
	return io.MultiWriter(ws...)
}

func (v *teeVertex) Log(level domain.LogLevel, msg string) {
	for _, sub := range v.vertices {
		sub.Log(level, msg)
	}
}

func (v *teeVertex) Complete(err error) {
	for _, sub := range v.vertices {
		sub.Complete(err)
	}
}

func (v *teeVertex) Cached() {
	for _, sub := range v.vertices {
		sub.Cached()
	}
}
