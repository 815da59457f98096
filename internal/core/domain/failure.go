package domain

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// maxCauseDepth bounds every walk over a cause chain.
const maxCauseDepth = 64

// FailureKind classifies a Failure by the stage that produced it.
type FailureKind int

const (
	// KindParse marks malformed arguments or an unknown command.
	KindParse FailureKind = iota + 1
	// KindResolution marks coordinate, version, transport and runtime compatibility failures.
	KindResolution
	// KindCompilation marks a failed compiler step.
	KindCompilation
	// KindLoad marks malformed archive contents.
	KindLoad
	// KindInvocation marks a failure raised by a command body.
	KindInvocation
)

// String returns the name of the kind.
func (k FailureKind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindResolution:
		return "resolution"
	case KindCompilation:
		return "compilation"
	case KindLoad:
		return "load"
	case KindInvocation:
		return "invocation"
	default:
		return "unknown"
	}
}

func (k FailureKind) sentinel() error {
	switch k {
	case KindParse:
		return ErrParse
	case KindResolution:
		return ErrResolution
	case KindCompilation:
		return ErrCompilation
	case KindLoad:
		return ErrLoad
	case KindInvocation:
		return ErrInvocation
	default:
		return nil
	}
}

// Failure is a domain-recognized error. Root-cause unwrapping stops at the first Failure.
type Failure struct {
	Kind FailureKind
	Msg  string
	Err  error
}

// Fail creates a Failure of the given kind.
func Fail(kind FailureKind, msg string, cause error) *Failure {
	return &Failure{Kind: kind, Msg: msg, Err: cause}
}

// Error returns the message followed by the cause chain.
func (f *Failure) Error() string {
	msg := f.Message()
	if f.Err == nil {
		return msg
	}
	return msg + ": " + f.Err.Error()
}

// Message returns the message of this failure without its causes.
func (f *Failure) Message() string {
	if f.Msg != "" {
		return f.Msg
	}
	if s := f.Kind.sentinel(); s != nil {
		return s.Error()
	}
	return "failure"
}

// Unwrap returns the cause.
func (f *Failure) Unwrap() error {
	return f.Err
}

// Is matches the sentinel of the failure kind.
func (f *Failure) Is(target error) bool {
	s := f.Kind.sentinel()
	return s != nil && target == s
}

// Layer identifies a wrapper added around failures raised inside pluggable code.
type Layer int

const (
	// LayerInvocation wraps failures escaping a command body.
	LayerInvocation Layer = iota + 1
	// LayerLoader wraps failures raised while loading units into an environment.
	LayerLoader
)

// String returns the name of the layer.
func (l Layer) String() string {
	switch l {
	case LayerInvocation:
		return "invocation"
	case LayerLoader:
		return "loader"
	default:
		return "unknown"
	}
}

// Wrapped is a transparent wrapper layer. It carries no message of its own.
type Wrapped struct {
	Layer Layer
	Err   error
}

// WrapInvocation wraps err in an invocation layer. It returns nil if err is nil.
func WrapInvocation(err error) error {
	if err == nil {
		return nil
	}
	return &Wrapped{Layer: LayerInvocation, Err: err}
}

// WrapLoader wraps err in a loader layer. It returns nil if err is nil.
func WrapLoader(err error) error {
	if err == nil {
		return nil
	}
	return &Wrapped{Layer: LayerLoader, Err: err}
}

// Error returns the message of the wrapped error.
func (w *Wrapped) Error() string {
	if w.Err == nil {
		return w.Layer.String() + " failure"
	}
	return w.Err.Error()
}

// Unwrap returns the wrapped error.
func (w *Wrapped) Unwrap() error {
	return w.Err
}

// RootCause peels wrapper layers and causal chains until it reaches a Failure
// or the innermost cause. The walk is bounded and never loops.
func RootCause(err error) error {
	current := err
	for range maxCauseDepth {
		if current == nil {
			return nil
		}

		var next error
		switch e := current.(type) {
		case *Failure:
			return e
		case *Wrapped:
			next = e.Err
		default:
			next = errors.Unwrap(current)
		}

		if next == nil {
			return current
		}
		current = next
	}
	return current
}

// reportedCauses are the sentinels that name the reason behind a stage failure.
var reportedCauses = []error{
	ErrIncompatibleRuntime,
	ErrArtifactNotFound,
	ErrVersionUnsatisfiable,
	ErrTransportFailure,
	ErrMalformedArchive,
	ErrManifestNotFound,
	ErrInvalidCoordinate,
	ErrInvalidRequirement,
	ErrDuplicateIdentity,
	ErrUnitMissing,
	ErrMissingParameter,
	ErrInvalidParameter,
}

// KnownCause returns the outermost reported sentinel in the cause chain of err, or nil.
func KnownCause(err error) error {
	current := err
	for range maxCauseDepth {
		if current == nil {
			break
		}
		for _, s := range reportedCauses {
			if current == s {
				return s
			}
		}
		current = errors.Unwrap(current)
	}
	for _, s := range reportedCauses {
		if errors.Is(err, s) {
			return s
		}
	}
	return nil
}

type messager interface {
	Message() string
}

type metadataCarrier interface {
	Metadata() map[string]any
}

// Trace renders the full cause chain of err, one line per layer with a message.
func Trace(err error) string {
	if err == nil {
		return ""
	}

	var lines []string
	current := err
	for depth := 0; current != nil && depth < maxCauseDepth; depth++ {
		if w, ok := current.(*Wrapped); ok {
			current = w.Err
			continue
		}

		msg := current.Error()
		next := error(nil)
		if m, ok := current.(messager); ok {
			msg = m.Message()
			next = errors.Unwrap(current)
		}
		if mc, ok := current.(metadataCarrier); ok {
			msg += formatMetadata(mc.Metadata())
		}

		switch {
		case msg == "":
		case len(lines) == 0:
			lines = append(lines, "Error: "+msg)
		default:
			lines = append(lines, "  Caused by: "+msg)
		}
		current = next
	}
	return strings.Join(lines, "\n")
}

func formatMetadata(meta map[string]any) string {
	if len(meta) == 0 {
		return ""
	}
	keys := slices.Sorted(maps.Keys(meta))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, meta[k]))
	}
	return " (" + strings.Join(parts, ", ") + ")"
}
