package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
)

func TestFailure_IsMatchesKind(t *testing.T) {
	err := domain.Fail(domain.KindCompilation, "failed to compile a.rug", errors.New("bad yaml"))

	assert.ErrorIs(t, err, domain.ErrCompilation)
	assert.NotErrorIs(t, err, domain.ErrLoad)
	assert.Equal(t, "failed to compile a.rug: bad yaml", err.Error())
	assert.Equal(t, "failed to compile a.rug", err.Message())
}

func TestFailure_EmptyMessageFallsBackToKind(t *testing.T) {
	err := domain.Fail(domain.KindLoad, "", nil)
	assert.Equal(t, "failed to load archive", err.Error())
}

func TestRootCause(t *testing.T) {
	inner := errors.New("disk full")
	recognized := domain.Fail(domain.KindLoad, "failed to load archive", zerr.Wrap(inner, "read manifest"))

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"plain error", inner, inner},
		{"invocation wrapper peeled", domain.WrapInvocation(inner), inner},
		{"generic chain followed to innermost", zerr.Wrap(zerr.Wrap(inner, "b"), "a"), inner},
		{"stops at failure", domain.WrapInvocation(domain.WrapLoader(recognized)), recognized},
		{"stops at failure inside generic chain", zerr.Wrap(recognized, "outer"), recognized},
		{"fmt wrapping", fmt.Errorf("x: %w", domain.WrapInvocation(inner)), inner},
		{"empty wrapper", &domain.Wrapped{Layer: domain.LayerLoader}, &domain.Wrapped{Layer: domain.LayerLoader}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.RootCause(tt.err))
		})
	}
}

// selfLoop unwraps to itself forever.
type selfLoop struct{}

func (s *selfLoop) Error() string { return "loop" }
func (s *selfLoop) Unwrap() error { return s }

func TestRootCause_TerminatesOnCycles(t *testing.T) {
	loop := &selfLoop{}
	assert.Equal(t, loop, domain.RootCause(loop))
}

func TestRootCause_DeepChains(t *testing.T) {
	var err error = errors.New("bottom")
	for i := range 500 {
		if i%2 == 0 {
			err = domain.WrapInvocation(err)
		} else {
			err = zerr.Wrap(err, "layer")
		}
	}
	require.NotNil(t, domain.RootCause(err))
}

func TestTrace(t *testing.T) {
	cause := zerr.With(zerr.Wrap(domain.ErrArtifactNotFound, "lookup failed"), "coordinate", "acme:lib")
	err := domain.WrapInvocation(domain.Fail(domain.KindResolution, "failed to resolve acme:lib:latest", cause))

	trace := domain.Trace(err)
	assert.Equal(t,
		"Error: failed to resolve acme:lib:latest\n"+
			"  Caused by: lookup failed (coordinate=acme:lib)\n"+
			"  Caused by: artifact not found",
		trace)
	assert.Empty(t, domain.Trace(nil))
}

func TestKnownCause(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "wrapped sentinel",
			err:  zerr.With(zerr.Wrap(domain.ErrIncompatibleRuntime, "artifact requires [2.0.0,3.0.0)"), "artifact", "acme:lib"),
			want: domain.ErrIncompatibleRuntime,
		},
		{
			name: "outermost sentinel wins",
			err:  zerr.Wrap(domain.ErrTransportFailure, domain.ErrArtifactNotFound.Error()),
			want: domain.ErrTransportFailure,
		},
		{
			name: "through a failure",
			err:  domain.Fail(domain.KindLoad, "failed to load archive", domain.ErrMalformedArchive),
			want: domain.ErrMalformedArchive,
		},
		{
			name: "unreported sentinel",
			err:  zerr.Wrap(domain.ErrOperationNotFound, "no editor named foo"),
		},
		{
			name: "foreign error",
			err:  errors.New("yaml: line 1: did not find expected node content"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.KnownCause(tt.err))
		})
	}
}
