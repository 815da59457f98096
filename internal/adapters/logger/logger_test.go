package logger_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/janekdb/rug-cli/internal/adapters/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
)

func newLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	lg, ok := logger.New().(*logger.Logger)
	require.True(t, ok)
	var buf bytes.Buffer
	lg.SetOutput(&buf)
	return lg, &buf
}

func TestLogger_Levels(t *testing.T) {
	lg, buf := newLogger(t)

	lg.Info("some message")
	lg.Warn("some warning")

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "some message")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "some warning")
}

func TestLogger_Error(t *testing.T) {
	lg, buf := newLogger(t)

	lg.Error(zerr.Wrap(errors.New("permission denied"), "failed to write cache entry"))
	lg.Error(nil)

	out := buf.String()
	assert.Contains(t, out, "ERRO")
	assert.Contains(t, out, "failed to write cache entry")
	assert.Contains(t, out, "Caused by: permission denied")
}

func TestLogger_Verbose(t *testing.T) {
	lg, buf := newLogger(t)

	lg.Debug("hidden")
	assert.Empty(t, buf.String())

	lg.SetVerbose(true)
	lg.Debug("shown", "key", "value")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "key=value")
}

func TestLogger_SetOutputNil(t *testing.T) {
	lg, _ := newLogger(t)
	assert.NotPanics(t, func() { lg.SetOutput(nil) })
}
