// Package logger implements a logging adapter using log/slog backed by charmbracelet/log.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/core/ports"
)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	mu      sync.RWMutex
	logger  *slog.Logger
	output  io.Writer
	verbose bool
}

// New creates a new Logger writing to stderr.
func New() ports.Logger {
	l := &Logger{}
	l.rebuild(os.Stderr)
	return l
}

func (l *Logger) rebuild(w io.Writer) {
	level := log.InfoLevel
	if l.verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: false,
	})
	l.output = w
	l.logger = slog.New(handler)
}

// SetOutput updates the logger's output destination.
// If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.rebuild(w)
}

// SetVerbose enables debug output.
func (l *Logger) SetVerbose(verbose bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.verbose = verbose
	l.rebuild(l.output)
}

// Debug logs a message only shown in verbose mode.
func (l *Logger) Debug(msg string, args ...any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg, args...)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs err with one line per cause.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error(strings.TrimPrefix(domain.Trace(err), "Error: "))
}
