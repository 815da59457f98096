package ports

import "github.com/janekdb/rug-cli/internal/core/domain"

//go:generate go run go.uber.org/mock/mockgen -source=terminal.go -destination=mocks/mock_terminal.go -package=mocks

// LineReader reads interactive input one line at a time.
type LineReader interface {
	// ReadLine returns the next line without its terminator.
	// It returns domain.ErrInterrupted when the user interrupts the current line
	// and io.EOF at end of input.
	ReadLine() (string, error)
	// SetCompleter installs the completion source used for tab completion.
	SetCompleter(c Completer)
	// Clear clears the screen.
	Clear() error
	// Close restores the terminal.
	Close() error
}

// Completer proposes candidates for the current input line.
type Completer interface {
	Complete(line string) []string
}

// Catalog persists the operations of the loaded artifact for completion.
type Catalog interface {
	Publish(units *domain.LoadedUnits) error
}
