package ports

// Logger defines the interface for user-facing diagnostic output.
//
//go:generate go run go.uber.org/mock/mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Info logs an informational message.
	Info(msg string)
	// Warn logs a recoverable problem.
	Warn(msg string)
	// Error logs an error together with its cause chain.
	Error(err error)
}
