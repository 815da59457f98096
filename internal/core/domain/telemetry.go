package domain

// VertexStatus is the lifecycle state of one progress vertex.
type VertexStatus string

const (
	// VertexStatusRunning marks a vertex whose work is in progress.
	VertexStatusRunning VertexStatus = "running"
	// VertexStatusCompleted marks a vertex that finished without error.
	VertexStatusCompleted VertexStatus = "completed"
	// VertexStatusFailed marks a vertex that finished with an error.
	VertexStatusFailed VertexStatus = "failed"
	// VertexStatusCached marks a vertex whose work was served entirely from a cache.
	VertexStatusCached VertexStatus = "cached"
)

// IsTerminal reports whether no further transitions follow.
func (s VertexStatus) IsTerminal() bool {
	return s == VertexStatusCompleted || s == VertexStatusFailed || s == VertexStatusCached
}

// LogLevel is the severity of a vertex log line, mirroring the slog levels.
type LogLevel int

const (
	// LogLevelDebug is only rendered in verbose mode.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo is the default level.
	LogLevelInfo LogLevel = 0
	// LogLevelSuccess marks a line reporting a successful step.
	LogLevelSuccess LogLevel = 2
	// LogLevelWarn marks a recoverable problem.
	LogLevelWarn LogLevel = 4
	// LogLevelError marks a failed step.
	LogLevelError LogLevel = 8
)

// String returns the upper-case level name.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelSuccess:
		return "SUCCESS"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
