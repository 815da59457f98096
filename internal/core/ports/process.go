package ports

import (
	"context"
	"io"
)

// ProcessRunner starts operation processes.
//
//go:generate go run go.uber.org/mock/mockgen -source=process.go -destination=mocks/mock_process.go -package=mocks
type ProcessRunner interface {
	// Run executes argv with env appended to a minimal base environment.
	// dir is the working directory of the process.
	Run(ctx context.Context, dir string, argv, env []string, stdout, stderr io.Writer) error
}
