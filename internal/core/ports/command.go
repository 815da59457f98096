// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"github.com/janekdb/rug-cli/internal/core/domain"
)

// Command is one entry of the command registry.
//
//go:generate go run go.uber.org/mock/mockgen -source=command.go -destination=mocks/mock_command.go -package=mocks
type Command interface {
	// Descriptor returns the static metadata of the command.
	Descriptor() domain.CommandDescriptor
	// Run executes the command body.
	Run(ctx context.Context, inv *domain.Invocation) error
}
