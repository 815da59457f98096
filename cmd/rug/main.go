// Package main is the entry point for the rug tool.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"github.com/janekdb/rug-cli/cmd/rug/commands"
	"github.com/janekdb/rug-cli/internal/app"
	_ "github.com/janekdb/rug-cli/internal/wiring"
)

// provider builds the application components.
type provider func(ctx context.Context) (*app.Components, error)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, buildComponents))
}

func buildComponents(ctx context.Context) (*app.Components, error) {
	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	return components, err
}

func run(args []string, stdout, stderr io.Writer, build provider) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, err := build(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = io.WriteString(stderr, "Error: "+err.Error()+"\n")
		return 1
	}
	components.App.SetOutput(stdout, stderr)
	defer func() {
		if err := components.App.Close(); err != nil {
			components.Logger.Warn("failed to flush progress recording: " + err.Error())
		}
	}()

	// 2. Interface - CLI
	cli := commands.New(components.App)
	cli.SetOutput(stdout, stderr)
	cli.SetArgs(args)

	// 3. Execution
	code, err := cli.Execute(ctx)
	if err != nil {
		_, _ = io.WriteString(stderr, "Error: "+err.Error()+"\n")
		return 1
	}
	return code
}
