// Package commands implements the CLI surface of the rug tool.
package commands

import (
	"context"
	"io"
	"os"

	"github.com/janekdb/rug-cli/internal/build"
	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/engine/dispatcher"
	"github.com/spf13/cobra"
)

// Application runs parsed requests.
type Application interface {
	Commands() []domain.CommandDescriptor
	Run(ctx context.Context, req domain.Request) int
}

// CLI represents the command line interface for rug.
type CLI struct {
	app      Application
	rootCmd  *cobra.Command
	args     []string
	exitCode int
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "rug",
		Short:         "Resolve, compile and run archives of project operations",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Display usage help without returning an error
			return cmd.Help()
		},
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().BoolP("verbose", "V", false, "Print loaded sources and failed transfers")
	rootCmd.PersistentFlags().BoolP("error", "X", false, "Print the full cause chain of a failure")
	rootCmd.PersistentFlags().BoolP("timer", "t", false, "Report the elapsed time of the command")
	rootCmd.PersistentFlags().StringP("dir", "d", ".", "Directory searched for a local archive")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	for _, desc := range a.Commands() {
		rootCmd.AddCommand(c.newOperationCmd(desc))
	}
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context and returns the exit code
// reported by the dispatched command. A non-nil error is a command-line error that
// was not dispatched.
func (c *CLI) Execute(ctx context.Context) (int, error) {
	c.exitCode = 0
	args := c.args
	if args == nil {
		args = os.Args[1:]
	}
	c.rootCmd.SetArgs(dispatcher.NormalizeHelp(args))
	c.rootCmd.SetContext(ctx)
	if err := c.rootCmd.Execute(); err != nil {
		return 1, err
	}
	return c.exitCode, nil
}

// SetArgs sets the arguments for the root command.
func (c *CLI) SetArgs(args []string) {
	c.args = args
}

// SetOutput redirects help and version output.
func (c *CLI) SetOutput(stdout, stderr io.Writer) {
	c.rootCmd.SetOut(stdout)
	c.rootCmd.SetErr(stderr)
}
