package commands

import (
	"context"
	"strconv"
	"strings"

	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/engine/dispatcher"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func (c *CLI) newOperationCmd(desc domain.CommandDescriptor) *cobra.Command {
	use := desc.Usage
	if !strings.HasPrefix(use, desc.Name) {
		use = desc.Name
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: desc.Description,
		Long:  strings.TrimSpace(desc.Description + "\n\n" + desc.Detail),
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.exitCode = c.app.Run(cmd.Context(), request(cmd, desc, args))
			return nil
		},
	}

	for _, opt := range desc.Options {
		switch opt.Kind {
		case domain.OptionBool:
			cmd.Flags().BoolP(opt.Long, opt.Short, opt.Default == "true", opt.Usage)
		default:
			cmd.Flags().StringP(opt.Long, opt.Short, opt.Default, opt.Usage)
		}
	}

	// Command help is rendered by the dispatcher so that the CLI and the shell print the same text.
	cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		req := request(cmd, desc, args)
		req.Options[dispatcher.HelpOption] = "true"
		ctx := cmd.Context()
		if ctx == nil {
			// "rug help <command>" never sets the context of the target command
			ctx = context.Background()
		}
		c.exitCode = c.app.Run(ctx, req)
	})

	return cmd
}

// request builds the dispatcher request from the parsed flags.
// Only options given on the command line are passed on.
func request(cmd *cobra.Command, desc domain.CommandDescriptor, args []string) domain.Request {
	f := domain.Flags{
		Verbose: boolFlag(cmd, "verbose"),
		Trace:   boolFlag(cmd, "error"),
		Timer:   boolFlag(cmd, "timer"),
		Dir:     stringFlag(cmd, "dir"),
	}
	if f.Dir == "" {
		f.Dir = "."
	}

	options := make(map[string]string, len(desc.Options))
	cmd.Flags().Visit(func(fl *pflag.Flag) {
		for _, opt := range desc.Options {
			if opt.Long == fl.Name {
				options[opt.Long] = fl.Value.String()
			}
		}
	})

	return domain.Request{
		Command: desc.Name,
		Args:    append([]string(nil), args...),
		Options: options,
		Flags:   f,
	}
}

// lookup finds a local or inherited flag. Inherited flags are only merged into
// Flags() once the command has parsed its arguments, which help requests skip.
func lookup(cmd *cobra.Command, name string) *pflag.Flag {
	if fl := cmd.Flags().Lookup(name); fl != nil {
		return fl
	}
	return cmd.InheritedFlags().Lookup(name)
}

func boolFlag(cmd *cobra.Command, name string) bool {
	fl := lookup(cmd, name)
	if fl == nil {
		return false
	}
	b, _ := strconv.ParseBool(fl.Value.String())
	return b
}

func stringFlag(cmd *cobra.Command, name string) string {
	if fl := lookup(cmd, name); fl != nil {
		return fl.Value.String()
	}
	return ""
}
