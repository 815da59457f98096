package dispatcher

import (
	"fmt"
	"io"
	"strings"

	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/spf13/pflag"
)

// HelpOption is the request option set by -h, -? and --help.
const HelpOption = "help"

// NormalizeHelp rewrites -? to -h. Arguments after -- are left untouched.
func NormalizeHelp(args []string) []string {
	out := make([]string, 0, len(args))
	for i, a := range args {
		if a == "--" {
			return append(out, args[i:]...)
		}
		if a == "-?" {
			a = "-h"
		}
		out = append(out, a)
	}
	return out
}

// Parse turns argv into a Request for the registered command it names.
// flags seeds the global switches. Options are validated against the option schema of the command.
func (r *Registry) Parse(argv []string, flags domain.Flags) (domain.Request, error) {
	if len(argv) == 0 {
		return domain.Request{}, domain.Fail(domain.KindParse, "no command given", nil)
	}

	name := argv[0]
	cmd, ok := r.Lookup(name)
	if !ok {
		return domain.Request{}, unknownCommand(name)
	}
	desc := cmd.Descriptor()

	req := domain.Request{Command: name, Options: map[string]string{}, Flags: flags}
	set := flagSet(desc, &req.Flags)
	if err := set.Parse(NormalizeHelp(argv[1:])); err != nil {
		return domain.Request{}, domain.Fail(domain.KindParse, fmt.Sprintf("%v for command %s", err, name), nil)
	}

	set.Visit(func(f *pflag.Flag) {
		for _, o := range desc.Options {
			if o.Long == f.Name {
				req.Options[o.Long] = f.Value.String()
			}
		}
	})
	if help, _ := set.GetBool(HelpOption); help {
		req.Options[HelpOption] = "true"
	}
	if args := set.Args(); len(args) > 0 {
		req.Args = args
	}
	if req.Flags.Dir == "" {
		req.Flags.Dir = "."
	}
	return req, nil
}

// flagSet declares the global switches, which write into flags, and the options of desc.
func flagSet(desc domain.CommandDescriptor, flags *domain.Flags) *pflag.FlagSet {
	set := pflag.NewFlagSet(desc.Name, pflag.ContinueOnError)
	set.SetOutput(io.Discard)

	set.BoolP(HelpOption, "h", false, "Show help for command")
	set.BoolVarP(&flags.Verbose, "verbose", "V", flags.Verbose, "Print loaded sources and failed transfers")
	set.BoolVarP(&flags.Trace, "error", "X", flags.Trace, "Print the full cause chain of a failure")
	set.BoolVarP(&flags.Timer, "timer", "t", flags.Timer, "Report the elapsed time of the command")

	for _, o := range desc.Options {
		if set.Lookup(o.Long) != nil {
			continue
		}
		short := o.Short
		if short != "" && set.ShorthandLookup(short) != nil {
			short = ""
		}
		switch o.Kind {
		case domain.OptionBool:
			set.BoolP(o.Long, short, o.Default == "true", o.Usage)
		default:
			set.StringP(o.Long, short, o.Default, o.Usage)
		}
	}
	return set
}

// Usage renders the help text of a command.
func Usage(desc domain.CommandDescriptor) string {
	var b strings.Builder
	usage := desc.Usage
	if usage == "" {
		usage = desc.Name
	}
	fmt.Fprintf(&b, "Usage: %s\n", usage)
	if desc.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", desc.Description)
	}
	if desc.Detail != "" {
		fmt.Fprintf(&b, "\n%s\n", desc.Detail)
	}
	if len(desc.Options) > 0 {
		b.WriteString("\nOptions:\n")
		for _, o := range desc.Options {
			flag := "    --" + o.Long
			if o.Short != "" {
				flag = "-" + o.Short + ", --" + o.Long
			}
			fmt.Fprintf(&b, "  %-28s %s\n", flag, o.Usage)
		}
	}
	return b.String()
}
