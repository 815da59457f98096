package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/core/ports"
	"go.trai.ch/zerr"
)

var verbs = map[domain.OperationKind]string{
	domain.KindEditor:    "edit",
	domain.KindGenerator: "generate",
	domain.KindExecutor:  "execute",
	domain.KindReviewer:  "review",
}

// Operation runs one operation of the loaded artifact.
type Operation struct {
	kind   domain.OperationKind
	runner ports.ProcessRunner
}

// NewOperation creates the command running operations of kind.
func NewOperation(kind domain.OperationKind, runner ports.ProcessRunner) *Operation {
	return &Operation{kind: kind, runner: runner}
}

// Descriptor returns the command metadata.
func (c *Operation) Descriptor() domain.CommandDescriptor {
	verb := verbs[c.kind]
	usage := verb + " [options] <name> [name=value ...]"
	if c.kind == domain.KindGenerator {
		usage = verb + " [options] <name> <project_name> [name=value ...]"
	}
	return domain.CommandDescriptor{
		Name:             verb,
		Usage:            usage,
		Description:      fmt.Sprintf("Run %s %s", article(c.kind), c.kind),
		Detail:           "The name may be qualified as group:artifact:name to run an operation of an installed archive.",
		Options:          []domain.Option{archiveVersion},
		Order:            30 + slices.Index(domain.OperationKinds, c.kind),
		RequiresArtifact: true,
		QualifiedArg:     1,
	}
}

// Run binds the parameters and starts the command the operation declares inside the environment.
func (c *Operation) Run(ctx context.Context, inv *domain.Invocation) error {
	args := inv.Request.Args
	if len(args) == 0 {
		return domain.Fail(domain.KindParse, fmt.Sprintf("%s needs the name of %s %s", verbs[c.kind], article(c.kind), c.kind), nil)
	}
	name, rest := args[0], args[1:]

	op, ok := inv.Units.Find(c.kind, name)
	if !ok {
		return notFound(c.kind, name, inv.Artifact)
	}

	values := map[string]string{}
	if c.kind == domain.KindGenerator {
		if len(rest) == 0 || strings.Contains(rest[0], "=") {
			return domain.Fail(domain.KindParse, "generate needs a project name", nil)
		}
		values[domain.ProjectNameParameter] = rest[0]
		rest = rest[1:]
	}
	for _, arg := range rest {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return domain.Fail(domain.KindParse, fmt.Sprintf("invalid parameter %q, expected name=value", arg), nil)
		}
		values[k] = v
	}

	bound, err := op.Bind(values)
	if err != nil {
		return domain.Fail(domain.KindInvocation, fmt.Sprintf("invalid parameters for %s %s", c.kind, name), err)
	}

	dir := inv.Request.Flags.Dir
	if c.kind == domain.KindGenerator {
		dir = filepath.Join(dir, values[domain.ProjectNameParameter])
		if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
			return domain.Fail(domain.KindInvocation, "failed to create project directory", zerr.With(err, "dir", dir))
		}
	}

	s := newStyles(inv.Out)
	_, _ = fmt.Fprintf(inv.Out, "Running %s %s of %s\n", c.kind, s.name.Render(name), inv.Artifact)
	if len(op.Command) == 0 {
		_, _ = fmt.Fprintln(inv.Out, s.muted.Render("  No command declared"))
		return nil
	}

	env := ParameterEnv(bound)
	if inv.Env != nil {
		env = append(inv.Env.Vars(), env...)
	}
	if err := c.runner.Run(ctx, dir, op.Command, env, inv.Out, inv.Out); err != nil {
		return domain.Fail(domain.KindInvocation, fmt.Sprintf("%s %s failed", c.kind, name), err)
	}
	_, _ = fmt.Fprintf(inv.Out, "Successfully ran %s %s\n", c.kind, name)
	return nil
}

// ParameterEnv turns bound parameters into RUG_PARAM_<NAME> variables, sorted by name.
func ParameterEnv(bound map[string]string) []string {
	out := make([]string, 0, len(bound))
	for k, v := range bound {
		out = append(out, domain.EnvVarParam+envName(k)+"="+v)
	}
	slices.Sort(out)
	return out
}

func envName(param string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, param)
}

func article(kind domain.OperationKind) string {
	if kind == domain.KindExecutor || kind == domain.KindEditor {
		return "an"
	}
	return "a"
}
