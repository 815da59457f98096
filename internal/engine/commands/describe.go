package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/janekdb/rug-cli/internal/core/domain"
)

// Describe prints the operations of an artifact.
type Describe struct{}

// NewDescribe creates the describe command.
func NewDescribe() *Describe {
	return &Describe{}
}

// Descriptor returns the command metadata.
func (c *Describe) Descriptor() domain.CommandDescriptor {
	return domain.CommandDescriptor{
		Name:             "describe",
		Usage:            "describe [options] archive | (editor|generator|executor|reviewer) <name>",
		Description:      "Print details about an archive or one of its operations",
		Options:          []domain.Option{archiveVersion},
		Order:            20,
		RequiresArtifact: true,
		QualifiedArg:     2,
	}
}

// Run describes the archive or the named operation.
func (c *Describe) Run(_ context.Context, inv *domain.Invocation) error {
	args := inv.Request.Args
	if len(args) == 0 {
		return domain.Fail(domain.KindParse, "describe needs archive or an operation kind and name", nil)
	}

	if args[0] == "archive" {
		describeArchive(inv.Out, inv.Artifact, inv.Units)
		return nil
	}

	kind, ok := domain.ParseOperationKind(args[0])
	if !ok || kind == domain.KindHandler {
		return domain.Fail(domain.KindParse, fmt.Sprintf("cannot describe %q", args[0]), nil)
	}
	if len(args) < 2 {
		return domain.Fail(domain.KindParse, fmt.Sprintf("describe %s needs a name", kind), nil)
	}

	op, ok := inv.Units.Find(kind, args[1])
	if !ok {
		return notFound(kind, args[1], inv.Artifact)
	}
	describeOperation(inv.Out, inv.Artifact, op)
	return nil
}

func describeArchive(w io.Writer, artifact domain.Coordinate, units *domain.LoadedUnits) {
	s := newStyles(w)
	_, _ = fmt.Fprintln(w, s.heading.Render(artifact.String()))
	_, _ = fmt.Fprintf(w, "  Location: %s\n", artifact.Location)

	for _, kind := range domain.OperationKinds {
		ops := units.ByKind(kind)
		title := strings.ToUpper(kind.Plural()[:1]) + kind.Plural()[1:]
		_, _ = fmt.Fprintln(w, s.heading.Render(title))
		if len(ops) == 0 {
			_, _ = fmt.Fprintln(w, s.muted.Render("  None"))
			continue
		}
		for _, op := range ops {
			line := "  " + s.name.Render(op.Name)
			if op.Description != "" {
				line += " " + op.Description
			}
			_, _ = fmt.Fprintln(w, line)
		}
	}
}

func describeOperation(w io.Writer, artifact domain.Coordinate, op domain.Operation) {
	s := newStyles(w)
	_, _ = fmt.Fprintf(w, "%s %s\n", s.heading.Render(string(op.Kind)+" "+op.Name), s.muted.Render("("+artifact.String()+")"))
	if op.Description != "" {
		_, _ = fmt.Fprintf(w, "  %s\n", op.Description)
	}
	if len(op.Tags) > 0 {
		_, _ = fmt.Fprintf(w, "Tags: %s\n", strings.Join(op.Tags, ", "))
	}

	_, _ = fmt.Fprintln(w, s.heading.Render("Parameters"))
	if len(op.Parameters) == 0 {
		_, _ = fmt.Fprintln(w, s.muted.Render("  None"))
		return
	}
	for _, p := range op.Parameters {
		var attrs []string
		if p.Required {
			attrs = append(attrs, "required")
		}
		if p.Pattern != "" {
			attrs = append(attrs, "pattern "+p.Pattern)
		}
		if p.Default != "" {
			attrs = append(attrs, "default "+p.Default)
		}
		line := "  " + s.name.Render(p.Name)
		if len(attrs) > 0 {
			line += " (" + strings.Join(attrs, ", ") + ")"
		}
		_, _ = fmt.Fprintln(w, line)
		if p.Description != "" {
			_, _ = fmt.Fprintf(w, "    %s\n", p.Description)
		}
	}
}

func notFound(kind domain.OperationKind, name string, artifact domain.Coordinate) error {
	return domain.Fail(domain.KindInvocation,
		fmt.Sprintf("%s %s not found in %s", kind, name, artifact),
		domain.ErrOperationNotFound)
}
