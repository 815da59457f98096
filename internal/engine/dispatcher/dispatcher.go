// Package dispatcher runs one command invocation through its stages and reports the outcome.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/core/ports"
	"go.trai.ch/zerr"
)

// ArchiveVersionOption selects the version of an artifact named by a qualified operation.
const ArchiveVersionOption = "archive-version"

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// SessionResolver resolves the root artifact of an invocation and its closure.
type SessionResolver interface {
	Resolve(ctx context.Context, c domain.Coordinate, verbose bool) (*domain.Session, error)
	ResolveLocal(ctx context.Context, local *domain.Descriptor, verbose bool) (*domain.Session, error)
}

// SourceCompiler compiles the source tree of an artifact.
type SourceCompiler interface {
	Compile(ctx context.Context, artifact domain.Coordinate, tree domain.SourceTree) (domain.SourceTree, error)
}

// Components are the collaborators of a Dispatcher.
type Components struct {
	Registry     *Registry
	Resolver     SessionResolver
	Compiler     SourceCompiler
	Reader       ports.ArchiveReader
	Environments ports.EnvironmentBuilder
	Loader       ports.UnitLoader
	Catalog      ports.Catalog
	Telemetry    ports.Telemetry
	Logger       ports.Logger
	Settings     *domain.Settings
}

// Outcome is the result of one dispatch.
type Outcome struct {
	ExitCode int
	// Session is the session the invocation ran against, nil for commands without an artifact.
	Session *domain.Session
	Command domain.CommandDescriptor
	Err     error
}

// Dispatcher executes requests against the command registry.
type Dispatcher struct {
	Components
	stdout io.Writer
	stderr io.Writer
	styles styles
}

type styles struct {
	err   lipgloss.Style
	muted lipgloss.Style
}

// New creates a Dispatcher writing command output to stdout and failure reports to stderr.
func New(c Components, stdout, stderr io.Writer) *Dispatcher {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	if c.Settings == nil {
		c.Settings = domain.DefaultSettings()
	}
	d := &Dispatcher{Components: c}
	d.SetOutput(stdout, stderr)
	return d
}

// SetOutput replaces the command output and failure report writers. Nil keeps the current writer.
func (d *Dispatcher) SetOutput(stdout, stderr io.Writer) {
	if stdout != nil {
		d.stdout = stdout
	}
	if stderr != nil {
		d.stderr = stderr
	}
	r := lipgloss.NewRenderer(d.stderr)
	d.styles = styles{
		err:   r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		muted: r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// DispatchLine parses argv and dispatches it.
func (d *Dispatcher) DispatchLine(ctx context.Context, argv []string, flags domain.Flags, session *domain.Session) Outcome {
	req, err := d.Registry.Parse(argv, flags)
	if err != nil {
		return d.report(req.Flags, time.Now(), Outcome{ExitCode: ExitFailure, Err: err})
	}
	return d.Dispatch(ctx, req, session)
}

// Dispatch runs req and reports its outcome. A non-nil session is reused instead of resolving the artifact again.
func (d *Dispatcher) Dispatch(ctx context.Context, req domain.Request, session *domain.Session) Outcome {
	start := time.Now()
	out := d.execute(ctx, req, session)
	if out.Err != nil {
		out.ExitCode = ExitFailure
	}
	return d.report(req.Flags, start, out)
}

func (d *Dispatcher) execute(ctx context.Context, req domain.Request, session *domain.Session) Outcome {
	cmd, ok := d.Registry.Lookup(req.Command)
	if !ok {
		return Outcome{Err: unknownCommand(req.Command)}
	}
	desc := cmd.Descriptor()
	out := Outcome{Command: desc}

	if req.BoolOption(HelpOption) {
		_, _ = io.WriteString(d.stdout, Usage(desc))
		return out
	}

	inv := &domain.Invocation{
		Request:  req,
		Session:  session,
		Settings: d.Settings,
		Out:      d.stdout,
	}
	if !desc.RequiresArtifact {
		out.Err = invoke(ctx, cmd, inv)
		return out
	}

	session, err := d.session(ctx, desc, &inv.Request, session)
	if err != nil {
		out.Err = err
		return out
	}
	out.Session = session
	inv.Session = session
	inv.Artifact = session.Artifact()

	source, err := d.Reader.Read(ctx, inv.Artifact)
	if err != nil {
		out.Err = domain.Fail(domain.KindLoad, "failed to read "+inv.Artifact.String(), err)
		return out
	}
	inv.Source, err = d.Compiler.Compile(ctx, inv.Artifact, source)
	if err != nil {
		out.Err = err
		return out
	}

	build := desc
	build.ExtraLocations = append(append([]string(nil), desc.ExtraLocations...), d.Settings.Extensions...)
	env, err := d.Environments.Build(ctx, inv.Artifact, session.Closure, build)
	if err != nil {
		out.Err = domain.Fail(domain.KindLoad, "failed to prepare runtime for "+inv.Artifact.String(), err)
		return out
	}
	defer func() {
		if err := env.Close(); err != nil {
			d.Logger.Warn("failed to release environment: " + err.Error())
		}
	}()
	inv.Env = env

	inv.Units, err = d.load(ctx, env, inv.Artifact, inv.Source, req.Flags.Verbose)
	if err != nil {
		out.Err = err
		return out
	}
	if err := d.Catalog.Publish(inv.Units); err != nil {
		d.Logger.Warn("failed to update operations catalog: " + err.Error())
	}

	out.Err = invoke(ctx, cmd, inv)
	return out
}

// session returns the session an artifact command runs against.
// A qualified operation argument names its own artifact and is rewritten to the bare operation name.
func (d *Dispatcher) session(
	ctx context.Context,
	desc domain.CommandDescriptor,
	req *domain.Request,
	session *domain.Session,
) (*domain.Session, error) {
	version := req.Option(ArchiveVersionOption)
	if c, name, ok := qualified(desc, req.Args); ok {
		if version != "" {
			c = c.WithVersion(version)
		}
		req.Args = append([]string(nil), req.Args...)
		req.Args[desc.QualifiedArg-1] = name
		return d.Resolver.Resolve(ctx, c, req.Flags.Verbose)
	}
	if desc.ArchiveArg > 0 && len(req.Args) >= desc.ArchiveArg {
		i := desc.ArchiveArg - 1
		c, err := domain.ParseCoordinate(req.Args[i])
		if err != nil {
			return nil, domain.Fail(domain.KindParse, fmt.Sprintf("cannot use %q as an archive", req.Args[i]), err)
		}
		if version != "" {
			c = c.WithVersion(version)
		}
		req.Args = append(append([]string(nil), req.Args[:i]...), req.Args[i+1:]...)
		return d.Resolver.Resolve(ctx, c, req.Flags.Verbose)
	}
	if version != "" && (desc.QualifiedArg > 0 || desc.ArchiveArg > 0) {
		return nil, domain.Fail(domain.KindParse,
			fmt.Sprintf("--%s only applies to a published archive, name one as group:artifact", ArchiveVersionOption), nil)
	}
	if session != nil {
		return session, nil
	}

	local, err := d.Reader.Manifest(req.Flags.Dir)
	if errors.Is(err, domain.ErrManifestNotFound) {
		return nil, domain.Fail(domain.KindResolution, "", zerr.With(domain.ErrNoArtifact, "dir", req.Flags.Dir))
	}
	if err != nil {
		return nil, domain.Fail(domain.KindLoad, "failed to read local manifest", err)
	}
	return d.Resolver.ResolveLocal(ctx, local, req.Flags.Verbose)
}

// qualified splits a group:artifact:name operation argument.
func qualified(desc domain.CommandDescriptor, args []string) (domain.Coordinate, string, bool) {
	if desc.QualifiedArg <= 0 || len(args) < desc.QualifiedArg {
		return domain.Coordinate{}, "", false
	}
	parts := strings.Split(args[desc.QualifiedArg-1], ":")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return domain.Coordinate{}, "", false
	}
	return domain.Coordinate{
		Group:     parts[0],
		Artifact:  parts[1],
		Version:   domain.VersionLatest,
		Extension: domain.ExtensionZip,
	}, parts[2], true
}

func (d *Dispatcher) load(
	ctx context.Context,
	env *domain.Environment,
	artifact domain.Coordinate,
	source domain.SourceTree,
	verbose bool,
) (*domain.LoadedUnits, error) {
	name := fmt.Sprintf("Loading %s into runtime", artifact)
	ctx, vertex := d.Telemetry.Record(ctx, name)
	if verbose {
		_, _ = fmt.Fprintln(vertex.Stdout(), sourceTree(artifact, source))
	}

	units, err := d.Loader.Load(ctx, env, artifact, source)
	if err != nil {
		err = domain.WrapLoader(err)
		vertex.Complete(err)
		return nil, err
	}
	vertex.Complete(nil)
	return units, nil
}

// sourceTree renders the artifact sources, leaving out compiler output.
func sourceTree(artifact domain.Coordinate, source domain.SourceTree) string {
	t := tree.Root(artifact.String())
	for _, p := range source.Paths() {
		if strings.HasPrefix(p, domain.TargetDir+"/") {
			continue
		}
		t.Child(p)
	}
	return t.String()
}

// invoke runs the command body. Failures and panics escaping it are wrapped in an invocation layer.
func invoke(ctx context.Context, cmd ports.Command, inv *domain.Invocation) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = domain.WrapInvocation(domain.Fail(domain.KindInvocation, fmt.Sprintf("command panicked: %v", r), nil))
		}
	}()
	return domain.WrapInvocation(cmd.Run(ctx, inv))
}

func unknownCommand(name string) error {
	return domain.Fail(domain.KindParse, fmt.Sprintf("unknown command %q", name), zerr.With(domain.ErrUnknownCommand, "command", name))
}
