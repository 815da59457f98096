package commands_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/janekdb/rug-cli/internal/adapters/telemetry"
	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/core/ports"
	"github.com/janekdb/rug-cli/internal/core/ports/mocks"
	"github.com/janekdb/rug-cli/internal/engine/commands"
	"github.com/janekdb/rug-cli/internal/engine/dispatcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var artifact = domain.Coordinate{Group: "acme", Artifact: "lib", Version: "1.2.0", Extension: domain.ExtensionZip, Location: "/work/lib", Local: true}

var units = &domain.LoadedUnits{Operations: []domain.Operation{
	{
		Kind:        domain.KindEditor,
		Name:        "AddReadme",
		Description: "Adds a README",
		Tags:        []string{"docs"},
		Parameters: []domain.Parameter{
			{Name: "title", Required: true, Pattern: `^[A-Z].*$`, Description: "Heading of the file"},
			{Name: "file-name", Default: "README.md"},
		},
		Command: []string{"render-readme"},
	},
	{Kind: domain.KindGenerator, Name: "NewService", Command: []string{"scaffold"}},
	{Kind: domain.KindReviewer, Name: "Lint"},
}}

func invocation(out io.Writer, args ...string) *domain.Invocation {
	return &domain.Invocation{
		Request:  domain.Request{Args: args, Options: map[string]string{}, Flags: domain.Flags{Dir: "/work/lib"}},
		Session:  &domain.Session{Root: artifact, Closure: domain.NewClosure(artifact)},
		Artifact: artifact,
		Units:    units,
		Settings: &domain.Settings{LocalRepository: "/home/dev/.atomist/repository"},
		Out:      out,
	}
}

func TestAll_RegistryOrder(t *testing.T) {
	registry, err := dispatcher.NewRegistry(commands.All(commands.Deps{})...)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"list", "describe", "edit", "generate", "execute", "review", "shell", "install", "clean"},
		registry.Names())
}

func TestList(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	repo.EXPECT().List(gomock.Any()).Return([]domain.Coordinate{
		{Group: "acme", Artifact: "lib", Version: "1.0.0"},
		{Group: "acme", Artifact: "lib", Version: "1.2.0"},
		{Group: "com.acme", Artifact: "util", Version: "0.1.0"},
	}, nil)

	var out bytes.Buffer
	require.NoError(t, commands.NewList(repo).Run(context.Background(), invocation(&out)))
	assert.Equal(t, "Listing local archives\n  acme:lib (1.0.0, 1.2.0)\n  com.acme:util (0.1.0)\n", out.String())
}

func TestList_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	repo.EXPECT().List(gomock.Any()).Return(nil, nil)

	var out bytes.Buffer
	require.NoError(t, commands.NewList(repo).Run(context.Background(), invocation(&out)))
	assert.Equal(t, "Listing local archives\n  No archives found in local repository\n", out.String())
}

func TestDescribe(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, commands.NewDescribe().Run(context.Background(), invocation(&out, "editor", "AddReadme")))
	assert.Equal(t, "editor AddReadme (acme:lib:1.2.0)\n"+
		"  Adds a README\n"+
		"Tags: docs\n"+
		"Parameters\n"+
		"  title (required, pattern ^[A-Z].*$)\n"+
		"    Heading of the file\n"+
		"  file-name (default README.md)\n", out.String())
}

func TestDescribe_Archive(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, commands.NewDescribe().Run(context.Background(), invocation(&out, "archive")))
	assert.Equal(t, "acme:lib:1.2.0\n"+
		"  Location: /work/lib\n"+
		"Editors\n  AddReadme Adds a README\n"+
		"Generators\n  NewService\n"+
		"Executors\n  None\n"+
		"Reviewers\n  Lint\n"+
		"Handlers\n  None\n", out.String())
}

func TestDescribe_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "no args", want: domain.ErrParse},
		{name: "bad kind", args: []string{"widget", "x"}, want: domain.ErrParse},
		{name: "no name", args: []string{"editor"}, want: domain.ErrParse},
		{name: "unknown", args: []string{"editors", "Missing"}, want: domain.ErrOperationNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := commands.NewDescribe().Run(context.Background(), invocation(io.Discard, tt.args...))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOperation_RunsDeclaredCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockProcessRunner(ctrl)

	var out bytes.Buffer
	inv := invocation(&out, "AddReadme", "title=Hello")
	inv.Env = domain.NewEnvironment("env-1", artifact, []domain.Coordinate{artifact}, nil, "", nil)

	runner.EXPECT().Run(gomock.Any(), "/work/lib", []string{"render-readme"}, []string{
		domain.EnvVarID + "=env-1",
		domain.EnvVarUnits + "=/work/lib",
		"RUG_PARAM_FILE_NAME=README.md",
		"RUG_PARAM_TITLE=Hello",
	}, &out, &out).Return(nil)

	require.NoError(t, commands.NewOperation(domain.KindEditor, runner).Run(context.Background(), inv))
	assert.Equal(t, "Running editor AddReadme of acme:lib:1.2.0\nSuccessfully ran editor AddReadme\n", out.String())
}

func TestOperation_Generator(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockProcessRunner(ctrl)
	dir := t.TempDir()
	project := filepath.Join(dir, "my-service")

	inv := invocation(io.Discard, "NewService", "my-service")
	inv.Request.Flags.Dir = dir
	runner.EXPECT().Run(gomock.Any(), project, []string{"scaffold"}, []string{"RUG_PARAM_PROJECT_NAME=my-service"}, gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, commands.NewOperation(domain.KindGenerator, runner).Run(context.Background(), inv))
	assert.DirExists(t, project)
}

func TestOperation_Errors(t *testing.T) {
	tests := []struct {
		name string
		kind domain.OperationKind
		args []string
		want error
	}{
		{name: "no name", kind: domain.KindEditor, want: domain.ErrParse},
		{name: "unknown", kind: domain.KindEditor, args: []string{"Nope"}, want: domain.ErrOperationNotFound},
		{name: "malformed parameter", kind: domain.KindEditor, args: []string{"AddReadme", "title"}, want: domain.ErrParse},
		{name: "missing required", kind: domain.KindEditor, args: []string{"AddReadme"}, want: domain.ErrMissingParameter},
		{name: "pattern mismatch", kind: domain.KindEditor, args: []string{"AddReadme", "title=lower"}, want: domain.ErrInvalidParameter},
		{name: "generator without project", kind: domain.KindGenerator, args: []string{"NewService", "a=b"}, want: domain.ErrParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := commands.NewOperation(tt.kind, nil).Run(context.Background(), invocation(io.Discard, tt.args...))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOperation_ProcessFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockProcessRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.ErrProcessFailed)

	err := commands.NewOperation(domain.KindEditor, runner).Run(context.Background(), invocation(io.Discard, "AddReadme", "title=Hi"))
	require.ErrorIs(t, err, domain.ErrInvocation)
	require.ErrorIs(t, err, domain.ErrProcessFailed)
	assert.Equal(t, "editor AddReadme failed", domain.RootCause(err).(*domain.Failure).Message())
}

func TestOperation_WithoutCommand(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, commands.NewOperation(domain.KindReviewer, nil).Run(context.Background(), invocation(&out, "Lint")))
	assert.Equal(t, "Running reviewer Lint of acme:lib:1.2.0\n  No command declared\n", out.String())
}

func TestParameterEnv(t *testing.T) {
	assert.Equal(t,
		[]string{"RUG_PARAM_A_B_C=1", "RUG_PARAM_PROJECT_NAME=x"},
		commands.ParameterEnv(map[string]string{"project_name": "x", "a.b-c": "1"}))
}

func TestShell_Banner(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, commands.NewShell().Run(context.Background(), invocation(&out)))
	assert.Contains(t, out.String(), "Shell for acme:lib:1.2.0 (3 operations, 0 dependencies)\n")
}

func TestInstall(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	reader := mocks.NewMockArchiveReader(ctrl)

	tree := domain.NewSourceTree(domain.SourceFile{Path: domain.ManifestPath, Content: []byte("group: acme")})
	reader.EXPECT().Manifest("/work/lib").Return(&domain.Descriptor{Coordinate: artifact, Requires: "[1.0.0,2.0.0)"}, nil)
	repo.EXPECT().Install(gomock.Any(), gomock.Any(), tree).
		DoAndReturn(func(ctx context.Context, desc *domain.Descriptor, _ domain.SourceTree) error {
			assert.Equal(t, "2.0.0", desc.Coordinate.Version)
			assert.Equal(t, "[1.0.0,2.0.0)", desc.Requires)
			ports.TransferListenerFrom(ctx).OnTransfer(domain.TransferEvent{
				Direction: domain.Upload, State: domain.TransferSucceeded, Resource: "acme/lib/2.0.0/lib-2.0.0.zip", Repository: "local",
			})
			return nil
		})

	var out bytes.Buffer
	inv := invocation(&out)
	inv.Source = tree
	inv.Request.Options[dispatcher.ArchiveVersionOption] = "2.0.0"

	require.NoError(t, commands.NewInstall(repo, reader, telemetry.NewNoop()).Run(context.Background(), inv))
	assert.Equal(t, "Successfully installed acme:lib:2.0.0 into /home/dev/.atomist/repository\n", out.String())
}

func TestInstall_Failures(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	reader := mocks.NewMockArchiveReader(ctrl)
	cmd := commands.NewInstall(repo, reader, telemetry.NewNoop())

	published := invocation(io.Discard)
	published.Artifact.Local = false
	assert.ErrorIs(t, cmd.Run(context.Background(), published), domain.ErrNoArtifact)

	reader.EXPECT().Manifest("/work/lib").Return(&domain.Descriptor{Coordinate: artifact}, nil)
	repo.EXPECT().Install(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.Join(domain.ErrInstallFailed))
	err := cmd.Run(context.Background(), invocation(io.Discard))
	assert.ErrorIs(t, err, domain.ErrInvocation)
	assert.ErrorIs(t, err, domain.ErrInstallFailed)
}

func TestClean(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, filepath.FromSlash(domain.CacheDir))
	require.NoError(t, os.MkdirAll(target, domain.DirPerm))

	inv := invocation(&bytes.Buffer{})
	inv.Request.Flags.Dir = dir

	caches := mocks.NewMockCacheFactory(gomock.NewController(t))
	caches.EXPECT().Evict(dir).Times(2)
	clean := commands.NewClean(caches)

	require.NoError(t, clean.Run(context.Background(), inv))
	assert.NoDirExists(t, filepath.Join(dir, filepath.FromSlash(domain.TargetDir)))
	assert.DirExists(t, filepath.Join(dir, domain.MetadataDir))
	assert.Equal(t, "Removed .atomist/target\n", inv.Out.(*bytes.Buffer).String())

	var again bytes.Buffer
	inv.Out = &again
	require.NoError(t, clean.Run(context.Background(), inv))
	assert.Equal(t, "Nothing to clean\n", again.String())
}
