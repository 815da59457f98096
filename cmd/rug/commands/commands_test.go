package commands_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/janekdb/rug-cli/cmd/rug/commands"
	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/engine/dispatcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeApp struct {
	code int
	reqs []domain.Request
}

func (a *fakeApp) Commands() []domain.CommandDescriptor {
	return []domain.CommandDescriptor{
		{Name: "list", Usage: "list", Description: "List locally installed archives"},
		{
			Name:        "generate",
			Usage:       "generate [options] <name> <project_name> [param=value...]",
			Description: "Run a generator",
			Options: []domain.Option{
				{Long: dispatcher.ArchiveVersionOption, Short: "a", Usage: "Version of the artifact to use"},
				{Long: "overwrite", Short: "o", Usage: "Overwrite files", Kind: domain.OptionBool},
			},
		},
	}
}

func (a *fakeApp) Run(_ context.Context, req domain.Request) int {
	a.reqs = append(a.reqs, req)
	return a.code
}

func execute(t *testing.T, a *fakeApp, args ...string) (int, string, error) {
	t.Helper()
	cli := commands.New(a)
	var out bytes.Buffer
	cli.SetOutput(&out, &out)
	cli.SetArgs(args)
	code, err := cli.Execute(context.Background())
	return code, out.String(), err
}

func TestExecute_BuildsRequest(t *testing.T) {
	a := &fakeApp{}

	code, _, err := execute(t, a,
		"-V", "generate", "-t", "--dir", "/work", "-a", "1.2.0", "-o",
		"spring-boot", "demo", "group_id=com.example")
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	require.Len(t, a.reqs, 1)
	assert.Equal(t, domain.Request{
		Command: "generate",
		Args:    []string{"spring-boot", "demo", "group_id=com.example"},
		Options: map[string]string{dispatcher.ArchiveVersionOption: "1.2.0", "overwrite": "true"},
		Flags:   domain.Flags{Verbose: true, Timer: true, Dir: "/work"},
	}, a.reqs[0])
}

func TestExecute_DefaultsAndExitCode(t *testing.T) {
	a := &fakeApp{code: 1}

	code, _, err := execute(t, a, "list", "-X")
	require.NoError(t, err)
	assert.Equal(t, 1, code)

	require.Len(t, a.reqs, 1)
	assert.Equal(t, domain.Flags{Trace: true, Dir: "."}, a.reqs[0].Flags)
	assert.Empty(t, a.reqs[0].Options)
}

func TestExecute_CommandHelp(t *testing.T) {
	for _, flag := range []string{"-h", "-?", "--help"} {
		t.Run(flag, func(t *testing.T) {
			a := &fakeApp{}

			code, _, err := execute(t, a, "generate", flag)
			require.NoError(t, err)
			assert.Equal(t, 0, code)

			require.Len(t, a.reqs, 1)
			assert.Equal(t, "true", a.reqs[0].Options[dispatcher.HelpOption])
		})
	}
}

func TestExecute_DoubleDashKeepsArguments(t *testing.T) {
	a := &fakeApp{}

	_, _, err := execute(t, a, "generate", "--", "-?", "x")
	require.NoError(t, err)

	require.Len(t, a.reqs, 1)
	assert.Equal(t, []string{"-?", "x"}, a.reqs[0].Args)
}

func TestExecute_UnknownFlag(t *testing.T) {
	a := &fakeApp{}

	code, _, err := execute(t, a, "list", "--bogus")
	require.Error(t, err)
	assert.Equal(t, 1, code)
	assert.Empty(t, a.reqs)
}

func TestRoot_Help(t *testing.T) {
	a := &fakeApp{}

	code, out, err := execute(t, a)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "generate")
	assert.Contains(t, out, "--verbose")
	assert.Empty(t, a.reqs)
}

func TestVersion(t *testing.T) {
	code, out, err := execute(t, &fakeApp{}, "version")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "rug version dev (commit none, built unknown)")
}

func TestHelpSubcommand(t *testing.T) {
	a := &fakeApp{}

	code, _, err := execute(t, a, "help", "generate")
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	require.Len(t, a.reqs, 1)
	assert.Equal(t, "generate", a.reqs[0].Command)
	assert.Equal(t, "true", a.reqs[0].Options[dispatcher.HelpOption])
	assert.Equal(t, ".", a.reqs[0].Flags.Dir)
}
