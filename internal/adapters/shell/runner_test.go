package shell_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/janekdb/rug-cli/internal/adapters/shell"
	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, dir, name, body string) {
	t.Helper()
	//nolint:gosec // Test requires executable file
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"+body), 0o700))
}

func TestRunner_Run(t *testing.T) {
	binDir := t.TempDir()
	workDir := t.TempDir()
	writeScript(t, binDir, "rug-tool", "echo \"$RUG_ENV_ID $(pwd)\"\necho oops >&2\n")

	runner := shell.NewRunnerWithEnviron([]string{"PATH=/usr/bin:/bin", "SECRET=leak"})
	var stdout, stderr bytes.Buffer
	err := runner.Run(context.Background(), workDir, []string{"rug-tool"},
		[]string{"PATH=" + binDir, domain.EnvVarID + "=env-1"}, &stdout, &stderr)
	require.NoError(t, err)

	resolved, err := filepath.EvalSymlinks(workDir)
	require.NoError(t, err)
	assert.Equal(t, "env-1 "+resolved+"\n", stdout.String())
	assert.Equal(t, "oops\n", stderr.String())
}

func TestRunner_Run_Failure(t *testing.T) {
	binDir := t.TempDir()
	writeScript(t, binDir, "fails", "exit 3\n")

	runner := shell.NewRunnerWithEnviron([]string{"PATH=" + binDir})
	err := runner.Run(context.Background(), "", []string{"fails"}, nil, &bytes.Buffer{}, &bytes.Buffer{})
	require.ErrorIs(t, err, domain.ErrProcessFailed)
	assert.Contains(t, domain.Trace(err), "exit_code=3")
}

func TestRunner_Run_NotFound(t *testing.T) {
	runner := shell.NewRunnerWithEnviron([]string{"PATH=" + t.TempDir()})
	err := runner.Run(context.Background(), "", []string{"no-such-binary"}, nil, &bytes.Buffer{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, domain.ErrProcessFailed)
}

func TestRunner_Run_Empty(t *testing.T) {
	runner := shell.NewRunner()
	assert.NoError(t, runner.Run(context.Background(), "", nil, nil, nil, nil))
}

func TestResolveEnvironment(t *testing.T) {
	sys := []string{"PATH=/usr/bin", "HOME=/home/u", "AWS_SECRET=x", "malformed"}
	env := []string{"PATH=/opt/units/bin", "RUG_PARAM_NAME=demo", "HOME=/scratch"}

	got := shell.ResolveEnvironment(sys, env)
	assert.Equal(t, []string{
		"HOME=/scratch",
		"PATH=/opt/units/bin" + string(os.PathListSeparator) + "/usr/bin",
		"RUG_PARAM_NAME=demo",
	}, got)
}

func TestLookPath(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "tool", "true\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plain"), []byte("x"), 0o600))

	p, err := shell.LookPath("tool", []string{"PATH=" + strings.Join([]string{t.TempDir(), dir}, string(os.PathListSeparator))})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tool"), p)

	_, err = shell.LookPath("plain", []string{"PATH=" + dir})
	assert.Error(t, err)

	_, err = shell.LookPath("tool", nil)
	assert.Error(t, err)
}
