// Package shell starts external processes for operations and shell escapes.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/janekdb/rug-cli/internal/core/domain"
	"go.trai.ch/zerr"
)

// baseVars are the only variables inherited from the calling process.
var baseVars = []string{"PATH", "HOME", "USER", "LOGNAME", "SHELL", "TERM", "LANG", "LC_ALL", "TZ"}

// Runner implements ports.ProcessRunner using os/exec.
type Runner struct {
	environ func() []string
}

// NewRunner creates a Runner inheriting from os.Environ.
func NewRunner() *Runner {
	return &Runner{environ: os.Environ}
}

// Run executes argv in dir.
// The environment is built with the following priority (low to high):
// 1. the allow-listed variables of the calling process
// 2. env, where a PATH entry is prepended to the inherited PATH.
func (r *Runner) Run(ctx context.Context, dir string, argv, env []string, stdout, stderr io.Writer) error {
	if len(argv) == 0 {
		return nil
	}
	name := argv[0]

	cmdEnv := resolveEnvironment(r.environ(), env)

	executable := name
	if !strings.ContainsRune(name, filepath.Separator) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, argv[1:]...) //nolint:gosec // user provided command
	// exec.CommandContext sets Args[0] to the executable path; keep the name as invoked.
	cmd.Args[0] = name
	cmd.Dir = dir
	cmd.Env = cmdEnv
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		wrapped := zerr.With(zerr.Wrap(domain.ErrProcessFailed, err.Error()), "command", name)
		return zerr.With(wrapped, "exit_code", exitCode)
	}
	return nil
}

// resolveEnvironment merges env over the allow-listed system variables.
// The result is sorted so children see a stable environment.
func resolveEnvironment(sysEnv, env []string) []string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if ok && slices.Contains(baseVars, k) {
			envMap[k] = v
		}
	}

	for _, entry := range env {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if k == "PATH" {
			if sysPath := envMap["PATH"]; sysPath != "" {
				v = v + string(os.PathListSeparator) + sysPath
			}
		}
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// lookPath searches for an executable in the directories named by the PATH of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if p, ok := strings.CutPrefix(e, "PATH="); ok {
			path = p
			break
		}
	}
	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
