package shell

// ResolveEnvironment exposes resolveEnvironment for testing.
func ResolveEnvironment(sysEnv, env []string) []string {
	return resolveEnvironment(sysEnv, env)
}

// LookPath exposes lookPath for testing.
func LookPath(file string, env []string) (string, error) {
	return lookPath(file, env)
}

// NewRunnerWithEnviron creates a Runner with a fixed calling environment.
func NewRunnerWithEnviron(environ []string) *Runner {
	return &Runner{environ: func() []string { return environ }}
}
