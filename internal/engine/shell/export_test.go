package shell

// SetEnv replaces the variable lookup used when tokenizing lines.
func (l *Loop) SetEnv(env func(string) string) {
	l.env = env
}
