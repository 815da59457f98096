package domain

import (
	"os"
	"strings"
	"sync"
)

// Environment variable names exported to processes started inside an environment.
const (
	EnvVarID    = "RUG_ENV_ID"
	EnvVarUnits = "RUG_UNITS"
	EnvVarParam = "RUG_PARAM_"
)

// Environment is an isolated runtime scope owned by one invocation.
// Its visible units are exactly the closure, the root and the extra locations.
type Environment struct {
	ID      string
	Root    Coordinate
	Units   []Coordinate
	Extra   []string
	Scratch string

	closeOnce sync.Once
	closeErr  error
	release   func() error
}

// NewEnvironment creates an Environment. release is called once by Close.
func NewEnvironment(id string, root Coordinate, units []Coordinate, extra []string, scratch string, release func() error) *Environment {
	return &Environment{
		ID:      id,
		Root:    root,
		Units:   units,
		Extra:   extra,
		Scratch: scratch,
		release: release,
	}
}

// Lookup returns the visible unit with the given identity.
func (e *Environment) Lookup(id Identity) (Coordinate, bool) {
	for _, u := range e.Units {
		if u.Identity() == id {
			return u, true
		}
	}
	return Coordinate{}, false
}

// Locations returns the unit locations followed by the extra locations.
func (e *Environment) Locations() []string {
	out := make([]string, 0, len(e.Units)+len(e.Extra))
	for _, u := range e.Units {
		out = append(out, u.Location)
	}
	return append(out, e.Extra...)
}

// Vars returns the variables describing this environment to a child process.
func (e *Environment) Vars() []string {
	vars := []string{
		EnvVarID + "=" + e.ID,
		EnvVarUnits + "=" + strings.Join(e.Locations(), string(os.PathListSeparator)),
	}
	if e.Scratch != "" {
		vars = append(vars, "TMPDIR="+e.Scratch)
	}
	return vars
}

// Close releases the environment. It is safe to call more than once.
func (e *Environment) Close() error {
	e.closeOnce.Do(func() {
		if e.release != nil {
			e.closeErr = e.release()
		}
	})
	return e.closeErr
}
