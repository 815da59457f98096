package dispatcher

import (
	"cmp"
	"slices"

	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/core/ports"
	"go.trai.ch/zerr"
)

// Registry maps command names to commands, kept in display order.
type Registry struct {
	commands []ports.Command
	byName   map[string]ports.Command
}

// NewRegistry creates a Registry. Commands are ordered by their Order, then by name.
func NewRegistry(commands ...ports.Command) (*Registry, error) {
	r := &Registry{byName: make(map[string]ports.Command, len(commands))}
	for _, c := range commands {
		name := c.Descriptor().Name
		if _, dup := r.byName[name]; dup {
			return nil, zerr.With(zerr.Wrap(domain.ErrDuplicateCommand, "failed to build command registry"), "command", name)
		}
		r.byName[name] = c
		r.commands = append(r.commands, c)
	}
	slices.SortStableFunc(r.commands, func(a, b ports.Command) int {
		da, db := a.Descriptor(), b.Descriptor()
		return cmp.Or(cmp.Compare(da.Order, db.Order), cmp.Compare(da.Name, db.Name))
	})
	return r, nil
}

// Lookup returns the command with the given name.
func (r *Registry) Lookup(name string) (ports.Command, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// Commands returns the registered commands in display order.
func (r *Registry) Commands() []ports.Command {
	return slices.Clone(r.commands)
}

// Names returns the command names in display order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for _, c := range r.commands {
		names = append(names, c.Descriptor().Name)
	}
	return names
}
