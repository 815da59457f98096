package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/core/ports"
)

// List prints the artifacts of the local repository.
type List struct {
	repo ports.Repository
}

// NewList creates the list command.
func NewList(repo ports.Repository) *List {
	return &List{repo: repo}
}

// Descriptor returns the command metadata.
func (c *List) Descriptor() domain.CommandDescriptor {
	return domain.CommandDescriptor{
		Name:        "list",
		Usage:       "list",
		Description: "List locally installed archives",
		Order:       10,
	}
}

// Run prints one line per identity with its versions in ascending order.
func (c *List) Run(ctx context.Context, inv *domain.Invocation) error {
	coords, err := c.repo.List(ctx)
	if err != nil {
		return domain.Fail(domain.KindInvocation, "failed to list local archives", err)
	}

	s := newStyles(inv.Out)
	_, _ = fmt.Fprintln(inv.Out, s.heading.Render("Listing local archives"))
	if len(coords) == 0 {
		_, _ = fmt.Fprintln(inv.Out, s.muted.Render("  No archives found in local repository"))
		return nil
	}

	var order []domain.Identity
	versions := make(map[domain.Identity][]string)
	for _, co := range coords {
		id := co.Identity()
		if _, seen := versions[id]; !seen {
			order = append(order, id)
		}
		versions[id] = append(versions[id], co.Version)
	}
	for _, id := range order {
		_, _ = fmt.Fprintf(inv.Out, "  %s (%s)\n", s.name.Render(id.String()), strings.Join(versions[id], ", "))
	}
	return nil
}
