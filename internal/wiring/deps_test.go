package wiring_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/janekdb/rug-cli/internal/app"
	"github.com/janekdb/rug-cli/internal/core/domain"
	_ "github.com/janekdb/rug-cli/internal/wiring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGraftDependencies ensures that the dependency injection graph is valid
// at compile/test time. It checks that every node declaring a dependency
// actually uses it, and every used dependency is declared.
func TestGraftDependencies(t *testing.T) {
	// graft.AssertDepsValid infers the dependency ID from the package name of the
	// interface used in Dep[T]. Every node here resolves interfaces from the shared
	// ports package, so the inferred IDs never match.
	t.Skip("Skipping Graft validation due to static analysis limitation with shared ports package")
	graft.AssertDepsValid(t, "../../internal")
}

func TestGraph_BuildsComponents(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(domain.SettingsEnvVar, filepath.Join(home, "cli.yml"))

	components, _, err := graft.ExecuteFor[*app.Components](context.Background(), graft.WithCache(graft.NewMemoryCache()))
	require.NoError(t, err)
	require.NotNil(t, components.App)

	assert.Equal(t, filepath.Join(home, domain.MetadataDir, "repository"), components.Settings.LocalRepository)

	var names []string
	for _, c := range components.App.Commands() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"list", "describe", "edit", "generate", "execute", "review", "shell", "install", "clean"}, names)
}
