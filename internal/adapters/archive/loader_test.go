package archive_test

import (
	"context"
	"testing"

	"github.com/janekdb/rug-cli/internal/adapters/archive"
	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compiledTree(extra ...domain.SourceFile) domain.SourceTree {
	base := []domain.SourceFile{
		{Path: domain.ManifestPath, Content: []byte(manifest)},
		{Path: ".atomist/target/editors/AddReadme.json", Content: []byte(`{"kind":"editor","name":"AddReadme","source":".atomist/AddReadme.rug","parameters":[{"name":"owner"},{"name":"title","default":"T"}]}`)},
		{Path: ".atomist/target/generators/NewApp.json", Content: []byte(`{"kind":"generator","name":"NewApp","source":".atomist/NewApp.rug"}`)},
		{Path: ".atomist/target/handlers/OnPush.json", Content: []byte(`{"kind":"handler","name":"OnPush","source":".atomist/OnPush.rug"}`)},
		{Path: ".atomist/target/defaults/editor.json", Content: []byte(`{"OWNER":"team","title":"ignored"}`)},
	}
	return domain.NewSourceTree(append(base, extra...)...)
}

func TestLoader_Load(t *testing.T) {
	artifact := domain.Coordinate{Group: "acme", Artifact: "lib", Version: "1.2.0"}

	units, err := archive.NewLoader("1.4.0").Load(context.Background(), nil, artifact, compiledTree())
	require.NoError(t, err)

	require.Len(t, units.Operations, 2)
	require.Len(t, units.Handlers, 1)

	editor, ok := units.Find(domain.KindEditor, "AddReadme")
	require.True(t, ok)
	assert.Equal(t, "team", editor.Parameters[0].Default)
	assert.Equal(t, "T", editor.Parameters[1].Default)

	_, ok = units.Find(domain.KindGenerator, "NewApp")
	assert.True(t, ok)
}

func TestLoader_Failures(t *testing.T) {
	artifact := domain.Coordinate{Group: "acme", Artifact: "lib", Version: "1.2.0"}

	tests := []struct {
		name    string
		tree    domain.SourceTree
		runtime string
		cause   error
	}{
		{
			name:    "missing manifest",
			tree:    compiledTree().Without(domain.ManifestPath),
			runtime: "1.4.0",
			cause:   domain.ErrManifestNotFound,
		},
		{
			name:    "undecodable operation",
			tree:    compiledTree(domain.SourceFile{Path: ".atomist/target/editors/Bad.json", Content: []byte("{")}),
			runtime: "1.4.0",
			cause:   domain.ErrMalformedArchive,
		},
		{
			name:    "misplaced operation",
			tree:    compiledTree(domain.SourceFile{Path: ".atomist/target/editors/Gen.json", Content: []byte(`{"kind":"generator","name":"Gen"}`)}),
			runtime: "1.4.0",
			cause:   domain.ErrMalformedArchive,
		},
		{
			name:    "incompatible runtime",
			tree:    compiledTree(),
			runtime: "2.1.0",
			cause:   domain.ErrIncompatibleRuntime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := archive.NewLoader(tt.runtime).Load(context.Background(), nil, artifact, tt.tree)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrLoad)
			assert.ErrorIs(t, err, tt.cause)

			var failure *domain.Failure
			require.ErrorAs(t, err, &failure)
			assert.Equal(t, "failed to load archive", failure.Message())
		})
	}
}

func TestLoader_DuplicateName(t *testing.T) {
	artifact := domain.Coordinate{Group: "acme", Artifact: "lib", Version: "1.2.0"}
	tree := compiledTree(domain.SourceFile{
		Path:    ".atomist/target/editors/sub/AddReadme.json",
		Content: []byte(`{"kind":"editor","name":"AddReadme"}`),
	})

	_, err := archive.NewLoader("1.4.0").Load(context.Background(), nil, artifact, tree)
	assert.ErrorIs(t, err, domain.ErrLoad)
}

func TestLoader_ArtifactMustBeVisible(t *testing.T) {
	artifact := domain.Coordinate{Group: "acme", Artifact: "lib", Version: "1.2.0"}
	other := domain.Coordinate{Group: "acme", Artifact: "other", Version: "1.0.0"}
	env := domain.NewEnvironment("id", other, []domain.Coordinate{other}, nil, "", nil)

	_, err := archive.NewLoader("1.4.0").Load(context.Background(), env, artifact, compiledTree())
	assert.ErrorIs(t, err, domain.ErrUnitMissing)
}
