package domain_test

import (
	"testing"

	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceTree_DeltaFrom(t *testing.T) {
	before := domain.NewSourceTree(
		domain.SourceFile{Path: "a.rug", Content: []byte("a")},
		domain.SourceFile{Path: "b.rug", Content: []byte("b")},
		domain.SourceFile{Path: "c.rug", Content: []byte("c")},
	)
	after := before.
		With(domain.SourceFile{Path: "b.rug", Content: []byte("B")}, domain.SourceFile{Path: "d.json", Content: []byte("{}")}).
		Without("c.rug")

	assert.Equal(t, []domain.Delta{
		{Path: "b.rug", Change: domain.Modified},
		{Path: "c.rug", Change: domain.Deleted},
		{Path: "d.json", Change: domain.Created},
	}, after.DeltaFrom(before))

	assert.Empty(t, after.DeltaFrom(after))
	assert.Empty(t, before.DeltaFrom(before.With()))
}

func TestSourceTree_IsImmutable(t *testing.T) {
	content := []byte("x")
	tree := domain.NewSourceTree(domain.SourceFile{Path: "a", Content: content})
	content[0] = 'y'

	got, ok := tree.Content("a")
	require.True(t, ok)
	assert.Equal(t, []byte("x"), got)

	got[0] = 'z'
	again, _ := tree.Content("a")
	assert.Equal(t, []byte("x"), again)

	_ = tree.With(domain.SourceFile{Path: "b", Content: []byte("b")})
	assert.Equal(t, 1, tree.Len())
}

func TestSourceTree_PathsAreCleaned(t *testing.T) {
	tree := domain.NewSourceTree(domain.SourceFile{Path: "./.atomist//editors/../editors/A.rug"})
	assert.Equal(t, []string{".atomist/editors/A.rug"}, tree.Paths())
}

func TestSourceTree_MatchAndUnder(t *testing.T) {
	tree := domain.NewSourceTree(
		domain.SourceFile{Path: ".atomist/editors/A.rug"},
		domain.SourceFile{Path: ".atomist/defaults.env"},
		domain.SourceFile{Path: ".atomist/target/editors/A.json"},
		domain.SourceFile{Path: "README.md"},
	)

	assert.Equal(t, []string{".atomist/defaults.env", ".atomist/editors/A.rug"}, tree.Match(".rug", ".env"))
	assert.Equal(t, []string{".atomist/target/editors/A.json"}, tree.Under(".atomist/target"))
}

func TestSourceTree_Equal(t *testing.T) {
	a := domain.NewSourceTree(domain.SourceFile{Path: "x", Content: []byte("1")})
	b := domain.NewSourceTree(domain.SourceFile{Path: "x", Content: []byte("1")})
	c := domain.NewSourceTree(domain.SourceFile{Path: "x", Content: []byte("2")})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
