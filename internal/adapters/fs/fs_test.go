package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/janekdb/rug-cli/internal/adapters/fs"
	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, root string, rel ...string) {
	t.Helper()
	for _, r := range rel {
		p := filepath.Join(root, filepath.FromSlash(r))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), domain.DirPerm))
		require.NoError(t, os.WriteFile(p, []byte(r), domain.FilePerm))
	}
}

func TestWalker_WalkFiles(t *testing.T) {
	root := t.TempDir()
	touch(t, root,
		"a.txt",
		".git/HEAD",
		".atomist/manifest.yml",
		".atomist/target/editors/A.json",
		"node_modules/pkg/index.js",
		"src/b.swp",
		"src/c.go",
	)

	var got []string
	for p, err := range fs.NewWalker().WalkFiles(root, []string{".atomist/target", "node_modules", "*.swp"}) {
		require.NoError(t, err)
		got = append(got, p)
	}
	slices.Sort(got)

	assert.Equal(t, []string{".atomist/manifest.yml", "a.txt", "src/c.go"}, got)
}

func TestWalker_MissingRoot(t *testing.T) {
	var errs int
	for _, err := range fs.NewWalker().WalkFiles(filepath.Join(t.TempDir(), "absent"), nil) {
		if err != nil {
			errs++
		}
	}
	assert.Equal(t, 1, errs)
}

func TestHasher_ContentKey(t *testing.T) {
	h := fs.NewHasher()

	key := h.ContentKey("rug", "a.rug", []byte("x"))
	assert.Len(t, key, 16)
	assert.Equal(t, key, h.ContentKey("rug", "a.rug", []byte("x")))
	assert.NotEqual(t, key, h.ContentKey("rug", "a.rug", []byte("y")))
	assert.NotEqual(t, key, h.ContentKey("rug", "b.rug", []byte("x")))
	assert.NotEqual(t, key, h.ContentKey("defaults", "a.rug", []byte("x")))
	assert.NotEqual(t, h.ContentKey("ab", "c", nil), h.ContentKey("a", "bc", nil))
}

func TestVerifier_VerifyLocations(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "lib.zip")

	v := fs.NewVerifier()
	require.NoError(t, v.VerifyLocations(context.Background(), []string{root, filepath.Join(root, "lib.zip")}))

	err := v.VerifyLocations(context.Background(), []string{root, filepath.Join(root, "absent.zip")})
	assert.ErrorIs(t, err, domain.ErrUnitMissing)
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.json")

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, fs.WriteFileAtomic(path, []byte(`{"ok":true}`)))
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
