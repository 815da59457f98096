package domain_test

import (
	"errors"
	"testing"

	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestEnvironment_CloseOnce(t *testing.T) {
	calls := 0
	env := domain.NewEnvironment("id", coord("acme", "lib", "1.0.0"), nil, nil, "", func() error {
		calls++
		return errors.New("boom")
	})

	assert.EqualError(t, env.Close(), "boom")
	assert.EqualError(t, env.Close(), "boom")
	assert.Equal(t, 1, calls)
}

func TestEnvironment_VarsAndLookup(t *testing.T) {
	lib := coord("acme", "lib", "1.0.0")
	lib.Location = "/repo/lib.zip"
	env := domain.NewEnvironment("abc", lib, []domain.Coordinate{lib}, []string{"/ext"}, "/tmp/scratch", nil)

	assert.Contains(t, env.Vars(), "RUG_ENV_ID=abc")
	assert.Contains(t, env.Vars(), "TMPDIR=/tmp/scratch")
	assert.Equal(t, []string{"/repo/lib.zip", "/ext"}, env.Locations())

	got, ok := env.Lookup(lib.Identity())
	assert.True(t, ok)
	assert.Equal(t, lib, got)
}

func TestGenerateEnvID_Deterministic(t *testing.T) {
	a := domain.GenerateEnvID(map[string]string{"acme:lib": "/a", "acme:util": "/b"})
	b := domain.GenerateEnvID(map[string]string{"acme:util": "/b", "acme:lib": "/a"})
	c := domain.GenerateEnvID(map[string]string{"acme:lib": "/a"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
