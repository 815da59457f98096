package domain_test

import (
	"testing"

	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoordinate(t *testing.T) {
	c, err := domain.ParseCoordinate("acme:lib")
	require.NoError(t, err)
	assert.Equal(t, "acme:lib:latest", c.String())
	assert.True(t, c.IsSymbolic())
	assert.Equal(t, domain.ExtensionZip, c.Extension)

	c, err = domain.ParseCoordinate("acme:lib:1.2.0")
	require.NoError(t, err)
	assert.False(t, c.IsSymbolic())
	assert.Equal(t, domain.Identity{Group: "acme", Artifact: "lib"}, c.Identity())
	assert.Equal(t, "acme:lib", c.Identity().String())

	for _, bad := range []string{"acme", ":lib", "a:b:c:d", ""} {
		_, err := domain.ParseCoordinate(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidCoordinate, bad)
	}
}

func TestCoordinate_IsSymbolic(t *testing.T) {
	assert.True(t, domain.Coordinate{}.IsSymbolic())
	assert.True(t, domain.Coordinate{Version: "[1.0.0,2.0.0)"}.IsSymbolic())
	assert.False(t, domain.Coordinate{Version: "1.0.0"}.IsSymbolic())
}
