package domain_test

import (
	"testing"

	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirement_Allows(t *testing.T) {
	tests := []struct {
		requirement string
		version     string
		want        bool
	}{
		{"", "0.0.1", true},
		{"[1.0.0,2.0.0)", "1.4.0", true},
		{"[1.0.0,2.0.0)", "1.0.0", true},
		{"[1.0.0,2.0.0)", "2.0.0", false},
		{"(1.0.0,2.0.0]", "1.0.0", false},
		{"(1.0.0,2.0.0]", "2.0.0", true},
		{"[1.2.0]", "1.2.0", true},
		{"[1.2.0]", "1.2.1", false},
		{"1.2.0", "1.2.0", true},
		{"1.2.0", "3.0.0", true},
		{"1.2.0", "1.1.9", false},
		{"(,2.0.0)", "0.1.0", true},
		{"[1.0.0,)", "9.9.9", true},
		{"[1.0.0,)", "not-a-version", false},
	}

	for _, tt := range tests {
		t.Run(tt.requirement+"/"+tt.version, func(t *testing.T) {
			r, err := domain.ParseRequirement(tt.requirement)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Allows(tt.version))
		})
	}
}

func TestParseRequirement_Invalid(t *testing.T) {
	for _, s := range []string{"[1.0.0", "[x,2.0.0)", "(1.0.0)", "[,]", "abc", "[1,2,3]"} {
		t.Run(s, func(t *testing.T) {
			_, err := domain.ParseRequirement(s)
			assert.ErrorIs(t, err, domain.ErrInvalidRequirement)
		})
	}
}

func TestCompareVersions(t *testing.T) {
	assert.Equal(t, -1, domain.CompareVersions("1.2.0", "1.10.0"))
	assert.Equal(t, 0, domain.CompareVersions("1.2", "v1.2.0"))
	assert.Equal(t, 1, domain.CompareVersions("2.0.0", "2.0.0-rc.1"))
	assert.Empty(t, domain.CanonicalVersion("latest"))
}

func TestDescriptor_CheckRuntime(t *testing.T) {
	desc := &domain.Descriptor{
		Coordinate: domain.Coordinate{Group: "acme", Artifact: "lib", Version: "1.0.0"},
		Requires:   "[1.0.0,2.0.0)",
	}
	require.NoError(t, desc.CheckRuntime("1.4.0"))

	err := desc.CheckRuntime("2.0.0")
	require.ErrorIs(t, err, domain.ErrIncompatibleRuntime)
	assert.Contains(t, domain.Trace(err), "requires=[1.0.0,2.0.0)")

	desc.Requires = "[oops"
	assert.ErrorIs(t, desc.CheckRuntime("1.4.0"), domain.ErrInvalidRequirement)

	desc.Requires = ""
	assert.NoError(t, desc.CheckRuntime("1.4.0"))
}
