package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pave/internal/core/domain"
)

func TestParsePythonVersion(t *testing.T) {
	v, err := domain.ParsePythonVersion("3.11.4")
	require.NoError(t, err)
	assert.Equal(t, domain.PythonVersion{3, 11, 4}, v)

	// Pre-release tails are dropped for ordering purposes
	v, err = domain.ParsePythonVersion("3.13.0rc1")
	require.NoError(t, err)
	assert.Equal(t, domain.PythonVersion{3, 13}, v)

	_, err = domain.ParsePythonVersion("")
	require.Error(t, err)
}

func TestVersionCompare(t *testing.T) {
	a, _ := domain.ParsePythonVersion("3.11")
	b, _ := domain.ParsePythonVersion("3.11.0")
	c, _ := domain.ParsePythonVersion("3.9.18")

	assert.Equal(t, 0, a.Compare(b))
	assert.Equal(t, 1, a.Compare(c))
	assert.Equal(t, -1, c.Compare(a))
}

func TestSpecifierMatches(t *testing.T) {
	cases := []struct {
		spec    string
		version string
		want    bool
	}{
		{">=3.9", "3.11.4", true},
		{">=3.9", "3.8.10", false},
		{">=3.9,<4", "3.9.0", true},
		{">=3.9,<4", "4.0.0", false},
		{"==3.11.*", "3.11.9", true},
		{"==3.11.*", "3.12.0", false},
		{"!=3.10.*", "3.10.2", false},
		{"~=3.9", "3.12.1", true},
		{"~=3.9", "4.0.0", false},
		{"~=3.9.2", "3.9.7", true},
		{"~=3.9.2", "3.10.0", false},
		{"", "2.7.18", true},
	}

	for _, tc := range cases {
		spec, err := domain.ParseSpecifier(tc.spec)
		require.NoError(t, err, "spec %q", tc.spec)
		v, err := domain.ParsePythonVersion(tc.version)
		require.NoError(t, err)
		assert.Equal(t, tc.want, spec.Matches(v), "spec %q version %q", tc.spec, tc.version)
	}
}

func TestParseSpecifier_Invalid(t *testing.T) {
	_, err := domain.ParseSpecifier(">=not.a.version")
	require.Error(t, err)

	_, err = domain.ParseSpecifier(">=3.11.*")
	require.Error(t, err, "wildcard only valid with == and !=")
}

func TestLowestSatisfying(t *testing.T) {
	spec, err := domain.ParseSpecifier(">=3.9")
	require.NoError(t, err)

	// Lowest satisfying wins, not highest: deterministic across machines
	got, ok := domain.LowestSatisfying(spec, []string{"3.12.1", "3.9.18", "3.11.4", "3.8.10"})
	require.True(t, ok)
	assert.Equal(t, "3.9.18", got)

	_, ok = domain.LowestSatisfying(spec, []string{"3.8.10", "2.7.18"})
	assert.False(t, ok)
}
