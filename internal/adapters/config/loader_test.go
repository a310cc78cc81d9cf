package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pave/internal/adapters/config"
	"go.trai.ch/pave/internal/core/domain"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
}

func TestLoad_Success(t *testing.T) {
	content := `
[project]
name = "demo"
requires-python = ">=3.9"
dependencies = ["requests>=2.31", "click"]

[dependency-groups]
dev = ["pytest", "ruff"]
docs = ["sphinx"]

[build-system]
requires = ["hatchling"]
build-backend = "hatchling.build"
`
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, content)

	m, err := config.NewLoader().Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "demo", m.Name)
	assert.Equal(t, ">=3.9", m.RequiresPython)
	assert.Equal(t, "hatchling.build", m.BuildBackend)

	defaults, ok := m.Group(domain.DefaultGroup)
	require.True(t, ok)
	assert.Equal(t, []string{"requests>=2.31", "click"}, defaults)

	dev, ok := m.Group("dev")
	require.True(t, ok)
	assert.Equal(t, []string{"pytest", "ruff"}, dev)

	_, ok = m.Group("missing")
	assert.False(t, ok)

	assert.Equal(t, []domain.GroupName{domain.DefaultGroup, "dev", "docs"}, m.GroupNames())
}

func TestLoad_NoDependencies(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, "[project]\nname = \"bare\"\nrequires-python = \">=3.11\"\n")

	m, err := config.NewLoader().Load(tmpDir)
	require.NoError(t, err)

	defaults, ok := m.Group(domain.DefaultGroup)
	assert.True(t, ok)
	assert.Empty(t, defaults)
}

func TestLoad_MissingManifest(t *testing.T) {
	_, err := config.NewLoader().Load(t.TempDir())
	require.ErrorIs(t, err, domain.ErrManifestNotFound)
}

func TestLoad_ReservedGroupName(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, `
[project]
name = "demo"

[dependency-groups]
default = ["requests"]
`)

	_, err := config.NewLoader().Load(tmpDir)
	require.Error(t, err)
}

func TestSettings_Load(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
resolver: ["uv", "pip", "compile"]
index_url: https://mirror.example/simple
`
	err := os.WriteFile(filepath.Join(tmpDir, "pave.yaml"), []byte(content), 0o600)
	require.NoError(t, err)

	settings, err := config.NewSettingsLoader().Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"uv", "pip", "compile"}, settings.ResolverArgv)
	assert.Equal(t, "https://mirror.example/simple", settings.IndexURL)
}

func TestSettings_MissingFileIsDefaults(t *testing.T) {
	settings, err := config.NewSettingsLoader().Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, settings.ResolverArgv)
	assert.Empty(t, settings.IndexURL)
}
