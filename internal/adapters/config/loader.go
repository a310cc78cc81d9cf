// Package config provides the manifest and settings loaders for pave.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"go.trai.ch/pave/internal/core/domain"
	"go.trai.ch/pave/internal/core/ports"
	"go.trai.ch/zerr"
)

// ManifestFilename is the fixed manifest name at the project root.
const ManifestFilename = "pyproject.toml"

var _ ports.ManifestLoader = (*Loader)(nil)

// Loader implements ports.ManifestLoader for pyproject.toml.
type Loader struct{}

// NewLoader creates a new manifest Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// pyproject mirrors the subset of pyproject.toml pave consumes.
type pyproject struct {
	Project struct {
		Name           string   `toml:"name"`
		RequiresPython string   `toml:"requires-python"`
		Dependencies   []string `toml:"dependencies"`
	} `toml:"project"`
	DependencyGroups map[string][]string `toml:"dependency-groups"`
	BuildSystem      struct {
		BuildBackend string `toml:"build-backend"`
	} `toml:"build-system"`
}

// Load parses the manifest at the given project root.
func (l *Loader) Load(root string) (*domain.Manifest, error) {
	path := filepath.Join(root, ManifestFilename)
	data, err := os.ReadFile(path) //nolint:gosec // path is rooted at the discovered project root
	if err != nil {
		if os.IsNotExist(err) {
			return nil, zerr.With(domain.ErrManifestNotFound, "root", root)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read manifest"), "path", path)
	}

	var pp pyproject
	if err := toml.Unmarshal(data, &pp); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse manifest"), "path", path)
	}

	groups := make(map[domain.GroupName][]string, len(pp.DependencyGroups)+1)
	groups[domain.DefaultGroup] = pp.Project.Dependencies
	for name, specs := range pp.DependencyGroups {
		if domain.GroupName(name) == domain.DefaultGroup {
			return nil, zerr.With(zerr.New("group name 'default' is reserved"), "path", path)
		}
		groups[domain.GroupName(name)] = specs
	}

	return &domain.Manifest{
		Name:           pp.Project.Name,
		RequiresPython: pp.Project.RequiresPython,
		Groups:         groups,
		BuildBackend:   pp.BuildSystem.BuildBackend,
	}, nil
}
