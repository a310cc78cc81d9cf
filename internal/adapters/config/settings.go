package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/pave/internal/core/domain"
	"go.trai.ch/pave/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SettingsFilename is the optional tool settings file at the project root.
const SettingsFilename = "pave.yaml"

var _ ports.SettingsLoader = (*SettingsLoader)(nil)

// SettingsLoader implements ports.SettingsLoader using a YAML file.
type SettingsLoader struct{}

// NewSettingsLoader creates a new SettingsLoader.
func NewSettingsLoader() *SettingsLoader {
	return &SettingsLoader{}
}

// Load reads pave.yaml from the project root. A missing file yields zero
// settings: every field has a collaborator-side default.
func (l *SettingsLoader) Load(root string) (domain.Settings, error) {
	path := filepath.Join(root, SettingsFilename)
	data, err := os.ReadFile(path) //nolint:gosec // path is rooted at the discovered project root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Settings{}, nil
		}
		return domain.Settings{}, zerr.With(zerr.Wrap(err, "failed to read settings"), "path", path)
	}

	var settings domain.Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return domain.Settings{}, zerr.With(zerr.Wrap(err, "failed to parse settings"), "path", path)
	}
	return settings, nil
}
