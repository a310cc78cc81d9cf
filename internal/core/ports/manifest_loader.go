// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/pave/internal/core/domain"

// ManifestLoader defines the interface for reading the project manifest.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest_loader.go -destination=mocks/mock_manifest_loader.go -package=mocks
type ManifestLoader interface {
	// Load parses the manifest at the given project root.
	Load(root string) (*domain.Manifest, error)
}

// SettingsLoader reads the optional tool settings file. A missing file is
// not an error; defaults are returned instead.
type SettingsLoader interface {
	Load(root string) (domain.Settings, error)
}
