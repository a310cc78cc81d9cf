// Package fs locates the project root on disk.
package fs

import (
	"os"
	"path/filepath"

	"go.trai.ch/pave/internal/adapters/config"
	"go.trai.ch/pave/internal/core/domain"
	"go.trai.ch/zerr"
)

// FindProjectRoot walks up from start looking for the directory containing
// the project manifest. Returns the absolute root path.
func FindProjectRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve start directory")
	}

	for {
		candidate := filepath.Join(dir, config.ManifestFilename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", zerr.With(domain.ErrManifestNotFound, "start", start)
		}
		dir = parent
	}
}
