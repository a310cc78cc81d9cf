// Package venv provisions the project's isolated environment using the
// interpreter's own venv module.
package venv

import (
	"bufio"
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/pave/internal/core/domain"
	"go.trai.ch/pave/internal/core/ports"
	"go.trai.ch/zerr"
)

// markerFile is the venv's own metadata file; its "version" entry is the
// bound-interpreter marker pave checks on every run.
const markerFile = "pyvenv.cfg"

// CreateFunc creates an environment at path using the given interpreter.
type CreateFunc func(ctx context.Context, executable, path string) error

var _ ports.Provisioner = (*Provisioner)(nil)

// Provisioner implements ports.Provisioner on top of `python -m venv`.
type Provisioner struct {
	logger ports.Logger
	create CreateFunc
}

// New creates a Provisioner that shells out to the interpreter.
func New(logger ports.Logger) *Provisioner {
	return &Provisioner{logger: logger, create: createVenv}
}

// NewWithCreate creates a Provisioner with an explicit create function.
// Tests use this to fabricate environments without a real interpreter.
func NewWithCreate(logger ports.Logger, create CreateFunc) *Provisioner {
	return &Provisioner{logger: logger, create: create}
}

// Ensure creates or verifies the environment under root.
//
// Missing: create bound to the resolved executable. Version mismatch:
// delete and recreate; the binding is immutable, environments are never
// patched in place. Match: no-op.
func (p *Provisioner) Ensure(ctx context.Context, root string, version domain.ResolvedVersion) (*domain.Environment, error) {
	envRoot := filepath.Join(root, domain.EnvDirName)

	bound, err := readVersionMarker(envRoot)
	if err != nil {
		return nil, err
	}

	if bound != "" && versionMatches(bound, version.Version) {
		return &domain.Environment{Root: envRoot, Version: bound}, nil
	}

	if bound != "" {
		p.logger.Info("environment bound to " + bound + ", recreating for " + version.Version)
	}
	// A marker-less directory is a corrupt environment; wipe whatever is
	// there so create never runs into leftover debris.
	if err := os.RemoveAll(envRoot); err != nil {
		return nil, zerr.With(domain.Classify(domain.ErrProvisionFailed, err), "path", envRoot)
	}

	if err := p.create(ctx, version.Executable, envRoot); err != nil {
		// Never leave a half-created environment marked valid.
		_ = os.RemoveAll(envRoot)
		provErr := zerr.With(domain.Classify(domain.ErrProvisionFailed, err), "path", envRoot)
		return nil, zerr.With(provErr, "version", version.Version)
	}

	bound, err = readVersionMarker(envRoot)
	if err != nil {
		return nil, err
	}
	if bound == "" {
		bound = version.Version
	}
	return &domain.Environment{Root: envRoot, Version: bound}, nil
}

// versionMatches accepts a prefix match so a "3.11" resolution does not
// churn an environment created with 3.11.4.
func versionMatches(bound, resolved string) bool {
	if bound == resolved {
		return true
	}
	return strings.HasPrefix(bound, resolved+".")
}

// readVersionMarker reads the interpreter version recorded in pyvenv.cfg.
// Returns "" when no environment exists. An environment directory without a
// readable marker is treated as absent so it gets rebuilt.
func readVersionMarker(envRoot string) (string, error) {
	f, err := os.Open(filepath.Join(envRoot, markerFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", zerr.With(zerr.Wrap(err, "failed to read environment marker"), "path", envRoot)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if !ok {
			continue
		}
		if strings.TrimSpace(key) == "version" {
			return strings.TrimSpace(value), nil
		}
	}
	return "", scanner.Err()
}

// createVenv shells out to `<python> -m venv <path>`.
func createVenv(ctx context.Context, executable, path string) error {
	//nolint:gosec // executable comes from version resolution, path from the project root
	cmd := exec.CommandContext(ctx, executable, "-m", "venv", path)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return zerr.With(zerr.Wrap(err, "venv creation failed"), "executable", executable)
	}
	return nil
}
