// Package pyenv resolves the interpreter version for a project by probing
// an ordered chain of sources: the project pin file, pyenv's local and
// global configuration, the manifest constraint against the installed set,
// and finally the interpreter on PATH.
package pyenv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/pave/internal/core/domain"
	"go.trai.ch/pave/internal/core/ports"
	"go.trai.ch/zerr"
)

// PinFilename is the version pin file consulted at the project root and,
// as pyenv's own local config, in ancestor directories.
const PinFilename = ".python-version"

// LookPathFunc locates an executable on the process search path.
type LookPathFunc func(name string) (string, error)

// VersionFunc reports the version string of an interpreter executable.
type VersionFunc func(ctx context.Context, executable string) (string, error)

var _ ports.VersionResolver = (*Resolver)(nil)

// Resolver implements ports.VersionResolver against a pyenv installation.
// pyenv is only ever read, never written to.
type Resolver struct {
	pyenvRoot string
	lookPath  LookPathFunc
	version   VersionFunc
}

// New creates a Resolver against the ambient pyenv installation
// ($PYENV_ROOT, defaulting to ~/.pyenv) and the process PATH.
func New() *Resolver {
	root := os.Getenv("PYENV_ROOT")
	if root == "" {
		if home, err := os.UserHomeDir(); err == nil {
			root = filepath.Join(home, ".pyenv")
		}
	}
	return NewResolver(root, exec.LookPath, probeInterpreterVersion)
}

// NewResolver creates a Resolver with explicit collaborators. Tests use this
// to point at a fake pyenv root and a fake PATH.
func NewResolver(pyenvRoot string, lookPath LookPathFunc, version VersionFunc) *Resolver {
	return &Resolver{
		pyenvRoot: pyenvRoot,
		lookPath:  lookPath,
		version:   version,
	}
}

type probe struct {
	source domain.VersionSource
	run    func(ctx context.Context, project *domain.Project) (*domain.ResolvedVersion, error)
}

// Resolve walks the probe chain and returns the first source's answer.
// A probe that cannot produce a usable executable falls through to the next
// source; transient filesystem errors are fatal.
func (r *Resolver) Resolve(ctx context.Context, project *domain.Project) (domain.ResolvedVersion, error) {
	probes := []probe{
		{domain.SourcePinFile, r.probePinFile},
		{domain.SourceManagerLocal, r.probeManagerLocal},
		{domain.SourceManagerGlobal, r.probeManagerGlobal},
		{domain.SourceManifest, r.probeManifest},
		{domain.SourcePath, r.probePath},
	}

	tried := make([]string, 0, len(probes))
	for _, p := range probes {
		rv, err := p.run(ctx, project)
		if err != nil {
			return domain.ResolvedVersion{}, zerr.With(err, "source", string(p.source))
		}
		if rv != nil {
			rv.Source = p.source
			return *rv, nil
		}
		tried = append(tried, string(p.source))
	}

	return domain.ResolvedVersion{}, zerr.With(domain.ErrNoRuntimeFound, "tried", strings.Join(tried, ", "))
}

// probePinFile reads the pin file at the project root itself.
func (r *Resolver) probePinFile(_ context.Context, project *domain.Project) (*domain.ResolvedVersion, error) {
	return r.fromVersionFile(filepath.Join(project.Root, PinFilename))
}

// probeManagerLocal searches ancestor directories of the project root for
// pyenv's local config. The project root is excluded: a pin file there is
// the higher-precedence source already probed.
func (r *Resolver) probeManagerLocal(_ context.Context, project *domain.Project) (*domain.ResolvedVersion, error) {
	dir := filepath.Dir(project.Root)
	for {
		rv, err := r.fromVersionFile(filepath.Join(dir, PinFilename))
		if err != nil || rv != nil {
			return rv, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// probeManagerGlobal reads pyenv's global default.
func (r *Resolver) probeManagerGlobal(_ context.Context, _ *domain.Project) (*domain.ResolvedVersion, error) {
	if r.pyenvRoot == "" {
		return nil, nil
	}
	return r.fromVersionFile(filepath.Join(r.pyenvRoot, "version"))
}

// probeManifest interprets the manifest constraint as a request for the
// LOWEST installed version satisfying it, so the choice is reproducible on
// machines with different installed sets.
func (r *Resolver) probeManifest(_ context.Context, project *domain.Project) (*domain.ResolvedVersion, error) {
	constraint := project.Manifest.RequiresPython
	if constraint == "" {
		return nil, nil
	}

	spec, err := domain.ParseSpecifier(constraint)
	if err != nil {
		return nil, zerr.With(err, "constraint", constraint)
	}

	installed, err := r.installedVersions()
	if err != nil {
		return nil, err
	}

	version, ok := domain.LowestSatisfying(spec, installed)
	if !ok {
		return nil, nil
	}
	return r.locate(version)
}

// probePath falls back to whatever interpreter the process search path has.
func (r *Resolver) probePath(ctx context.Context, _ *domain.Project) (*domain.ResolvedVersion, error) {
	for _, name := range []string{"python3", "python"} {
		exe, err := r.lookPath(name)
		if err != nil {
			continue
		}
		version, err := r.version(ctx, exe)
		if err != nil {
			continue
		}
		return &domain.ResolvedVersion{Version: version, Executable: exe}, nil
	}
	return nil, nil
}

// fromVersionFile reads a single-line version file and locates its
// interpreter. A missing file or an unlocatable version falls through.
func (r *Resolver) fromVersionFile(path string) (*domain.ResolvedVersion, error) {
	data, err := os.ReadFile(path) //nolint:gosec // version files live under known roots
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read version file"), "path", path)
	}

	version, _, _ := strings.Cut(strings.TrimSpace(string(data)), "\n")
	version = strings.TrimSpace(version)
	if version == "" {
		return nil, nil
	}
	return r.locate(version)
}

// locate maps a version string to an interpreter executable: an exact pyenv
// installation first, then the lowest installed version matching the string
// as a prefix ("3.11" selects 3.11.x), then a versioned binary on PATH.
// Returns nil when the version is not usable on this machine.
func (r *Resolver) locate(version string) (*domain.ResolvedVersion, error) {
	if r.pyenvRoot != "" {
		exact := r.pyenvPython(version)
		if fileExists(exact) {
			return &domain.ResolvedVersion{Version: version, Executable: exact}, nil
		}

		spec, err := domain.ParseSpecifier("==" + version + ".*")
		if err == nil {
			installed, err := r.installedVersions()
			if err != nil {
				return nil, err
			}
			if concrete, ok := domain.LowestSatisfying(spec, installed); ok {
				exe := r.pyenvPython(concrete)
				if fileExists(exe) {
					return &domain.ResolvedVersion{Version: concrete, Executable: exe}, nil
				}
			}
		}
	}

	parsed, err := domain.ParsePythonVersion(version)
	if err == nil && len(parsed) >= 2 {
		name := fmt.Sprintf("python%d.%d", parsed[0], parsed[1])
		if exe, err := r.lookPath(name); err == nil {
			return &domain.ResolvedVersion{Version: version, Executable: exe}, nil
		}
	}
	return nil, nil
}

// pyenvPython returns the interpreter path of a pyenv-installed version.
func (r *Resolver) pyenvPython(version string) string {
	return filepath.Join(r.pyenvRoot, "versions", version, "bin", "python")
}

// installedVersions lists the versions installed under the pyenv root.
func (r *Resolver) installedVersions() ([]string, error) {
	dir := filepath.Join(r.pyenvRoot, "versions")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to list installed versions"), "path", dir)
	}

	versions := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			versions = append(versions, entry.Name())
		}
	}
	return versions, nil
}

// probeInterpreterVersion asks an interpreter for its version
// ("Python 3.12.1" -> "3.12.1").
func probeInterpreterVersion(ctx context.Context, executable string) (string, error) {
	//nolint:gosec // executable comes from LookPath
	out, err := exec.CommandContext(ctx, executable, "--version").Output()
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to query interpreter version"), "executable", executable)
	}
	version := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(string(out)), "Python"))
	if version == "" {
		return "", zerr.With(zerr.New("unexpected interpreter version output"), "output", string(out))
	}
	return strings.TrimSpace(version), nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
