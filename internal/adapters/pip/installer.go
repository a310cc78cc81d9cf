package pip

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/pave/internal/core/domain"
	"go.trai.ch/pave/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Installer = (*Installer)(nil)

// Installer implements ports.Installer with the environment's pip.
type Installer struct {
	stderr io.Writer
}

// NewInstaller creates an Installer streaming pip output to process stderr.
func NewInstaller() *Installer {
	return &Installer{stderr: os.Stderr}
}

// NewInstallerWithStderr creates an Installer with an explicit output sink.
func NewInstallerWithStderr(stderr io.Writer) *Installer {
	return &Installer{stderr: stderr}
}

// Install puts the exact pinned set into the environment. --no-deps keeps
// pip from resolving anything itself: the lock is the complete closure.
func (i *Installer) Install(ctx context.Context, env *domain.Environment, pins []domain.PinnedPackage, opts domain.InstallOptions) error {
	if len(pins) == 0 {
		return nil
	}

	args := []string{"-m", "pip", "install", "--no-deps", "--no-input", "--disable-pip-version-check"}
	if opts.IndexURL != "" {
		args = append(args, "--index-url", opts.IndexURL)
	}
	for _, pin := range pins {
		args = append(args, pin.Key())
	}

	if err := i.runPip(ctx, env, args); err != nil {
		return domain.Classify(domain.ErrInstallFailed, err)
	}
	return nil
}

// Uninstall removes the named distributions.
func (i *Installer) Uninstall(ctx context.Context, env *domain.Environment, names []string) error {
	if len(names) == 0 {
		return nil
	}

	args := append([]string{"-m", "pip", "uninstall", "--yes", "--disable-pip-version-check"}, names...)
	if err := i.runPip(ctx, env, args); err != nil {
		return domain.Classify(domain.ErrInstallFailed, err)
	}
	return nil
}

// Installed reports the environment's current package set via pip's JSON
// listing. Seed packages that belong to the environment itself are excluded:
// they are part of provisioning, not of the locked set.
func (i *Installer) Installed(ctx context.Context, env *domain.Environment) ([]domain.PinnedPackage, error) {
	//nolint:gosec // interpreter path comes from the provisioned environment
	cmd := exec.CommandContext(ctx, env.Python(),
		"-m", "pip", "list", "--format=json", "--disable-pip-version-check")
	cmd.Stderr = i.stderr

	output, err := cmd.Output()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to inspect environment")
	}
	return parseInstalled(output)
}

// SeedPackages are owned by the environment, never by a lock file. The set
// covers the provisioning seeds plus the resolver bootstrap and its closure,
// so that converging on a lock never rips out the tooling underneath it.
var SeedPackages = map[string]bool{
	"pip":             true,
	"setuptools":      true,
	"wheel":           true,
	"pip-tools":       true,
	"build":           true,
	"click":           true,
	"packaging":       true,
	"pyproject-hooks": true,
	"tomli":           true,
}

func parseInstalled(output []byte) ([]domain.PinnedPackage, error) {
	var listed []struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	}
	if err := json.Unmarshal(output, &listed); err != nil {
		return nil, zerr.Wrap(err, "failed to parse pip list output")
	}

	pins := make([]domain.PinnedPackage, 0, len(listed))
	for _, entry := range listed {
		name := strings.ReplaceAll(strings.ToLower(entry.Name), "_", "-")
		if SeedPackages[name] {
			continue
		}
		pins = append(pins, domain.PinnedPackage{
			Name:    domain.NewInternedString(name),
			Version: domain.NewInternedString(entry.Version),
		})
	}
	return pins, nil
}

func (i *Installer) runPip(ctx context.Context, env *domain.Environment, args []string) error {
	//nolint:gosec // interpreter path comes from the provisioned environment
	cmd := exec.CommandContext(ctx, env.Python(), args...)
	cmd.Stdout = i.stderr
	cmd.Stderr = i.stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			pipErr := zerr.Wrap(exitErr, "pip failed")
			return zerr.With(pipErr, "exit_code", exitErr.ExitCode())
		}
		return zerr.Wrap(err, "pip failed")
	}
	return nil
}
