package pip

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"go.trai.ch/pave/internal/core/domain"
	"go.trai.ch/pave/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BuildFrontend = (*Frontend)(nil)

// Frontend runs the standard PEP 517 build frontend inside the environment.
type Frontend struct {
	logger ports.Logger
}

// NewFrontend creates a build Frontend.
func NewFrontend(logger ports.Logger) *Frontend {
	return &Frontend{logger: logger}
}

// Build produces distribution artifacts for the project owning the
// environment. Extra args go straight to the frontend, so callers can
// request --sdist, --wheel or an alternative output directory.
func (f *Frontend) Build(ctx context.Context, env *domain.Environment, args []string, opts domain.InstallOptions) error {
	if err := f.ensureFrontend(ctx, env, opts); err != nil {
		return err
	}

	argv := append([]string{"-m", "build"}, args...)
	//nolint:gosec // interpreter path comes from the provisioned environment
	cmd := exec.CommandContext(ctx, env.Python(), argv...)
	cmd.Dir = filepath.Dir(env.Root)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return &domain.CommandExitError{Program: "build", Code: exitErr.ExitCode()}
		}
		return zerr.Wrap(err, "build frontend failed")
	}
	return nil
}

// ensureFrontend bootstraps the build package into the environment on first use.
func (f *Frontend) ensureFrontend(ctx context.Context, env *domain.Environment, opts domain.InstallOptions) error {
	//nolint:gosec // interpreter path comes from the provisioned environment
	if err := exec.CommandContext(ctx, env.Python(), "-c", "import build").Run(); err == nil {
		return nil
	}

	f.logger.Info("installing build frontend into environment")
	installArgs := []string{"-m", "pip", "install", "--quiet", "build"}
	if opts.IndexURL != "" {
		installArgs = append(installArgs, "--index-url", opts.IndexURL)
	}
	//nolint:gosec // interpreter path comes from the provisioned environment
	cmd := exec.CommandContext(ctx, env.Python(), installArgs...)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return zerr.Wrap(err, "failed to bootstrap build frontend")
	}
	return nil
}
