package ports

import (
	"context"

	"go.trai.ch/pave/internal/core/domain"
)

// Installer mutates and inspects the environment's installed package set.
//
//go:generate go run go.uber.org/mock/mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks
type Installer interface {
	// Install puts the exact pinned set into the environment, reinstalling
	// entries whose installed version drifted.
	Install(ctx context.Context, env *domain.Environment, pins []domain.PinnedPackage, opts domain.InstallOptions) error

	// Uninstall removes the named distributions from the environment.
	Uninstall(ctx context.Context, env *domain.Environment, names []string) error

	// Installed reports the environment's current package set.
	Installed(ctx context.Context, env *domain.Environment) ([]domain.PinnedPackage, error)
}
