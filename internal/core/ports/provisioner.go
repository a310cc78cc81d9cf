package ports

import (
	"context"

	"go.trai.ch/pave/internal/core/domain"
)

// Provisioner creates or verifies the project's isolated environment.
//
// Implementations must be idempotent: repeated calls with the same resolved
// version perform no work after the first. A version mismatch means the
// existing environment is deleted and recreated, never patched in place.
//
//go:generate go run go.uber.org/mock/mockgen -source=provisioner.go -destination=mocks/mock_provisioner.go -package=mocks
type Provisioner interface {
	// Ensure returns a handle to the environment under root, bound to the
	// resolved version's executable.
	Ensure(ctx context.Context, root string, version domain.ResolvedVersion) (*domain.Environment, error)
}
