package ports

import (
	"context"

	"go.trai.ch/pave/internal/core/domain"
)

// Executor runs a user command inside a provisioned environment.
//
// The environment's bin directory is placed first on PATH so the command and
// anything it spawns resolve against the environment. Stdio is passed
// through live, never buffered.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs program with args. A non-zero child exit surfaces as a
	// *domain.CommandExitError in the returned error chain.
	Execute(ctx context.Context, env *domain.Environment, program string, args []string) error
}

// BuildFrontend delegates packaging to the external build tool, passing
// arguments through opaquely. The install options govern the frontend's
// own bootstrap into the environment.
type BuildFrontend interface {
	Build(ctx context.Context, env *domain.Environment, args []string, opts domain.InstallOptions) error
}
