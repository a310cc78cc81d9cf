package ports

import (
	"context"

	"go.trai.ch/pave/internal/core/domain"
)

// VersionResolver determines the concrete interpreter version for a project
// by consulting an ordered chain of sources: pin file, version-manager local
// config, version-manager global default, manifest constraint (lowest
// satisfying installed version), and finally the interpreter on PATH.
//
// Resolution is a pure lookup: no retries, no writes to any source.
//
//go:generate go run go.uber.org/mock/mockgen -source=version_resolver.go -destination=mocks/mock_version_resolver.go -package=mocks
type VersionResolver interface {
	// Resolve returns the first source's answer, or ErrNoRuntimeFound
	// (annotated with the sources tried) when no source yields a usable
	// executable.
	Resolve(ctx context.Context, project *domain.Project) (domain.ResolvedVersion, error)
}
