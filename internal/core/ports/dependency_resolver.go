package ports

import (
	"context"

	"go.trai.ch/pave/internal/core/domain"
)

// DependencyResolver invokes the external resolver with a group's abstract
// specifiers and captures its pinned output. The resolver's own diagnostics
// stream to the operator verbatim.
//
//go:generate go run go.uber.org/mock/mockgen -source=dependency_resolver.go -destination=mocks/mock_dependency_resolver.go -package=mocks
type DependencyResolver interface {
	// Resolve pins the given specifiers inside the environment's
	// interpreter. The returned set is unordered; callers sort it.
	Resolve(ctx context.Context, env *domain.Environment, specifiers []string, opts domain.ResolveOptions) ([]domain.PinnedPackage, error)
}
