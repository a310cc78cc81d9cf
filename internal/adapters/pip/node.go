package pip

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pave/internal/adapters/logger"
	"go.trai.ch/pave/internal/core/ports"
)

const (
	// ResolverNodeID is the unique identifier for the dependency resolver Graft node.
	ResolverNodeID graft.ID = "adapter.dependency_resolver"
	// InstallerNodeID is the unique identifier for the installer Graft node.
	InstallerNodeID graft.ID = "adapter.installer"
	// FrontendNodeID is the unique identifier for the build frontend Graft node.
	FrontendNodeID graft.ID = "adapter.build_frontend"
)

func init() {
	graft.Register(graft.Node[ports.DependencyResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.DependencyResolver, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(log), nil
		},
	})

	graft.Register(graft.Node[ports.Installer]{
		ID:        InstallerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Installer, error) {
			return NewInstaller(), nil
		},
	})

	graft.Register(graft.Node[ports.BuildFrontend]{
		ID:        FrontendNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.BuildFrontend, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFrontend(log), nil
		},
	})
}
