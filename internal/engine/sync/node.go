package sync

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pave/internal/adapters/lockstore"
	"go.trai.ch/pave/internal/adapters/logger"
	"go.trai.ch/pave/internal/adapters/pip"
	"go.trai.ch/pave/internal/adapters/pyenv"
	"go.trai.ch/pave/internal/adapters/telemetry"
	"go.trai.ch/pave/internal/adapters/venv"
	"go.trai.ch/pave/internal/core/ports"
)

// NodeID is the unique identifier for the syncer Graft node.
const NodeID graft.ID = "engine.syncer"

func init() {
	graft.Register(graft.Node[*Syncer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			pyenv.NodeID,
			venv.NodeID,
			pip.ResolverNodeID,
			pip.InstallerNodeID,
			lockstore.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Syncer, error) {
			versions, err := graft.Dep[ports.VersionResolver](ctx)
			if err != nil {
				return nil, err
			}
			provisioner, err := graft.Dep[ports.Provisioner](ctx)
			if err != nil {
				return nil, err
			}
			resolver, err := graft.Dep[ports.DependencyResolver](ctx)
			if err != nil {
				return nil, err
			}
			installer, err := graft.Dep[ports.Installer](ctx)
			if err != nil {
				return nil, err
			}
			locks, err := graft.Dep[ports.LockStore](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(versions, provisioner, resolver, installer, locks, tracer, log), nil
		},
	})
}
