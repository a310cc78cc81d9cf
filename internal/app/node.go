package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pave/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/pave/internal/adapters/lockstore"
	"go.trai.ch/pave/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/pave/internal/adapters/pip"
	"go.trai.ch/pave/internal/adapters/pyenv"
	"go.trai.ch/pave/internal/adapters/shell"
	"go.trai.ch/pave/internal/core/ports"
	syncengine "go.trai.ch/pave/internal/engine/sync"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			config.SettingsNodeID,
			pyenv.NodeID,
			syncengine.NodeID,
			shell.NodeID,
			pip.FrontendNodeID,
			lockstore.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: application, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	manifests, err := graft.Dep[ports.ManifestLoader](ctx)
	if err != nil {
		return nil, err
	}
	settings, err := graft.Dep[ports.SettingsLoader](ctx)
	if err != nil {
		return nil, err
	}
	versions, err := graft.Dep[ports.VersionResolver](ctx)
	if err != nil {
		return nil, err
	}
	syncer, err := graft.Dep[*syncengine.Syncer](ctx)
	if err != nil {
		return nil, err
	}
	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}
	frontend, err := graft.Dep[ports.BuildFrontend](ctx)
	if err != nil {
		return nil, err
	}
	locks, err := graft.Dep[ports.LockStore](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	return New(manifests, settings, versions, syncer, executor, frontend, locks, log), nil
}
