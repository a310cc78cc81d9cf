// Package app implements the application layer for pave.
package app

import (
	"context"

	"go.trai.ch/pave/internal/adapters/fs"
	"go.trai.ch/pave/internal/core/domain"
	"go.trai.ch/pave/internal/core/ports"
	syncengine "go.trai.ch/pave/internal/engine/sync"
	"go.trai.ch/zerr"
)

// App represents the main application logic. Every operation starts by
// discovering the project from the invocation directory; nothing is cached
// across operations.
type App struct {
	manifests ports.ManifestLoader
	settings  ports.SettingsLoader
	versions  ports.VersionResolver
	syncer    *syncengine.Syncer
	executor  ports.Executor
	frontend  ports.BuildFrontend
	locks     ports.LockStore
	logger    ports.Logger
}

// New creates a new App instance.
func New(
	manifests ports.ManifestLoader,
	settings ports.SettingsLoader,
	versions ports.VersionResolver,
	syncer *syncengine.Syncer,
	executor ports.Executor,
	frontend ports.BuildFrontend,
	locks ports.LockStore,
	logger ports.Logger,
) *App {
	return &App{
		manifests: manifests,
		settings:  settings,
		versions:  versions,
		syncer:    syncer,
		executor:  executor,
		frontend:  frontend,
		locks:     locks,
		logger:    logger,
	}
}

// LoadProject discovers the project root at or above dir and parses the
// manifest and settings.
func (a *App) LoadProject(dir string) (*domain.Project, error) {
	root, err := fs.FindProjectRoot(dir)
	if err != nil {
		return nil, err
	}

	manifest, err := a.manifests.Load(root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load manifest")
	}
	settings, err := a.settings.Load(root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load settings")
	}

	return &domain.Project{Root: root, Manifest: manifest, Settings: settings}, nil
}

// Run brings the environment up to date for the given groups and executes
// program inside it. The child's exit code travels back through the error.
func (a *App) Run(ctx context.Context, dir string, groups []string, program string, args []string) error {
	project, err := a.LoadProject(dir)
	if err != nil {
		return err
	}

	result, err := a.syncer.EnsureReady(ctx, project, groupNames(groups), syncengine.Options{})
	if err != nil {
		return err
	}
	return a.executor.Execute(ctx, result.Env, program, args)
}

// Sync brings the environment up to date for the given groups.
func (a *App) Sync(ctx context.Context, dir string, groups []string, force bool) (*syncengine.Result, error) {
	project, err := a.LoadProject(dir)
	if err != nil {
		return nil, err
	}
	return a.syncer.EnsureReady(ctx, project, groupNames(groups), syncengine.Options{ForceLock: force})
}

// Lock regenerates lock files without converging the installed set. Lock
// always bypasses the fingerprint cache; with no groups selected every
// declared group is regenerated.
func (a *App) Lock(ctx context.Context, dir string, groups []string) (*syncengine.Result, error) {
	project, err := a.LoadProject(dir)
	if err != nil {
		return nil, err
	}
	planned := groupNames(groups)
	if len(planned) == 0 {
		planned = project.Manifest.GroupNames()
	}
	return a.syncer.Lock(ctx, project, planned, syncengine.Options{ForceLock: true})
}

// Build syncs the default group and delegates packaging to the build
// frontend, passing args through opaquely.
func (a *App) Build(ctx context.Context, dir string, args []string) error {
	project, err := a.LoadProject(dir)
	if err != nil {
		return err
	}

	result, err := a.syncer.EnsureReady(ctx, project, nil, syncengine.Options{})
	if err != nil {
		return err
	}
	return a.frontend.Build(ctx, result.Env, args, project.Settings.InstallOptions())
}

func groupNames(groups []string) []domain.GroupName {
	names := make([]domain.GroupName, len(groups))
	for i, group := range groups {
		names[i] = domain.GroupName(group)
	}
	return names
}
