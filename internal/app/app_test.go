package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pave/internal/adapters/telemetry"
	"go.trai.ch/pave/internal/app"
	"go.trai.ch/pave/internal/core/domain"
	"go.trai.ch/pave/internal/core/ports/mocks"
	syncengine "go.trai.ch/pave/internal/engine/sync"
	"go.uber.org/mock/gomock"
)

type nopLogger struct{}

func (nopLogger) Info(msg string) {}
func (nopLogger) Warn(msg string) {}
func (nopLogger) Error(err error) {}

type fixture struct {
	manifests   *mocks.MockManifestLoader
	settings    *mocks.MockSettingsLoader
	versions    *mocks.MockVersionResolver
	provisioner *mocks.MockProvisioner
	resolver    *mocks.MockDependencyResolver
	installer   *mocks.MockInstaller
	executor    *mocks.MockExecutor
	frontend    *mocks.MockBuildFrontend
	locks       *mocks.MockLockStore

	app  *app.App
	root string
	env  *domain.Environment
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		manifests:   mocks.NewMockManifestLoader(ctrl),
		settings:    mocks.NewMockSettingsLoader(ctrl),
		versions:    mocks.NewMockVersionResolver(ctrl),
		provisioner: mocks.NewMockProvisioner(ctrl),
		resolver:    mocks.NewMockDependencyResolver(ctrl),
		installer:   mocks.NewMockInstaller(ctrl),
		executor:    mocks.NewMockExecutor(ctrl),
		frontend:    mocks.NewMockBuildFrontend(ctrl),
		locks:       mocks.NewMockLockStore(ctrl),
	}

	f.root = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(f.root, "pyproject.toml"), []byte("[project]\n"), 0o644))
	f.env = &domain.Environment{Root: syncengine.EnvPath(f.root), Version: "3.12.1"}

	syncer := syncengine.New(
		f.versions, f.provisioner, f.resolver, f.installer,
		f.locks, telemetry.NewNoOpTracer(), nopLogger{},
	)
	f.app = app.New(f.manifests, f.settings, f.versions, syncer, f.executor, f.frontend, f.locks, nopLogger{})
	return f
}

func (f *fixture) expectProject(manifest *domain.Manifest) {
	f.manifests.EXPECT().Load(f.root).Return(manifest, nil).AnyTimes()
	f.settings.EXPECT().Load(f.root).Return(domain.Settings{}, nil).AnyTimes()
}

func (f *fixture) expectSync(specifiers []string, pins []domain.PinnedPackage) {
	version := domain.ResolvedVersion{Version: "3.12.1", Source: domain.SourcePinFile, Executable: "/usr/bin/python3.12"}
	f.versions.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(version, nil).AnyTimes()
	f.provisioner.EXPECT().Ensure(gomock.Any(), f.root, version).Return(f.env, nil).AnyTimes()
	f.locks.EXPECT().Read(f.root, domain.DefaultGroup).Return(nil, nil)
	f.resolver.EXPECT().Resolve(gomock.Any(), f.env, specifiers, gomock.Any()).Return(pins, nil)
	f.locks.EXPECT().Write(f.root, gomock.Any()).Return(nil)
	f.installer.EXPECT().Installed(gomock.Any(), f.env).Return(pins, nil)
}

func TestRun_ExecutesInsideSyncedEnvironment(t *testing.T) {
	f := newFixture(t)
	f.expectProject(&domain.Manifest{
		Name:   "demo",
		Groups: map[domain.GroupName][]string{domain.DefaultGroup: {"flask"}},
	})
	pins := []domain.PinnedPackage{{
		Name:    domain.NewInternedString("flask"),
		Version: domain.NewInternedString("3.0.2"),
	}}
	f.expectSync([]string{"flask"}, pins)

	f.executor.EXPECT().
		Execute(gomock.Any(), f.env, "pytest", []string{"-x"}).
		Return(nil)

	err := f.app.Run(context.Background(), f.root, nil, "pytest", []string{"-x"})
	require.NoError(t, err)
}

func TestRun_ChildExitCodePassesThrough(t *testing.T) {
	f := newFixture(t)
	f.expectProject(&domain.Manifest{
		Groups: map[domain.GroupName][]string{domain.DefaultGroup: nil},
	})
	f.expectSync(nil, nil)

	f.executor.EXPECT().
		Execute(gomock.Any(), f.env, "pytest", gomock.Any()).
		Return(&domain.CommandExitError{Program: "pytest", Code: 3})

	err := f.app.Run(context.Background(), f.root, nil, "pytest", nil)
	require.Error(t, err)
	assert.Equal(t, 3, domain.ExitCode(err))
}

func TestLoadProject_MissingManifest(t *testing.T) {
	f := newFixture(t)

	_, err := f.app.LoadProject(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrManifestNotFound)
}

func TestBuild_DelegatesToFrontend(t *testing.T) {
	f := newFixture(t)
	manifest := &domain.Manifest{
		Groups:       map[domain.GroupName][]string{domain.DefaultGroup: nil},
		BuildBackend: "hatchling.build",
	}
	f.manifests.EXPECT().Load(f.root).Return(manifest, nil).AnyTimes()
	f.settings.EXPECT().Load(f.root).
		Return(domain.Settings{IndexURL: "https://mirror.example/simple"}, nil).AnyTimes()
	f.expectSync(nil, nil)

	f.frontend.EXPECT().
		Build(gomock.Any(), f.env, []string{"--wheel"}, domain.InstallOptions{IndexURL: "https://mirror.example/simple"}).
		Return(nil)

	require.NoError(t, f.app.Build(context.Background(), f.root, []string{"--wheel"}))
}

func TestDoctor_ReportsMissingPieces(t *testing.T) {
	f := newFixture(t)
	f.expectProject(&domain.Manifest{
		Name:   "demo",
		Groups: map[domain.GroupName][]string{domain.DefaultGroup: {"flask"}},
	})

	f.versions.EXPECT().Resolve(gomock.Any(), gomock.Any()).
		Return(domain.ResolvedVersion{}, domain.ErrNoRuntimeFound)
	f.locks.EXPECT().Read(f.root, domain.DefaultGroup).Return(nil, nil)

	report, err := f.app.Doctor(context.Background(), f.root)
	require.NoError(t, err)
	assert.Equal(t, "demo", report.Project)
	assert.False(t, report.Healthy())

	statuses := make(map[string]app.CheckStatus, len(report.Checks))
	for _, check := range report.Checks {
		statuses[check.Name] = check.Status
	}
	assert.Equal(t, app.StatusMissing, statuses["runtime"])
	assert.Equal(t, app.StatusMissing, statuses["environment"])
	assert.Equal(t, app.StatusMissing, statuses["lock default"])
}

func TestDoctor_HealthyProject(t *testing.T) {
	f := newFixture(t)
	manifest := &domain.Manifest{
		Name:   "demo",
		Groups: map[domain.GroupName][]string{domain.DefaultGroup: {"flask"}},
	}
	f.expectProject(manifest)
	require.NoError(t, os.MkdirAll(syncengine.EnvPath(f.root), 0o750))

	f.versions.EXPECT().Resolve(gomock.Any(), gomock.Any()).
		Return(domain.ResolvedVersion{Version: "3.12.1", Source: domain.SourcePinFile, Executable: "/usr/bin/python3.12"}, nil)

	fingerprint := domain.ComputeFingerprint(domain.DefaultGroup, []string{"flask"}, domain.ResolveOptions{})
	f.locks.EXPECT().Read(f.root, domain.DefaultGroup).
		Return(domain.NewLockFile(domain.DefaultGroup, fingerprint, nil), nil)

	report, err := f.app.Doctor(context.Background(), f.root)
	require.NoError(t, err)
	assert.True(t, report.Healthy())
}

func TestDoctor_StaleLock(t *testing.T) {
	f := newFixture(t)
	f.expectProject(&domain.Manifest{
		Name:   "demo",
		Groups: map[domain.GroupName][]string{domain.DefaultGroup: {"flask", "httpx"}},
	})
	require.NoError(t, os.MkdirAll(syncengine.EnvPath(f.root), 0o750))

	f.versions.EXPECT().Resolve(gomock.Any(), gomock.Any()).
		Return(domain.ResolvedVersion{Version: "3.12.1"}, nil)

	stale := domain.ComputeFingerprint(domain.DefaultGroup, []string{"flask"}, domain.ResolveOptions{})
	f.locks.EXPECT().Read(f.root, domain.DefaultGroup).
		Return(domain.NewLockFile(domain.DefaultGroup, stale, nil), nil)

	report, err := f.app.Doctor(context.Background(), f.root)
	require.NoError(t, err)
	assert.False(t, report.Healthy())

	for _, check := range report.Checks {
		if check.Name == "lock default" {
			assert.Equal(t, app.StatusStale, check.Status)
		}
	}
}
