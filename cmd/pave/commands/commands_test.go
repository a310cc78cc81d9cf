package commands_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pave/cmd/pave/commands"
	"go.trai.ch/pave/internal/adapters/lockstore"
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

type cliFixture struct {
	cli      *commands.CLI
	executor *mocks.MockExecutor
	resolver *mocks.MockDependencyResolver
	root     string
	env      *domain.Environment
}

func newCLIFixture(t *testing.T, manifest *domain.Manifest) *cliFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	manifests := mocks.NewMockManifestLoader(ctrl)
	settings := mocks.NewMockSettingsLoader(ctrl)
	versions := mocks.NewMockVersionResolver(ctrl)
	provisioner := mocks.NewMockProvisioner(ctrl)
	resolver := mocks.NewMockDependencyResolver(ctrl)
	installer := mocks.NewMockInstaller(ctrl)
	executor := mocks.NewMockExecutor(ctrl)
	frontend := mocks.NewMockBuildFrontend(ctrl)

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "pyproject.toml"), []byte("[project]\n"), 0o644))
	env := &domain.Environment{Root: syncengine.EnvPath(root), Version: "3.12.1"}

	manifests.EXPECT().Load(root).Return(manifest, nil).AnyTimes()
	settings.EXPECT().Load(root).Return(domain.Settings{}, nil).AnyTimes()

	version := domain.ResolvedVersion{Version: "3.12.1", Source: domain.SourcePinFile, Executable: "/usr/bin/python3.12"}
	versions.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(version, nil).AnyTimes()
	provisioner.EXPECT().Ensure(gomock.Any(), root, version).Return(env, nil).AnyTimes()
	installer.EXPECT().Installed(gomock.Any(), env).Return(nil, nil).AnyTimes()
	installer.EXPECT().Install(gomock.Any(), env, gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	locks := lockstore.New()
	syncer := syncengine.New(versions, provisioner, resolver, installer, locks, telemetry.NewNoOpTracer(), nopLogger{})
	a := app.New(manifests, settings, versions, syncer, executor, frontend, locks, nopLogger{})

	return &cliFixture{
		cli:      commands.New(a),
		executor: executor,
		resolver: resolver,
		root:     root,
		env:      env,
	}
}

func TestRunCommand_PassesProgramAndArgs(t *testing.T) {
	f := newCLIFixture(t, &domain.Manifest{
		Groups: map[domain.GroupName][]string{domain.DefaultGroup: {"flask"}},
	})

	f.resolver.EXPECT().
		Resolve(gomock.Any(), f.env, []string{"flask"}, gomock.Any()).
		Return([]domain.PinnedPackage{{
			Name:    domain.NewInternedString("flask"),
			Version: domain.NewInternedString("3.0.2"),
		}}, nil)
	f.executor.EXPECT().
		Execute(gomock.Any(), f.env, "pytest", []string{"-x", "--group"}).
		Return(nil)

	// flags after the program belong to the child, not to pave
	f.cli.SetArgs([]string{"-C", f.root, "run", "pytest", "-x", "--group"})
	require.NoError(t, f.cli.Execute(context.Background()))
}

func TestRunCommand_ExitCodeSurfaces(t *testing.T) {
	f := newCLIFixture(t, &domain.Manifest{
		Groups: map[domain.GroupName][]string{domain.DefaultGroup: nil},
	})

	f.resolver.EXPECT().
		Resolve(gomock.Any(), f.env, gomock.Any(), gomock.Any()).
		Return(nil, nil).AnyTimes()
	f.executor.EXPECT().
		Execute(gomock.Any(), f.env, "pytest", gomock.Any()).
		Return(&domain.CommandExitError{Program: "pytest", Code: 5})

	f.cli.SetArgs([]string{"-C", f.root, "run", "pytest"})
	err := f.cli.Execute(context.Background())
	require.Error(t, err)
	assert.Equal(t, 5, domain.ExitCode(err))
}

func TestLockCommand_WritesLockFile(t *testing.T) {
	f := newCLIFixture(t, &domain.Manifest{
		Groups: map[domain.GroupName][]string{domain.DefaultGroup: {"flask"}},
	})

	f.resolver.EXPECT().
		Resolve(gomock.Any(), f.env, []string{"flask"}, gomock.Any()).
		Return([]domain.PinnedPackage{{
			Name:    domain.NewInternedString("flask"),
			Version: domain.NewInternedString("3.0.2"),
		}}, nil)

	f.cli.SetArgs([]string{"-C", f.root, "lock"})
	require.NoError(t, f.cli.Execute(context.Background()))

	content, err := os.ReadFile(filepath.Join(f.root, "requirements.lock"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "flask==3.0.2")
}

func TestLockCommand_ForcesAllDeclaredGroups(t *testing.T) {
	f := newCLIFixture(t, &domain.Manifest{
		Groups: map[domain.GroupName][]string{
			domain.DefaultGroup: {"flask"},
			"dev":               {"pytest"},
		},
	})

	// Both declared groups get recompiled on every lock, even when the
	// stored fingerprints still match the manifest.
	f.resolver.EXPECT().
		Resolve(gomock.Any(), f.env, []string{"flask"}, gomock.Any()).
		Return([]domain.PinnedPackage{{
			Name:    domain.NewInternedString("flask"),
			Version: domain.NewInternedString("3.0.2"),
		}}, nil).Times(2)
	f.resolver.EXPECT().
		Resolve(gomock.Any(), f.env, []string{"pytest"}, gomock.Any()).
		Return([]domain.PinnedPackage{{
			Name:    domain.NewInternedString("pytest"),
			Version: domain.NewInternedString("8.0.0"),
		}}, nil).Times(2)

	f.cli.SetArgs([]string{"-C", f.root, "lock"})
	require.NoError(t, f.cli.Execute(context.Background()))

	f.cli.SetArgs([]string{"-C", f.root, "lock"})
	require.NoError(t, f.cli.Execute(context.Background()))

	_, err := os.Stat(filepath.Join(f.root, "requirements-dev.lock"))
	require.NoError(t, err)
}

func TestSyncCommand_UnknownGroup(t *testing.T) {
	f := newCLIFixture(t, &domain.Manifest{
		Groups: map[domain.GroupName][]string{domain.DefaultGroup: nil},
	})

	f.cli.SetArgs([]string{"-C", f.root, "sync", "--group", "docs"})
	err := f.cli.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownGroup)
}

func TestVersionCommand(t *testing.T) {
	f := newCLIFixture(t, &domain.Manifest{
		Groups: map[domain.GroupName][]string{domain.DefaultGroup: nil},
	})

	f.cli.SetArgs([]string{"version"})
	require.NoError(t, f.cli.Execute(context.Background()))
}
