package venv_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pave/internal/adapters/venv"
	"go.trai.ch/pave/internal/core/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

// fakeCreate writes a minimal venv layout with a version marker.
func fakeCreate(version string, calls *int) venv.CreateFunc {
	return func(_ context.Context, _ string, path string) error {
		*calls++
		if err := os.MkdirAll(filepath.Join(path, "bin"), 0o750); err != nil {
			return err
		}
		cfg := "home = /usr/local/bin\nversion = " + version + "\n"
		return os.WriteFile(filepath.Join(path, "pyvenv.cfg"), []byte(cfg), 0o600)
	}
}

func TestEnsure_CreatesWhenMissing(t *testing.T) {
	root := t.TempDir()
	calls := 0
	p := venv.NewWithCreate(nopLogger{}, fakeCreate("3.11.4", &calls))

	env, err := p.Ensure(context.Background(), root, domain.ResolvedVersion{Version: "3.11.4", Executable: "/py/3.11.4"})
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, filepath.Join(root, ".venv"), env.Root)
	assert.Equal(t, "3.11.4", env.Version)
}

func TestEnsure_Idempotent(t *testing.T) {
	root := t.TempDir()
	calls := 0
	p := venv.NewWithCreate(nopLogger{}, fakeCreate("3.11.4", &calls))

	rv := domain.ResolvedVersion{Version: "3.11.4", Executable: "/py/3.11.4"}
	_, err := p.Ensure(context.Background(), root, rv)
	require.NoError(t, err)
	_, err = p.Ensure(context.Background(), root, rv)
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "matching environment must be a no-op")
}

func TestEnsure_RecreatesOnVersionMismatch(t *testing.T) {
	root := t.TempDir()
	calls := 0
	p := venv.NewWithCreate(nopLogger{}, fakeCreate("3.10.13", &calls))

	_, err := p.Ensure(context.Background(), root, domain.ResolvedVersion{Version: "3.10.13"})
	require.NoError(t, err)

	// Leave a stray file behind to prove recreation wipes the directory
	stray := filepath.Join(root, ".venv", "lib", "old-site")
	require.NoError(t, os.MkdirAll(filepath.Dir(stray), 0o750))
	require.NoError(t, os.WriteFile(stray, []byte("stale"), 0o600))

	p2 := venv.NewWithCreate(nopLogger{}, fakeCreate("3.11.4", &calls))
	env, err := p2.Ensure(context.Background(), root, domain.ResolvedVersion{Version: "3.11.4"})
	require.NoError(t, err)

	assert.Equal(t, "3.11.4", env.Version)
	_, statErr := os.Stat(stray)
	assert.True(t, os.IsNotExist(statErr), "recreation must not leave prior files behind")
}

func TestEnsure_WipesMarkerlessDirectoryBeforeCreate(t *testing.T) {
	root := t.TempDir()
	calls := 0
	p := venv.NewWithCreate(nopLogger{}, fakeCreate("3.11.4", &calls))

	// An environment directory without pyvenv.cfg is corrupt; its contents
	// must not survive into the rebuilt environment.
	debris := filepath.Join(root, ".venv", "lib", "half-installed")
	require.NoError(t, os.MkdirAll(filepath.Dir(debris), 0o750))
	require.NoError(t, os.WriteFile(debris, []byte("junk"), 0o600))

	env, err := p.Ensure(context.Background(), root, domain.ResolvedVersion{Version: "3.11.4"})
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, "3.11.4", env.Version)
	_, statErr := os.Stat(debris)
	assert.True(t, os.IsNotExist(statErr), "corrupt environment contents must be wiped")
}

func TestEnsure_PrefixMatchDoesNotChurn(t *testing.T) {
	root := t.TempDir()
	calls := 0
	p := venv.NewWithCreate(nopLogger{}, fakeCreate("3.11.4", &calls))

	_, err := p.Ensure(context.Background(), root, domain.ResolvedVersion{Version: "3.11.4"})
	require.NoError(t, err)

	env, err := p.Ensure(context.Background(), root, domain.ResolvedVersion{Version: "3.11"})
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, "3.11.4", env.Version)
}

func TestEnsure_FailedCreateLeavesNothingValid(t *testing.T) {
	root := t.TempDir()
	p := venv.NewWithCreate(nopLogger{}, func(_ context.Context, _ string, path string) error {
		// Simulate a crash after partial creation
		_ = os.MkdirAll(path, 0o750)
		return errors.New("disk full")
	})

	_, err := p.Ensure(context.Background(), root, domain.ResolvedVersion{Version: "3.11.4"})
	require.ErrorIs(t, err, domain.ErrProvisionFailed)

	_, statErr := os.Stat(filepath.Join(root, ".venv"))
	assert.True(t, os.IsNotExist(statErr), "partial environment must be cleaned up")
}
