package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying every failure the tool reports. They are
// plain stdlib values: zerr's With copies *Error receivers, which would
// drop a zerr sentinel from the unwrap chain.
var (
	// ErrManifestNotFound is returned when no manifest exists at or above
	// the invocation directory.
	ErrManifestNotFound = errors.New("no pyproject.toml found")

	// ErrNoRuntimeFound is returned when no version source yielded a usable
	// interpreter executable.
	ErrNoRuntimeFound = errors.New("no usable python interpreter found")

	// ErrProvisionFailed is returned when the environment directory could
	// not be created or replaced.
	ErrProvisionFailed = errors.New("environment provisioning failed")

	// ErrResolutionFailed is returned when the external resolver failed or
	// produced conflicting pins.
	ErrResolutionFailed = errors.New("dependency resolution failed")

	// ErrInstallFailed is returned when the installer failed while
	// converging the environment on the lock set.
	ErrInstallFailed = errors.New("package installation failed")

	// ErrUnknownGroup is returned when a requested dependency group is not
	// declared in the manifest.
	ErrUnknownGroup = errors.New("unknown dependency group")

	// ErrSyncFailed wraps any failure inside the sync sequence, carrying
	// the failing step as metadata.
	ErrSyncFailed = errors.New("environment sync failed")
)

// Classify chains err behind a sentinel. Both stay visible to errors.Is
// and errors.As: the sentinel supplies the category, err the cause.
func Classify(sentinel, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
