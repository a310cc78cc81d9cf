package domain

import (
	"path/filepath"
	"runtime"
)

// EnvDirName is the fixed name of the isolated environment directory,
// relative to the project root. There is exactly one per project.
const EnvDirName = ".venv"

// Environment is a provisioned, filesystem-rooted interpreter environment.
// Its interpreter binding is immutable after creation; a version change
// means the whole directory is deleted and recreated.
type Environment struct {
	// Root is the absolute path of the environment directory.
	Root string

	// Version is the interpreter version the environment was created with,
	// as recorded by the environment's own marker.
	Version string
}

// BinDir returns the directory holding the environment's executables.
func (e *Environment) BinDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(e.Root, "Scripts")
	}
	return filepath.Join(e.Root, "bin")
}

// Python returns the path of the environment's interpreter executable.
func (e *Environment) Python() string {
	name := "python"
	if runtime.GOOS == "windows" {
		name = "python.exe"
	}
	return filepath.Join(e.BinDir(), name)
}
