package domain

// VersionSource records which lookup source produced a resolved interpreter
// version. Sources are probed in the order they are declared here.
type VersionSource string

const (
	// SourcePinFile is the project-root .python-version pin file.
	SourcePinFile VersionSource = "pin-file"

	// SourceManagerLocal is the version manager's project-local
	// configuration found in an ancestor directory.
	SourceManagerLocal VersionSource = "manager-local"

	// SourceManagerGlobal is the version manager's global default.
	SourceManagerGlobal VersionSource = "manager-global"

	// SourceManifest is the manifest constraint, satisfied by the lowest
	// installed interpreter version.
	SourceManifest VersionSource = "manifest"

	// SourcePath is the interpreter currently on the process search path.
	SourcePath VersionSource = "path"
)

// ResolvedVersion is a concrete interpreter version together with the source
// that supplied it and the executable that backs it. It is derived fresh on
// every invocation and never persisted.
type ResolvedVersion struct {
	// Version is the concrete version string (e.g., "3.11.4").
	Version string

	// Source is the lookup source that won.
	Source VersionSource

	// Executable is the absolute path of the interpreter binary.
	Executable string
}
