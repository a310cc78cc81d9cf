package domain

import "slices"

// GroupName identifies a dependency group declared in the manifest.
type GroupName string

// DefaultGroup is the unnamed group holding the project's direct
// dependencies. It is always synced, regardless of what the caller asked for.
const DefaultGroup GroupName = "default"

// Manifest is the parsed project manifest (pyproject.toml). It is the source
// of truth for an invocation and is never written by pave.
type Manifest struct {
	// Name is the project name as declared in [project].
	Name string

	// RequiresPython is the interpreter version constraint from
	// [project] requires-python (e.g., ">=3.9").
	RequiresPython string

	// Groups maps group names to their declared dependency specifiers,
	// in declaration order. The default group is stored under DefaultGroup.
	Groups map[GroupName][]string

	// BuildBackend is the [build-system] build-backend value. It is passed
	// through to the build frontend and otherwise opaque to pave.
	BuildBackend string
}

// Group returns the specifiers declared for the given group.
// The second return value reports whether the group is declared at all;
// an empty default group is always considered declared.
func (m *Manifest) Group(name GroupName) ([]string, bool) {
	if name == DefaultGroup {
		return m.Groups[DefaultGroup], true
	}
	specs, ok := m.Groups[name]
	return specs, ok
}

// GroupNames returns all declared group names sorted alphabetically,
// with the default group first.
func (m *Manifest) GroupNames() []GroupName {
	names := make([]GroupName, 0, len(m.Groups))
	for name := range m.Groups {
		if name != DefaultGroup {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return append([]GroupName{DefaultGroup}, names...)
}

// Project couples a discovered project root with its parsed manifest and
// tool settings. Every component takes the root from here instead of
// assuming the process working directory.
type Project struct {
	// Root is the absolute path of the directory containing the manifest.
	Root string

	Manifest *Manifest
	Settings Settings
}

// Settings are the optional tool settings from pave.yaml. They configure the
// external resolver and installer and therefore feed lock fingerprints.
type Settings struct {
	// ResolverArgv overrides the resolver command line. Empty means the
	// built-in pip-tools invocation.
	ResolverArgv []string `yaml:"resolver"`

	// IndexURL is an alternative package index passed to the resolver and
	// installer. Empty means the collaborators' own default.
	IndexURL string `yaml:"index_url"`
}

// ResolveOptions returns the resolver configuration derived from the
// settings. These values are part of every group's fingerprint.
func (s Settings) ResolveOptions() ResolveOptions {
	return ResolveOptions{
		Argv:     slices.Clone(s.ResolverArgv),
		IndexURL: s.IndexURL,
	}
}

// ResolveOptions is the resolver configuration handed to the external
// resolver alongside a group's abstract specifiers.
type ResolveOptions struct {
	// Argv is the resolver command line override. Empty means the default.
	Argv []string

	// IndexURL is the package index to resolve against. Empty means default.
	IndexURL string
}

// InstallOptions returns the installer configuration derived from the
// settings. Installs fetch from the same index the lock was resolved against.
func (s Settings) InstallOptions() InstallOptions {
	return InstallOptions{IndexURL: s.IndexURL}
}

// InstallOptions is the installer configuration handed along with a set of
// pins to install.
type InstallOptions struct {
	// IndexURL is the package index to install from. Empty means default.
	IndexURL string
}
