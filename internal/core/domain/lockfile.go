package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// PinnedPackage is a single resolved dependency: an exact package version,
// optionally carrying a content hash supplied by the resolver.
type PinnedPackage struct {
	// Name is the canonical (lowercased) distribution name.
	Name InternedString

	// Version is the exact resolved version string.
	Version InternedString

	// Hash is the resolver-supplied artifact hash, if any (e.g., "sha256:...").
	Hash string
}

// Key returns the "name==version" form used for set comparisons.
func (p PinnedPackage) Key() string {
	return p.Name.String() + "==" + p.Version.String()
}

// LockFile is the deterministic resolution result for one dependency group.
// Pins are kept sorted by name so repeated runs with identical inputs are
// byte-identical on disk.
type LockFile struct {
	// Group is the dependency group this lock belongs to.
	Group GroupName

	// Fingerprint digests the manifest inputs that produced the pins.
	Fingerprint Fingerprint

	// Pins are the resolved entries, sorted by package name.
	Pins []PinnedPackage
}

// NewLockFile builds a lock file for a group, sorting the pins by name.
func NewLockFile(group GroupName, fp Fingerprint, pins []PinnedPackage) *LockFile {
	sorted := slices.Clone(pins)
	slices.SortFunc(sorted, func(a, b PinnedPackage) int {
		return strings.Compare(a.Name.String(), b.Name.String())
	})
	return &LockFile{
		Group:       group,
		Fingerprint: fp,
		Pins:        sorted,
	}
}

// UnionPins merges the pins of several lock files into one sorted set.
// The same package pinned at different versions by different groups is a
// resolution conflict: the environment can only hold one version.
func UnionPins(locks []*LockFile) ([]PinnedPackage, error) {
	byName := make(map[string]PinnedPackage)
	owner := make(map[string]GroupName)

	for _, lock := range locks {
		for _, pin := range lock.Pins {
			name := pin.Name.String()
			prev, seen := byName[name]
			if !seen {
				byName[name] = pin
				owner[name] = lock.Group
				continue
			}
			if prev.Version != pin.Version {
				err := zerr.With(ErrResolutionFailed, "package", name)
				err = zerr.With(err, "group_a", string(owner[name]))
				err = zerr.With(err, "version_a", prev.Version.String())
				err = zerr.With(err, "group_b", string(lock.Group))
				return nil, zerr.With(err, "version_b", pin.Version.String())
			}
		}
	}

	union := make([]PinnedPackage, 0, len(byName))
	for _, pin := range byName {
		union = append(union, pin)
	}
	slices.SortFunc(union, func(a, b PinnedPackage) int {
		return strings.Compare(a.Name.String(), b.Name.String())
	})
	return union, nil
}
