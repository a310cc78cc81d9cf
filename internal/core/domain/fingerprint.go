package domain

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint is a content digest over the exact inputs that feed one
// group's lock file. Equal fingerprints mean the lock must not be
// regenerated.
type Fingerprint string

// ComputeFingerprint digests a group's declared specifiers together with the
// resolver configuration. Specifier order is significant: reordering a
// group's declarations is a manifest change and invalidates the lock.
func ComputeFingerprint(group GroupName, specifiers []string, opts ResolveOptions) Fingerprint {
	h := xxhash.New()

	_, _ = h.WriteString(string(group))
	_, _ = h.Write([]byte{0})

	for _, spec := range specifiers {
		_, _ = h.WriteString(spec)
		_, _ = h.Write([]byte{0}) // Separator
	}
	_, _ = h.Write([]byte{0}) // Section separator

	for _, arg := range opts.Argv {
		_, _ = h.WriteString(arg)
		_, _ = h.Write([]byte{0})
	}
	_, _ = h.Write([]byte{0})

	_, _ = h.WriteString(opts.IndexURL)

	return Fingerprint(fmt.Sprintf("%016x", h.Sum64()))
}
