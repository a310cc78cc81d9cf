// Package lockstore persists per-group lock files as plain requirements
// text under the project root.
package lockstore

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/pave/internal/core/domain"
	"go.trai.ch/pave/internal/core/ports"
	"go.trai.ch/zerr"
)

// fingerprintPrefix heads every lock file. The fingerprint on the first
// line is what staleness detection compares against, so the file itself is
// the cache entry.
const fingerprintPrefix = "# fingerprint: "

var _ ports.LockStore = (*Store)(nil)

// Store reads and writes lock files relative to a project root.
type Store struct {
	rename func(oldpath, newpath string) error
}

// New creates a lock file Store.
func New() *Store {
	return &Store{rename: os.Rename}
}

// Filename returns the lock file name for a group: requirements.lock for
// the default group, requirements-<group>.lock otherwise.
func Filename(group domain.GroupName) string {
	if group == domain.DefaultGroup {
		return "requirements.lock"
	}
	return fmt.Sprintf("requirements-%s.lock", group)
}

// Read loads the stored lock for a group, or nil if none exists yet.
func (s *Store) Read(root string, group domain.GroupName) (*domain.LockFile, error) {
	path := filepath.Join(root, Filename(group))
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open lock file")
	}
	defer file.Close()

	lock := &domain.LockFile{Group: group}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, fingerprintPrefix):
			lock.Fingerprint = domain.Fingerprint(strings.TrimPrefix(line, fingerprintPrefix))
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		default:
			pin, err := parsePin(line)
			if err != nil {
				return nil, zerr.With(err, "path", path)
			}
			lock.Pins = append(lock.Pins, pin)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(err, "failed to read lock file")
	}
	return lock, nil
}

// Write replaces the group's lock file. The content goes to a temp file in
// the same directory first and is renamed into place, so an interrupted
// write never leaves a truncated lock visible.
func (s *Store) Write(root string, lock *domain.LockFile) error {
	path := filepath.Join(root, Filename(lock.Group))

	tmp, err := os.CreateTemp(root, Filename(lock.Group)+".*")
	if err != nil {
		return zerr.Wrap(err, "failed to create temp lock file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(render(lock)); err != nil {
		tmp.Close()
		return zerr.Wrap(err, "failed to write lock file")
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, "failed to write lock file")
	}

	if err := s.rename(tmp.Name(), path); err != nil {
		return zerr.Wrap(err, "failed to replace lock file")
	}
	return nil
}

func render(lock *domain.LockFile) string {
	var sb strings.Builder
	sb.WriteString(fingerprintPrefix)
	sb.WriteString(string(lock.Fingerprint))
	sb.WriteByte('\n')
	for _, pin := range lock.Pins {
		sb.WriteString(pin.Key())
		if pin.Hash != "" {
			sb.WriteString(" --hash=")
			sb.WriteString(pin.Hash)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func parsePin(line string) (domain.PinnedPackage, error) {
	fields := strings.Fields(line)
	name, version, ok := strings.Cut(fields[0], "==")
	if !ok {
		return domain.PinnedPackage{}, zerr.With(zerr.New("malformed lock line"), "line", line)
	}

	pin := domain.PinnedPackage{
		Name:    domain.NewInternedString(name),
		Version: domain.NewInternedString(version),
	}
	for _, field := range fields[1:] {
		if hash, found := strings.CutPrefix(field, "--hash="); found {
			pin.Hash = hash
			break
		}
	}
	return pin, nil
}
