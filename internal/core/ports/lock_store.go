package ports

import "go.trai.ch/pave/internal/core/domain"

// LockStore persists per-group lock files under the project root.
//
// Writes are atomic (temp-then-rename): a crash mid-write never leaves a
// truncated lock visible.
//
//go:generate go run go.uber.org/mock/mockgen -source=lock_store.go -destination=mocks/mock_lock_store.go -package=mocks
type LockStore interface {
	// Read returns the stored lock for a group.
	// Returns nil, nil if no lock exists yet.
	Read(root string, group domain.GroupName) (*domain.LockFile, error)

	// Write replaces the group's lock file.
	Write(root string, lock *domain.LockFile) error
}
