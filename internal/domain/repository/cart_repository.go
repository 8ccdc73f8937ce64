// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"trolley/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for cart snapshot persistence.
var (
	// ErrCartSnapshotNotFound is returned when no snapshot exists for the customer.
	ErrCartSnapshotNotFound = errors.New("cart snapshot not found")
	// ErrCartSnapshotCorrupt is returned when a stored snapshot cannot be decoded.
	// Callers recover by starting from the empty cart; this is never fatal.
	ErrCartSnapshotCorrupt = errors.New("cart snapshot corrupt")
	// ErrCartSnapshotStale is returned when a write carries a revision that is not
	// newer than the stored one. A delayed older write must never overtake a newer one.
	ErrCartSnapshotStale = errors.New("cart snapshot write is stale")
)

// CartSnapshotRepository persists the full cart state of a customer under a single
// key per customer. Writes are full-state replacements guarded by a monotonically
// increasing revision.
type CartSnapshotRepository interface {
	// SaveCartSnapshot stores the complete cart state at the given revision,
	// replacing any previous snapshot with a lower revision. Returns
	// ErrCartSnapshotStale when the stored revision is already equal or newer.
	SaveCartSnapshot(ctx context.Context, userID uuid.UUID, cart *entity.Cart, revision int64) error

	// FindCartSnapshot loads the latest snapshot and its revision. Returns
	// ErrCartSnapshotNotFound when the customer has no snapshot and
	// ErrCartSnapshotCorrupt when the stored payload cannot be decoded.
	FindCartSnapshot(ctx context.Context, userID uuid.UUID) (*entity.Cart, int64, error)
}
