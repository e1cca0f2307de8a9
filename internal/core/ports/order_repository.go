// Package ports defines the persistence and messaging contracts of the
// negotiation workflow. These interfaces establish contracts between the
// domain layer and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"
	"time"

	"portal/internal/core/domain/model/kernel"
	"portal/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Writes are guarded by optimistic concurrency: every update is keyed on the
// version the aggregate was loaded at.
type OrderRepository interface {
	// Add persists a new order aggregate to storage at version 1.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate using a
	// compare-and-swap on expectedVersion. On success the stored version
	// becomes expectedVersion+1. When another writer got there first, no row
	// matches and a VersionConflictError is returned; the caller reloads the
	// aggregate and re-runs its transition.
	Update(ctx context.Context, aggregate *order.Order, expectedVersion int64) error

	// Get retrieves an order aggregate by its unique identifier, including
	// soft-deleted orders. Visibility filtering is a read-model concern.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetStalePendingReview retrieves orders whose pending suggestion has
	// waited for review longer than the given duration allows, i.e. not
	// touched since the cutoff. Used by the reminder job.
	GetStalePendingReview(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
