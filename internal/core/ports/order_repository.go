// Package ports defines repository and side-channel interfaces for the fulfillment core.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Update applies the aggregate's status and transition-specific fields together
// with its uncommitted history entries in one atomic unit; the write is
// conditional on the status the aggregate was loaded with (see
// Order.PersistedStatus) and returns *errs.StateConflictError when another
// caller changed the order in between. Both the status write and the history
// append succeed or fail together.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the aggregate's pending transition atomically.
	// Returns *errs.StateConflictError if the persisted status no longer
	// matches the status the aggregate was loaded with.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, including
	// its full status history.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInStatus retrieves all orders currently in the given status.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}
