package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// StatusHistoryEntry is an immutable audit record of a single status transition.
// Exactly one entry is created per applied transition and entries are never
// updated or deleted, so the count of entries for an order equals the number of
// transitions it has undergone since creation.
type StatusHistoryEntry struct {
	id         kernel.UUID
	orderID    kernel.UUID
	fromStatus Status
	toStatus   Status
	notes      string
	changedBy  string
	createdAt  time.Time
}

// NewStatusHistoryEntry creates an audit record for a transition being applied now.
// changedBy is free text identifying the human or system actor.
func NewStatusHistoryEntry(
	orderID kernel.UUID,
	fromStatus, toStatus Status,
	notes, changedBy string,
	createdAt time.Time,
) StatusHistoryEntry {
	return StatusHistoryEntry{
		id:         kernel.NewUUID(),
		orderID:    orderID,
		fromStatus: fromStatus,
		toStatus:   toStatus,
		notes:      notes,
		changedBy:  changedBy,
		createdAt:  createdAt,
	}
}

// RestoreStatusHistoryEntry reconstructs an entry from persistence.
func RestoreStatusHistoryEntry(
	id, orderID kernel.UUID,
	fromStatus, toStatus Status,
	notes, changedBy string,
	createdAt time.Time,
) StatusHistoryEntry {
	return StatusHistoryEntry{
		id:         id,
		orderID:    orderID,
		fromStatus: fromStatus,
		toStatus:   toStatus,
		notes:      notes,
		changedBy:  changedBy,
		createdAt:  createdAt,
	}
}

// ID returns the entry's unique identifier.
func (e StatusHistoryEntry) ID() kernel.UUID {
	return e.id
}

// OrderID returns the identifier of the order the entry belongs to.
func (e StatusHistoryEntry) OrderID() kernel.UUID {
	return e.orderID
}

// FromStatus returns the status the order left.
func (e StatusHistoryEntry) FromStatus() Status {
	return e.fromStatus
}

// ToStatus returns the status the order entered.
func (e StatusHistoryEntry) ToStatus() Status {
	return e.toStatus
}

// Notes returns the free-form note recorded with the transition.
func (e StatusHistoryEntry) Notes() string {
	return e.notes
}

// ChangedBy returns the actor that requested the transition.
func (e StatusHistoryEntry) ChangedBy() string {
	return e.changedBy
}

// CreatedAt returns the time the transition was applied.
func (e StatusHistoryEntry) CreatedAt() time.Time {
	return e.createdAt
}
