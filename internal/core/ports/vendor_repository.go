package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/vendor"
)

// VendorRepository defines the persistence contract for vendor aggregates.
// The fulfillment core only reads vendors; vendor management writes happen in a
// separate subsystem. Add exists for that subsystem and for test seeding.
type VendorRepository interface {
	// Add persists a new vendor aggregate to storage.
	Add(ctx context.Context, aggregate *vendor.Vendor) error

	// Get retrieves a vendor aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*vendor.Vendor, error)
}
