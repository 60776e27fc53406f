package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOverdueProductionOrdersQueryIsNotConstructed = errors.New(
	"GetOverdueProductionOrdersQuery must be created via NewGetOverdueProductionOrdersQuery constructor",
)

// GetOverdueProductionOrdersQuery retrieves orders still in production past
// their agreed deadline. The deadline watchdog job runs it on a schedule; the
// back office runs it on demand.
type GetOverdueProductionOrdersQuery struct { //nolint:recvcheck //using for validation
	asOf time.Time

	guard guard.ConstructorGuard
}

// NewGetOverdueProductionOrdersQuery creates a query for overdue production
// orders. A zero asOf defaults to the current time.
func NewGetOverdueProductionOrdersQuery(asOf time.Time) GetOverdueProductionOrdersQuery {
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	return GetOverdueProductionOrdersQuery{
		asOf:  asOf,
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOverdueProductionOrdersQueryIsNotConstructed if validation fails.
func (q GetOverdueProductionOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOverdueProductionOrdersQueryIsNotConstructed)
}

// AsOf returns the point in time deadlines are compared against.
func (q GetOverdueProductionOrdersQuery) AsOf() time.Time {
	return q.asOf
}

// GetOverdueProductionOrdersQueryResponse represents one overdue order.
type GetOverdueProductionOrdersQueryResponse struct {
	ID                 kernel.UUID
	OrderNumber        string
	VendorID           *kernel.UUID
	ProductionDeadline time.Time
	VendorNotifiedAt   *time.Time
}
