package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// GetOverdueProductionOrdersQueryHandler finds production orders whose
// deadline has passed.
type GetOverdueProductionOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOverdueProductionOrdersQueryHandler creates a handler for deadline queries.
// Requires a GORM database connection for query execution.
func NewGetOverdueProductionOrdersQueryHandler(db *gorm.DB) GetOverdueProductionOrdersQueryHandler {
	return GetOverdueProductionOrdersQueryHandler{db: db}
}

// Handle returns orders in production with a deadline before the query's
// reference time, most overdue first.
func (h GetOverdueProductionOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOverdueProductionOrdersQuery,
) ([]GetOverdueProductionOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	overdue := make([]GetOverdueProductionOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			vendor_id,
			production_deadline,
			vendor_notified_at
		FROM orders
		WHERE status = ?
		  AND production_deadline IS NOT NULL
		  AND production_deadline < ?
		ORDER BY production_deadline
	`, int(order.Production), query.AsOf()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetOverdueProductionOrdersQueryResponse
		var id uuid.UUID
		var vendorID *uuid.UUID
		var deadline time.Time

		err = rows.Scan(
			&id,
			&resp.OrderNumber,
			&vendorID,
			&deadline,
			&resp.VendorNotifiedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.ProductionDeadline = deadline

		if vendorID != nil {
			vid, vidErr := kernel.UUIDFromBytes(vendorID[:])
			if vidErr != nil {
				return nil, vidErr
			}
			resp.VendorID = &vid
		}

		overdue = append(overdue, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return overdue, nil
}
