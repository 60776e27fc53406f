package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
)

// GetOrdersByStatusQueryHandler lists orders in one status straight from the
// database, sorted by order number for stable work queue output.
type GetOrdersByStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersByStatusQueryHandler creates a handler for work queue queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersByStatusQueryHandler(db *gorm.DB) GetOrdersByStatusQueryHandler {
	return GetOrdersByStatusQueryHandler{db: db}
}

// Handle executes the query and maps each row to a response entry.
func (h GetOrdersByStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByStatusQuery,
) ([]GetOrdersByStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOrdersByStatusQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			customer_name,
			customer_email,
			total_cents,
			currency,
			vendor_id
		FROM orders
		WHERE status = ?
		ORDER BY order_number
	`, int(query.Status())).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetOrdersByStatusQueryResponse
		var id uuid.UUID
		var vendorID *uuid.UUID

		err = rows.Scan(
			&id,
			&resp.OrderNumber,
			&resp.CustomerName,
			&resp.CustomerEmail,
			&resp.TotalCents,
			&resp.Currency,
			&vendorID,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.Status = query.Status()

		if vendorID != nil {
			vid, vidErr := kernel.UUIDFromBytes(vendorID[:])
			if vidErr != nil {
				return nil, vidErr
			}
			resp.VendorID = &vid
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
