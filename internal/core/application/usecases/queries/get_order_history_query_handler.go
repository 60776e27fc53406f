package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// GetOrderHistoryQueryHandler reads an order's transition log from the database.
//
// Example:
//
//	handler := NewGetOrderHistoryQueryHandler(db)
//	query, _ := NewGetOrderHistoryQuery(orderID)
//
//	history, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown order
//	}
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for history queries.
// Requires a GORM database connection for query execution.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle returns the order's history entries ordered oldest first. A freshly
// created order yields an empty slice; an unknown order yields
// *errs.ObjectNotFoundError.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var exists int
	err := h.db.WithContext(ctx).Raw(`
		SELECT 1
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row().Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("orderId", query.OrderID())
	}
	if err != nil {
		return nil, err
	}

	entries := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			from_status,
			to_status,
			notes,
			changed_by,
			created_at
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY created_at, id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetOrderHistoryQueryResponse
		var fromStatus, toStatus int
		var createdAt time.Time

		err = rows.Scan(
			&fromStatus,
			&toStatus,
			&entry.Notes,
			&entry.ChangedBy,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		entry.FromStatus = order.Status(fromStatus)
		entry.ToStatus = order.Status(toStatus)
		entry.CreatedAt = createdAt
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
