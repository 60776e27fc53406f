// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between the domain model and the relational schema.
package orderrepo

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The status column doubles as the optimistic concurrency token: updates are
// conditional on the status the aggregate was loaded with.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber string    `gorm:"uniqueIndex"`
	Status      int       `gorm:"index"`

	VendorID           *uuid.UUID `gorm:"type:uuid;index"`
	ProductionDeadline *time.Time

	TrackingNumber      string
	Carrier             string
	ShippingServiceCode string
	ShippingLabelURL    string
	EstimatedDelivery   *time.Time

	HoldReason string

	PickedUpAt *time.Time
	PickedUpBy string

	PaidAt           *time.Time
	PaymentReference string
	VendorNotifiedAt *time.Time
	DeliveredAt      *time.Time

	InternalNotes string

	LandingPageID *uuid.UUID `gorm:"type:uuid"`

	CustomerName  string
	CustomerEmail string
	TotalCents    int64
	Currency      string
	Items         []byte `gorm:"type:jsonb"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// StatusHistoryDTO represents one persisted transition record. Rows are
// insert-only; the audit trail is never updated or deleted.
type StatusHistoryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	FromStatus int
	ToStatus   int
	Notes      string
	ChangedBy  string
	CreatedAt  time.Time
}

// TableName specifies the database table name for history entries.
func (StatusHistoryDTO) TableName() string {
	return "order_status_history"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(o *order.Order) (OrderDTO, error) {
	items, err := json.Marshal(o.Items())
	if err != nil {
		return OrderDTO{}, err
	}

	return OrderDTO{
		ID:                  o.ID().Bytes(),
		OrderNumber:         o.OrderNumber(),
		Status:              int(o.Status()),
		VendorID:            uuidPtr(o.VendorID()),
		ProductionDeadline:  o.ProductionDeadline(),
		TrackingNumber:      o.TrackingNumber(),
		Carrier:             o.Carrier(),
		ShippingServiceCode: o.ShippingServiceCode(),
		ShippingLabelURL:    o.ShippingLabelURL(),
		EstimatedDelivery:   o.EstimatedDelivery(),
		HoldReason:          o.HoldReason(),
		PickedUpAt:          o.PickedUpAt(),
		PickedUpBy:          o.PickedUpBy(),
		PaidAt:              o.PaidAt(),
		PaymentReference:    o.PaymentReference(),
		VendorNotifiedAt:    o.VendorNotifiedAt(),
		DeliveredAt:         o.DeliveredAt(),
		InternalNotes:       o.InternalNotes(),
		LandingPageID:       uuidPtr(o.LandingPageID()),
		CustomerName:        o.CustomerName(),
		CustomerEmail:       o.CustomerEmail(),
		TotalCents:          o.TotalCents(),
		Currency:            o.Currency(),
		Items:               items,
	}, nil
}

// historyFromDomain converts one history entry to its database representation.
func historyFromDomain(entry order.StatusHistoryEntry) StatusHistoryDTO {
	return StatusHistoryDTO{
		ID:         entry.ID().Bytes(),
		OrderID:    entry.OrderID().Bytes(),
		FromStatus: int(entry.FromStatus()),
		ToStatus:   int(entry.ToStatus()),
		Notes:      entry.Notes(),
		ChangedBy:  entry.ChangedBy(),
		CreatedAt:  entry.CreatedAt(),
	}
}

// toDomain converts database rows back to an order aggregate, including the
// status history, oldest entry first.
func toDomain(dto OrderDTO, historyDTOs []StatusHistoryDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	vendorID, err := kernelUUIDPtr(dto.VendorID)
	if err != nil {
		return nil, err
	}

	landingPageID, err := kernelUUIDPtr(dto.LandingPageID)
	if err != nil {
		return nil, err
	}

	var items []order.LineItem
	if len(dto.Items) > 0 {
		if err = json.Unmarshal(dto.Items, &items); err != nil {
			return nil, err
		}
	}

	history := make([]order.StatusHistoryEntry, 0, len(historyDTOs))
	for _, h := range historyDTOs {
		entry, histErr := historyToDomain(h)
		if histErr != nil {
			return nil, histErr
		}
		history = append(history, entry)
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                  id,
		OrderNumber:         dto.OrderNumber,
		Status:              order.Status(dto.Status),
		VendorID:            vendorID,
		ProductionDeadline:  dto.ProductionDeadline,
		TrackingNumber:      dto.TrackingNumber,
		Carrier:             dto.Carrier,
		ShippingServiceCode: dto.ShippingServiceCode,
		ShippingLabelURL:    dto.ShippingLabelURL,
		EstimatedDelivery:   dto.EstimatedDelivery,
		HoldReason:          dto.HoldReason,
		PickedUpAt:          dto.PickedUpAt,
		PickedUpBy:          dto.PickedUpBy,
		PaidAt:              dto.PaidAt,
		PaymentReference:    dto.PaymentReference,
		VendorNotifiedAt:    dto.VendorNotifiedAt,
		DeliveredAt:         dto.DeliveredAt,
		InternalNotes:       dto.InternalNotes,
		LandingPageID:       landingPageID,
		CustomerName:        dto.CustomerName,
		CustomerEmail:       dto.CustomerEmail,
		TotalCents:          dto.TotalCents,
		Currency:            dto.Currency,
		Items:               items,
		History:             history,
	})
}

// historyToDomain converts one history row to its domain value object.
func historyToDomain(dto StatusHistoryDTO) (order.StatusHistoryEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.StatusHistoryEntry{}, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.StatusHistoryEntry{}, err
	}

	return order.RestoreStatusHistoryEntry(
		id,
		orderID,
		order.Status(dto.FromStatus),
		order.Status(dto.ToStatus),
		dto.Notes,
		dto.ChangedBy,
		dto.CreatedAt,
	), nil
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelUUIDPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	kid, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &kid, nil
}
