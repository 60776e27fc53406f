package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/vendor"
)

// NotificationService sends customer-facing messages for order lifecycle events.
// Every call may fail; callers must catch the error, log it, and never let it
// affect the already-committed status change.
type NotificationService interface {
	SendOrderConfirmation(ctx context.Context, o *order.Order) error
	SendShippingNotification(ctx context.Context, o *order.Order, tracking, carrier, etaText string) error
	SendReadyForPickup(ctx context.Context, o *order.Order, location, instructions string) error
	SendOnTheWayNotification(ctx context.Context, o *order.Order) error
	SendOnHoldNotification(ctx context.Context, o *order.Order, reason, actionRequired string) error
	SendPickupConfirmation(ctx context.Context, o *order.Order) error
	SendDeliveredConfirmation(ctx context.Context, o *order.Order) error
	SendReprintNotice(ctx context.Context, o *order.Order) error
}

// IntegrationEventBus publishes integration events to external workflow
// automation. Fire-and-forget from the orchestrator's perspective.
type IntegrationEventBus interface {
	Publish(ctx context.Context, eventName string, payload map[string]any) error
}

// VendorDispatch is the payload sent to a vendor when an order enters production.
// It carries everything the print shop needs: the line items, the total, the
// customer contact, and the agreed deadline.
type VendorDispatch struct {
	OrderID            string
	OrderNumber        string
	VendorID           string
	VendorEmail        string
	CustomerName       string
	CustomerEmail      string
	TotalCents         int64
	Currency           string
	Items              []order.LineItem
	ProductionDeadline time.Time
	Notes              string
}

// VendorGateway delivers production dispatches to vendor shops, independent of
// the customer-facing notification channel.
type VendorGateway interface {
	DispatchOrder(ctx context.Context, v *vendor.Vendor, dispatch VendorDispatch) error
}

// AttributionService records revenue conversions against the marketing page an
// order originated from. Optional collaborator; failures must never fail
// payment processing.
type AttributionService interface {
	RecordConversion(ctx context.Context, landingPageID string, orderTotalCents int64) error
}
