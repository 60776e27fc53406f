package commands

import (
	"context"
	"time"

	"go.uber.org/zap"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/vendor"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/metrics"
)

// StatusChangedEvent is the integration event published after every committed
// transition. Workflow automation subscribes to it downstream.
const StatusChangedEvent = "order.status.changed"

// SystemActor is recorded as the history actor when a caller does not identify itself.
const SystemActor = "system"

// PaymentGatewayActor is the history actor for transitions driven by payment webhooks.
const PaymentGatewayActor = "payment-gateway"

const defaultSendTimeout = 5 * time.Second

// SideEffectConfig carries the static content and timing knobs for side
// channel sends.
type SideEffectConfig struct {
	PickupLocation     string
	PickupInstructions string
	SendTimeout        time.Duration
}

// SideEffectDispatcher fans out the channels that react to a committed status
// change: customer notifications, the integration event stream, the vendor
// dispatch gateway, and marketing attribution.
//
// Every send is isolated. A failing channel is logged and counted, never
// propagated, so a committed transition cannot be masked by a downstream
// outage and one channel's failure cannot suppress another's send.
type SideEffectDispatcher struct {
	notifications ports.NotificationService
	events        ports.IntegrationEventBus
	vendorGateway ports.VendorGateway
	attribution   ports.AttributionService
	logger        *zap.Logger
	cfg           SideEffectConfig
}

// NewSideEffectDispatcher wires the side channels together. A zero
// SendTimeout falls back to five seconds per send.
func NewSideEffectDispatcher(
	notifications ports.NotificationService,
	events ports.IntegrationEventBus,
	vendorGateway ports.VendorGateway,
	attribution ports.AttributionService,
	logger *zap.Logger,
	cfg SideEffectConfig,
) *SideEffectDispatcher {
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = defaultSendTimeout
	}

	return &SideEffectDispatcher{
		notifications: notifications,
		events:        events,
		vendorGateway: vendorGateway,
		attribution:   attribution,
		logger:        logger,
		cfg:           cfg,
	}
}

// OrderTransitioned runs the channels every committed transition triggers:
// the transition counter, the customer notification the target status owns
// (if any), and the integration event.
func (d *SideEffectDispatcher) OrderTransitioned(ctx context.Context, o *order.Order, entry order.StatusHistoryEntry) {
	metrics.TransitionsApplied.
		WithLabelValues(entry.FromStatus().String(), entry.ToStatus().String()).
		Inc()

	d.notifyCustomer(ctx, o, entry)

	d.attempt(ctx, "integration_event", o, func(ctx context.Context) error {
		return d.events.Publish(ctx, StatusChangedEvent, map[string]any{
			"orderId":        o.ID().String(),
			"orderNumber":    o.OrderNumber(),
			"previousStatus": entry.FromStatus().String(),
			"newStatus":      entry.ToStatus().String(),
			"actor":          entry.ChangedBy(),
			"timestamp":      entry.CreatedAt().UTC().Format(time.RFC3339),
		})
	})
}

// VendorAssigned sends the production dispatch to the vendor shop. Called in
// addition to OrderTransitioned when an order enters production through
// vendor assignment.
func (d *SideEffectDispatcher) VendorAssigned(ctx context.Context, o *order.Order, v *vendor.Vendor, notes string) {
	var deadline time.Time
	if o.ProductionDeadline() != nil {
		deadline = *o.ProductionDeadline()
	}

	dispatch := ports.VendorDispatch{
		OrderID:            o.ID().String(),
		OrderNumber:        o.OrderNumber(),
		VendorID:           v.ID().String(),
		VendorEmail:        v.OrderEmail(),
		CustomerName:       o.CustomerName(),
		CustomerEmail:      o.CustomerEmail(),
		TotalCents:         o.TotalCents(),
		Currency:           o.Currency(),
		Items:              o.Items(),
		ProductionDeadline: deadline,
		Notes:              notes,
	}

	d.attempt(ctx, "vendor_dispatch", o, func(ctx context.Context) error {
		return d.vendorGateway.DispatchOrder(ctx, v, dispatch)
	})
}

// PaymentRecorded reports the conversion to marketing attribution. No-op for
// orders without a landing page reference.
func (d *SideEffectDispatcher) PaymentRecorded(ctx context.Context, o *order.Order) {
	if o.LandingPageID() == nil {
		return
	}

	pageID := o.LandingPageID().String()
	d.attempt(ctx, "attribution", o, func(ctx context.Context) error {
		return d.attribution.RecordConversion(ctx, pageID, o.TotalCents())
	})
}

func (d *SideEffectDispatcher) notifyCustomer(ctx context.Context, o *order.Order, entry order.StatusHistoryEntry) {
	var send func(context.Context) error

	switch entry.ToStatus() {
	case order.Confirmation:
		send = func(ctx context.Context) error {
			return d.notifications.SendOrderConfirmation(ctx, o)
		}
	case order.Shipped:
		send = func(ctx context.Context) error {
			return d.notifications.SendShippingNotification(ctx, o, o.TrackingNumber(), o.Carrier(), etaText(o.EstimatedDelivery()))
		}
	case order.ReadyForPickup:
		send = func(ctx context.Context) error {
			return d.notifications.SendReadyForPickup(ctx, o, d.cfg.PickupLocation, d.cfg.PickupInstructions)
		}
	case order.OnTheWay:
		send = func(ctx context.Context) error {
			return d.notifications.SendOnTheWayNotification(ctx, o)
		}
	case order.OnHold:
		send = func(ctx context.Context) error {
			return d.notifications.SendOnHoldNotification(ctx, o, o.HoldReason(), "our team will reach out if anything is needed from you")
		}
	case order.PickedUp:
		send = func(ctx context.Context) error {
			return d.notifications.SendPickupConfirmation(ctx, o)
		}
	case order.Delivered:
		send = func(ctx context.Context) error {
			return d.notifications.SendDeliveredConfirmation(ctx, o)
		}
	case order.Reprint:
		send = func(ctx context.Context) error {
			return d.notifications.SendReprintNotice(ctx, o)
		}
	default:
		// PendingPayment, PaymentDeclined, Production and the remaining
		// statuses have no customer-facing template.
		return
	}

	d.attempt(ctx, "notification", o, send)
}

// attempt runs one side channel send with its own timeout, detached from the
// caller's cancellation since the transition has already committed.
func (d *SideEffectDispatcher) attempt(ctx context.Context, effect string, o *order.Order, send func(context.Context) error) {
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.cfg.SendTimeout)
	defer cancel()

	if err := send(sendCtx); err != nil {
		metrics.SideEffectFailures.WithLabelValues(effect).Inc()
		d.logger.Error("side effect failed",
			zap.String("effect", effect),
			zap.String("order_id", o.ID().String()),
			zap.String("order_number", o.OrderNumber()),
			zap.Error(errs.NewSideEffectError(effect, o.ID().String(), err)),
		)
	}
}

func etaText(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

func actorOrSystem(actor string) string {
	if actor == "" {
		return SystemActor
	}
	return actor
}

// lastUncommittedEntry returns the history entry the transition just appended.
// Must be read before the repository update clears pending entries.
func lastUncommittedEntry(o *order.Order) order.StatusHistoryEntry {
	pending := o.UncommittedHistory()
	return pending[len(pending)-1]
}
