package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderNumberIsRequired is returned when the human-readable order number is empty.
	ErrOrderNumberIsRequired = errors.New("order number is required")

	// ErrCustomerEmailIsRequired is returned when the customer contact email is empty.
	ErrCustomerEmailIsRequired = errors.New("customer email is required")

	// ErrTotalIsInvalid is returned when the order total is not positive.
	ErrTotalIsInvalid = errors.New("total must be greater than 0")
)

// LineItem describes one configured print product on an order.
// Line items are read-only from the fulfillment core's perspective; they are
// carried for the vendor dispatch payload.
type LineItem struct {
	ProductName    string
	Quantity       int
	UnitPriceCents int64
}

// Order represents a print order in the fulfillment system. It is the aggregate
// root that owns the order's lifecycle from payment confirmation through
// production, shipping or pickup, and terminal resolution.
//
// Order maintains these invariants:
//   - status is always a member of the Status enumeration and is never set
//     directly, only through validated transitions
//   - every applied transition appends exactly one StatusHistoryEntry with
//     matching from/to statuses
//   - transition-specific fields (vendor, tracking, hold reason) are mutated
//     only by the dedicated method for that transition kind
//
// The aggregate remembers the status it was loaded with (see PersistedStatus);
// repositories use it as an optimistic concurrency token so racing callers
// cannot both win a transition on the same order.
type Order struct {
	id          kernel.UUID
	orderNumber string
	status      Status

	// persistedStatus is the status at construction or rehydration time.
	// The repository's conditional update compares against it.
	persistedStatus Status

	vendorID           *kernel.UUID
	productionDeadline *time.Time

	trackingNumber      string
	carrier             string
	shippingServiceCode string
	shippingLabelURL    string
	estimatedDelivery   *time.Time

	holdReason string

	pickedUpAt *time.Time
	pickedUpBy string

	paidAt           *time.Time
	paymentReference string
	vendorNotifiedAt *time.Time
	deliveredAt      *time.Time

	internalNotes string

	// landingPageID references the marketing page the order was attributed to.
	// Read by the attribution collaborator after payment; never mutated here.
	landingPageID *kernel.UUID

	customerName  string
	customerEmail string
	totalCents    int64
	currency      string
	items         []LineItem

	history            []StatusHistoryEntry
	uncommittedHistory []StatusHistoryEntry

	isConstructed bool
}

// NewOrder creates a new Order in PendingPayment status. This is used by the
// upstream checkout process and by tests; fulfillment itself never creates orders.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	customerName, customerEmail string,
	totalCents int64,
	currency string,
	items []LineItem,
) (*Order, error) {
	o := &Order{
		status:          PendingPayment,
		persistedStatus: PendingPayment,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setCustomer(customerName, customerEmail),
		o.setTotal(totalCents, currency),
	); err != nil {
		return nil, err
	}

	o.items = append([]LineItem(nil), items...)
	return o, nil
}

// RestoreOrderParams carries the persisted state needed to rehydrate an Order.
// All fields mirror the aggregate's own; optional fields stay nil/empty.
type RestoreOrderParams struct {
	ID                  kernel.UUID
	OrderNumber         string
	Status              Status
	VendorID            *kernel.UUID
	ProductionDeadline  *time.Time
	TrackingNumber      string
	Carrier             string
	ShippingServiceCode string
	ShippingLabelURL    string
	EstimatedDelivery   *time.Time
	HoldReason          string
	PickedUpAt          *time.Time
	PickedUpBy          string
	PaidAt              *time.Time
	PaymentReference    string
	VendorNotifiedAt    *time.Time
	DeliveredAt         *time.Time
	InternalNotes       string
	LandingPageID       *kernel.UUID
	CustomerName        string
	CustomerEmail       string
	TotalCents          int64
	Currency            string
	Items               []LineItem
	History             []StatusHistoryEntry
}

// RestoreOrder reconstructs an Order aggregate from persistence.
// The restored status becomes the optimistic concurrency token for the next update.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	if err := params.ID.Validate(); err != nil {
		return nil, err
	}
	if err := params.Status.Validate(); err != nil {
		return nil, err
	}
	if params.OrderNumber == "" {
		return nil, ErrOrderNumberIsRequired
	}
	if params.VendorID != nil {
		if err := params.VendorID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		id:                  params.ID,
		orderNumber:         params.OrderNumber,
		status:              params.Status,
		persistedStatus:     params.Status,
		vendorID:            params.VendorID,
		productionDeadline:  params.ProductionDeadline,
		trackingNumber:      params.TrackingNumber,
		carrier:             params.Carrier,
		shippingServiceCode: params.ShippingServiceCode,
		shippingLabelURL:    params.ShippingLabelURL,
		estimatedDelivery:   params.EstimatedDelivery,
		holdReason:          params.HoldReason,
		pickedUpAt:          params.PickedUpAt,
		pickedUpBy:          params.PickedUpBy,
		paidAt:              params.PaidAt,
		paymentReference:    params.PaymentReference,
		vendorNotifiedAt:    params.VendorNotifiedAt,
		deliveredAt:         params.DeliveredAt,
		internalNotes:       params.InternalNotes,
		landingPageID:       params.LandingPageID,
		customerName:        params.CustomerName,
		customerEmail:       params.CustomerEmail,
		totalCents:          params.TotalCents,
		currency:            params.Currency,
		items:               append([]LineItem(nil), params.Items...),
		history:             append([]StatusHistoryEntry(nil), params.History...),
		isConstructed:       true,
	}, nil
}

// Validate ensures the Order instance was properly constructed through a factory function.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-readable order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// PersistedStatus returns the status the aggregate was loaded with.
// Repositories compare against it when applying updates so that of two racing
// transitions exactly one wins.
func (o *Order) PersistedStatus() Status {
	return o.persistedStatus
}

// VendorID returns the assigned vendor's ID, or nil before assignment.
func (o *Order) VendorID() *kernel.UUID {
	return o.vendorID
}

// ProductionDeadline returns the agreed production deadline, if any.
func (o *Order) ProductionDeadline() *time.Time {
	return o.productionDeadline
}

// TrackingNumber returns the carrier tracking number recorded at shipping.
func (o *Order) TrackingNumber() string {
	return o.trackingNumber
}

// Carrier returns the carrier the order shipped with.
func (o *Order) Carrier() string {
	return o.carrier
}

// ShippingServiceCode returns the carrier service level, if recorded.
func (o *Order) ShippingServiceCode() string {
	return o.shippingServiceCode
}

// ShippingLabelURL returns the shipping label location, if recorded.
func (o *Order) ShippingLabelURL() string {
	return o.shippingLabelURL
}

// EstimatedDelivery returns the carrier's delivery estimate, if any.
func (o *Order) EstimatedDelivery() *time.Time {
	return o.estimatedDelivery
}

// HoldReason returns the reason the order is on hold, empty when not held.
func (o *Order) HoldReason() string {
	return o.holdReason
}

// PickedUpAt returns the pickup completion time, if the order was picked up.
func (o *Order) PickedUpAt() *time.Time {
	return o.pickedUpAt
}

// PickedUpBy returns who collected the order, if it was picked up.
func (o *Order) PickedUpBy() string {
	return o.pickedUpBy
}

// PaidAt returns the payment confirmation time, if payment was processed.
func (o *Order) PaidAt() *time.Time {
	return o.paidAt
}

// PaymentReference returns the gateway's payment reference, if payment was processed.
func (o *Order) PaymentReference() string {
	return o.paymentReference
}

// VendorNotifiedAt returns the time production dispatch was recorded.
func (o *Order) VendorNotifiedAt() *time.Time {
	return o.vendorNotifiedAt
}

// DeliveredAt returns the delivery confirmation time, if delivered.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// InternalNotes returns the free-form internal notes accumulated on the order.
func (o *Order) InternalNotes() string {
	return o.internalNotes
}

// LandingPageID returns the attributed marketing page reference, if any.
func (o *Order) LandingPageID() *kernel.UUID {
	return o.landingPageID
}

// CustomerName returns the customer contact name.
func (o *Order) CustomerName() string {
	return o.customerName
}

// CustomerEmail returns the customer contact email.
func (o *Order) CustomerEmail() string {
	return o.customerEmail
}

// TotalCents returns the order total in minor currency units.
func (o *Order) TotalCents() int64 {
	return o.totalCents
}

// Currency returns the order's currency code.
func (o *Order) Currency() string {
	return o.currency
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []LineItem {
	return append([]LineItem(nil), o.items...)
}

// History returns a copy of the order's status history, oldest first.
func (o *Order) History() []StatusHistoryEntry {
	return append([]StatusHistoryEntry(nil), o.history...)
}

// UncommittedHistory returns the history entries appended since the aggregate
// was loaded. The repository persists them in the same transaction as the
// status write and then calls ClearUncommittedHistory.
func (o *Order) UncommittedHistory() []StatusHistoryEntry {
	return append([]StatusHistoryEntry(nil), o.uncommittedHistory...)
}

// ClearUncommittedHistory marks all pending history entries as persisted and
// refreshes the optimistic concurrency token. Called by the repository after a
// successful update.
func (o *Order) ClearUncommittedHistory() {
	o.uncommittedHistory = nil
	o.persistedStatus = o.status
}

// AttributeToLandingPage records the marketing page the order originated from.
// Set once at intake; attribution reads it after payment.
func (o *Order) AttributeToLandingPage(pageID kernel.UUID) error {
	if err := pageID.Validate(); err != nil {
		return err
	}
	o.landingPageID = &pageID
	return nil
}

// ChangeStatus applies a generic validated transition to the target status.
//
// The transition must appear in the Status transition table; otherwise an
// *errs.InvalidTransitionError is returned and the order is left unchanged.
// On success the order's status changes, lifecycle timestamps for the target
// status are recorded, and exactly one StatusHistoryEntry is appended.
//
// Transition-specific data (tracking numbers, vendor assignment, hold reasons)
// cannot be set through this method; use the dedicated mutator for the
// transition kind instead.
func (o *Order) ChangeStatus(target Status, changedBy, notes string, at time.Time) error {
	return o.changeStatus(target, changedBy, notes, at)
}

// ProcessPayment transitions the order from PendingPayment to Confirmation,
// recording the payment time and gateway reference.
//
// Requires the order to currently be PendingPayment; a second call for the same
// payment returns *errs.StateConflictError, which is the idempotency guard
// against payment webhooks retried by the upstream gateway.
func (o *Order) ProcessPayment(paymentReference string, paidAt time.Time, changedBy string) error {
	if paymentReference == "" {
		return errs.NewValueIsRequiredError("paymentReference")
	}
	if o.status != PendingPayment {
		return errs.NewStateConflictError(o.id.String(), PendingPayment.String(), o.status.String())
	}

	note := fmt.Sprintf("payment captured, reference %s", paymentReference)
	if err := o.changeStatus(Confirmation, changedBy, note, paidAt); err != nil {
		return err
	}

	o.paidAt = &paidAt
	o.paymentReference = paymentReference
	return nil
}

// AssignVendor binds an already-validated vendor to the order and forces the
// transition into Production, recording the production deadline.
//
// Requires the order to currently be Confirmation or OnHold. Vendor existence
// and activity checks belong to the caller, which has repository access.
func (o *Order) AssignVendor(vendorID kernel.UUID, productionDeadline time.Time, changedBy, notes string, at time.Time) error {
	if err := vendorID.Validate(); err != nil {
		return err
	}
	if o.status != Confirmation && o.status != OnHold {
		return errs.NewStateConflictError(
			o.id.String(),
			statusSetString(Confirmation, OnHold),
			o.status.String(),
		)
	}

	if err := o.changeStatus(Production, changedBy, notes, at); err != nil {
		return err
	}

	o.vendorID = &vendorID
	o.productionDeadline = &productionDeadline
	// Assigning out of OnHold implicitly releases the hold.
	o.holdReason = ""
	return nil
}

// MarkShipped records carrier and tracking data and forces the transition into
// Shipped. Shipping can only begin once production is marked complete, so the
// order must currently be Production.
func (o *Order) MarkShipped(
	trackingNumber, carrier, serviceCode, labelURL string,
	estimatedDelivery *time.Time,
	changedBy, notes string,
	at time.Time,
) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	if carrier == "" {
		return errs.NewValueIsRequiredError("carrier")
	}
	if o.status != Production {
		return errs.NewStateConflictError(o.id.String(), Production.String(), o.status.String())
	}

	if err := o.changeStatus(Shipped, changedBy, notes, at); err != nil {
		return err
	}

	o.trackingNumber = trackingNumber
	o.carrier = carrier
	o.shippingServiceCode = serviceCode
	o.shippingLabelURL = labelURL
	o.estimatedDelivery = estimatedDelivery
	return nil
}

// MarkPickedUp records pickup completion and forces the transition into PickedUp.
// Requires the order to currently be ReadyForPickup or OnTheWay.
func (o *Order) MarkPickedUp(pickedUpAt time.Time, pickedUpBy, changedBy, notes string) error {
	if pickedUpBy == "" {
		return errs.NewValueIsRequiredError("pickedUpBy")
	}
	if o.status != ReadyForPickup && o.status != OnTheWay {
		return errs.NewStateConflictError(
			o.id.String(),
			statusSetString(ReadyForPickup, OnTheWay),
			o.status.String(),
		)
	}

	if err := o.changeStatus(PickedUp, changedBy, notes, pickedUpAt); err != nil {
		return err
	}

	o.pickedUpAt = &pickedUpAt
	o.pickedUpBy = pickedUpBy
	return nil
}

// PutOnHold suspends the order outside the normal forward flow, recording the
// hold reason. Orders cannot be held after they have shipped or been picked up,
// so the order must currently be Confirmation or Production.
func (o *Order) PutOnHold(reason, changedBy, adminNotes string, at time.Time) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("holdReason")
	}
	if o.status != Confirmation && o.status != Production {
		return errs.NewStateConflictError(
			o.id.String(),
			statusSetString(Confirmation, Production),
			o.status.String(),
		)
	}

	if err := o.changeStatus(OnHold, changedBy, reason, at); err != nil {
		return err
	}

	o.holdReason = reason
	if adminNotes != "" {
		o.appendInternalNote(adminNotes)
	}
	return nil
}

// ResumeFromHold returns a held order to the normal flow and clears the hold
// reason. resumeStatus must be Confirmation or Production.
func (o *Order) ResumeFromHold(resumeStatus Status, changedBy string, at time.Time) error {
	if resumeStatus != Confirmation && resumeStatus != Production {
		return errs.NewValueIsInvalidErrorWithCause(
			"resumeStatus",
			fmt.Errorf("%s is not a valid resume target", resumeStatus),
		)
	}
	if o.status != OnHold {
		return errs.NewStateConflictError(o.id.String(), OnHold.String(), o.status.String())
	}

	note := fmt.Sprintf("resumed from hold: %s", o.holdReason)
	if err := o.changeStatus(resumeStatus, changedBy, note, at); err != nil {
		return err
	}

	o.holdReason = ""
	return nil
}

// changeStatus is the single mutation point for the order's status.
// It validates the move against the transition table, applies the lifecycle
// timestamps owned by the target status, and appends exactly one history entry.
func (o *Order) changeStatus(target Status, changedBy, notes string, at time.Time) error {
	newStatus, err := o.status.Transition(target)
	if err != nil {
		return err
	}

	entry := NewStatusHistoryEntry(o.id, o.status, newStatus, notes, changedBy, at)
	o.status = newStatus
	o.applyLifecycleTimestamps(newStatus, at)
	o.history = append(o.history, entry)
	o.uncommittedHistory = append(o.uncommittedHistory, entry)
	return nil
}

// applyLifecycleTimestamps records the timestamp a target status owns.
// Production stamps vendorNotifiedAt each time it is entered, including the
// reprint loop, because the vendor is re-notified for reprints.
func (o *Order) applyLifecycleTimestamps(target Status, at time.Time) {
	switch target {
	case Production:
		o.vendorNotifiedAt = &at
	case Delivered:
		o.deliveredAt = &at
	case PickedUp:
		if o.pickedUpAt == nil {
			o.pickedUpAt = &at
		}
	}
}

func (o *Order) appendInternalNote(note string) {
	if o.internalNotes == "" {
		o.internalNotes = note
		return
	}
	o.internalNotes = o.internalNotes + "\n" + note
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return ErrOrderNumberIsRequired
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setCustomer(name, email string) error {
	if email == "" {
		return ErrCustomerEmailIsRequired
	}
	o.customerName = name
	o.customerEmail = email
	return nil
}

func (o *Order) setTotal(totalCents int64, currency string) error {
	if totalCents <= 0 {
		return ErrTotalIsInvalid
	}
	if currency == "" {
		return errs.NewValueIsRequiredError("currency")
	}
	o.totalCents = totalCents
	o.currency = currency
	return nil
}

// statusSetString renders a set of expected statuses for conflict errors,
// e.g. "CONFIRMATION or ON_HOLD".
func statusSetString(statuses ...Status) string {
	out := ""
	for i, s := range statuses {
		if i > 0 {
			out += " or "
		}
		out += s.String()
	}
	return out
}
