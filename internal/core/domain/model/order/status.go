package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a print order.
// It implements a state machine with a fixed transition table to ensure
// orders follow the correct fulfillment workflow.
//
// State transitions:
//
//	PendingPayment ──> Confirmation ──> Production ──┬──> Shipped ────────> Delivered
//	      │                  │              │        ├──> ReadyForPickup ┐
//	      └> PaymentDeclined └──> OnHold <──┘        └──> OnTheWay ──────┴> PickedUp
//
//	Shipped/ReadyForPickup/OnTheWay/PickedUp/Delivered ──> Reprint ──> Production
//	Cancelled and Refunded are terminal.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence, events, and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// PendingPayment is the initial status assigned by the upstream checkout.
	// Orders in this status are waiting for the payment gateway to confirm capture.
	PendingPayment

	// PaymentDeclined indicates the payment gateway rejected the capture.
	// The customer may retry payment or the order may be cancelled.
	PaymentDeclined

	// Confirmation indicates payment succeeded and the order awaits vendor assignment.
	Confirmation

	// Production indicates the order has been dispatched to a print vendor.
	Production

	// OnHold suspends an order outside the normal forward flow, e.g. while
	// waiting on customer artwork corrections.
	OnHold

	// Shipped indicates the order left the vendor with a carrier.
	Shipped

	// ReadyForPickup indicates the order awaits customer pickup at a location.
	ReadyForPickup

	// OnTheWay indicates the order is being couriered to a pickup point.
	OnTheWay

	// PickedUp indicates the customer collected the order.
	PickedUp

	// Delivered indicates the carrier confirmed delivery.
	Delivered

	// Reprint loops a defective order back into production.
	Reprint

	// Cancelled is a terminal state with no outgoing transitions.
	Cancelled

	// Refunded is a terminal state with no outgoing transitions. It is reached
	// through the payment gateway's out-of-band refund flow, never through the
	// fulfillment transition table.
	Refunded
)

// getStatusStrings returns a map of Status values to their string representations.
// The strings double as the wire names used in integration events and history records.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "UNKNOWN",
		PendingPayment:  "PENDING_PAYMENT",
		PaymentDeclined: "PAYMENT_DECLINED",
		Confirmation:    "CONFIRMATION",
		Production:      "PRODUCTION",
		OnHold:          "ON_HOLD",
		Shipped:         "SHIPPED",
		ReadyForPickup:  "READY_FOR_PICKUP",
		OnTheWay:        "ON_THE_WAY",
		PickedUp:        "PICKED_UP",
		Delivered:       "DELIVERED",
		Reprint:         "REPRINT",
		Cancelled:       "CANCELLED",
		Refunded:        "REFUNDED",
	}
}

// getTransitionTable returns the fixed adjacency table of allowed transitions.
// This table is the single source of truth for transition validity; every other
// component asks it through CanTransitionTo rather than duplicating the rules.
func getTransitionTable() map[Status][]Status {
	return map[Status][]Status{
		PendingPayment:  {Confirmation, PaymentDeclined, Cancelled},
		PaymentDeclined: {PendingPayment, Cancelled},
		Confirmation:    {Production, OnHold, Cancelled},
		OnHold:          {Confirmation, Production, Cancelled},
		Production:      {Shipped, ReadyForPickup, OnTheWay, OnHold, Reprint},
		Shipped:         {Delivered, Reprint},
		ReadyForPickup:  {PickedUp, Reprint},
		OnTheWay:        {PickedUp, Reprint},
		PickedUp:        {Reprint},
		Delivered:       {Reprint},
		Reprint:         {Production},
		Cancelled:       {},
		Refunded:        {},
	}
}

// AllStatuses returns every valid status, in declaration order.
// Useful for exhaustive table coverage in tests and for admin tooling.
func AllStatuses() []Status {
	return []Status{
		PendingPayment, PaymentDeclined, Confirmation, Production, OnHold,
		Shipped, ReadyForPickup, OnTheWay, PickedUp, Delivered, Reprint,
		Cancelled, Refunded,
	}
}

// StatusFromString parses a wire name (e.g. "READY_FOR_PICKUP") into a Status.
// Returns an error for unknown names; parsing is case-insensitive.
func StatusFromString(s string) (Status, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for status, name := range getStatusStrings() {
		if status != Unknown && name == upper {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is a member of the enumeration.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the wire name of the status, e.g. "PENDING_PAYMENT".
// Safe to call on any Status value; invalid values render as "UNKNOWN".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// CanTransitionTo reports whether the move from s to target appears in the
// transition table. It never has side effects.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getTransitionTable()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses reachable from s in one transition.
// Terminal states return an empty slice.
func (s Status) NextStatuses() []Status {
	next := getTransitionTable()[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return len(getTransitionTable()[s]) == 0 && s != Unknown
}

// Transition validates the move from s to target against the transition table.
//
// Returns:
//   - (target, nil) when the move is allowed
//   - (Unknown, *errs.InvalidTransitionError) otherwise
//
// This method is used by Order.changeStatus to enforce state transitions.
func (s Status) Transition(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return target, nil
}
