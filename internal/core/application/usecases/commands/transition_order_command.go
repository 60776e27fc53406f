package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand requests a generic status transition for an order.
// fromStatus is the status the caller observed; the handler refuses the
// transition when the order has moved on in the meantime, which makes retried
// and concurrent requests safe.
//
// Transitions that carry extra data (payment, vendor assignment, shipping,
// pickup, holds) have dedicated commands; this one covers the rest of the
// transition table, e.g. Production to ReadyForPickup or Shipped to Delivered.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	fromStatus order.Status
	toStatus   order.Status
	actor      string
	notes      string

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to transition an order from an
// observed status to a target status. Both statuses must be valid members of
// the enumeration; whether the pair is allowed is decided by the aggregate.
// An empty actor is recorded as SystemActor.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	fromStatus, toStatus order.Status,
	actor, notes string,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatuses(fromStatus, toStatus),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	cmd.actor = actorOrSystem(actor)
	cmd.notes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrTransitionOrderCommandIsNotConstructed if validation fails.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// FromStatus returns the status the caller observed before requesting the move.
func (c TransitionOrderCommand) FromStatus() order.Status {
	return c.fromStatus
}

// ToStatus returns the requested target status.
func (c TransitionOrderCommand) ToStatus() order.Status {
	return c.toStatus
}

// Actor returns who requested the transition.
func (c TransitionOrderCommand) Actor() string {
	return c.actor
}

// Notes returns the free-form note to record on the history entry.
func (c TransitionOrderCommand) Notes() string {
	return c.notes
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setStatuses(from, to order.Status) error {
	if err := errors.Join(from.Validate(), to.Validate()); err != nil {
		return err
	}

	c.fromStatus = from
	c.toStatus = to
	return nil
}
