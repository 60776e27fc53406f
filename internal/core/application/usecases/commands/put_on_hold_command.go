package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrPutOnHoldCommandIsNotConstructed = errors.New(
		"PutOnHoldCommand must be created via NewPutOnHoldCommand constructor",
	)
	ErrHoldReasonIsRequired = errors.New("hold reason is required")
)

// PutOnHoldCommand suspends an order outside the normal forward flow, e.g.
// for an artwork problem, a customer request, or a payment dispute.
type PutOnHoldCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	reason     string
	adminNotes string
	actor      string

	guard guard.ConstructorGuard
}

// NewPutOnHoldCommand creates a command to suspend an order. The reason is
// required and becomes both the hold reason and the history note; adminNotes
// are appended to the order's internal notes. An empty actor is recorded as
// SystemActor.
func NewPutOnHoldCommand(orderID kernel.UUID, reason, adminNotes, actor string) (PutOnHoldCommand, error) {
	cmd := PutOnHoldCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setReason(reason),
	); err != nil {
		return PutOnHoldCommand{}, err
	}

	cmd.adminNotes = adminNotes
	cmd.actor = actorOrSystem(actor)
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPutOnHoldCommandIsNotConstructed if validation fails.
func (c PutOnHoldCommand) Validate() error {
	return c.guard.Validate(ErrPutOnHoldCommandIsNotConstructed)
}

// OrderID returns the order to suspend.
func (c PutOnHoldCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns why the order is being held.
func (c PutOnHoldCommand) Reason() string {
	return c.reason
}

// AdminNotes returns internal notes to append to the order, possibly empty.
func (c PutOnHoldCommand) AdminNotes() string {
	return c.adminNotes
}

// Actor returns the operator who placed the hold.
func (c PutOnHoldCommand) Actor() string {
	return c.actor
}

func (c *PutOnHoldCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PutOnHoldCommand) setReason(reason string) error {
	if reason == "" {
		return ErrHoldReasonIsRequired
	}

	c.reason = reason
	return nil
}
