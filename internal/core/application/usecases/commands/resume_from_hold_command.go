package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrResumeFromHoldCommandIsNotConstructed = errors.New(
	"ResumeFromHoldCommand must be created via NewResumeFromHoldCommand constructor",
)

// ResumeFromHoldCommand returns a held order to the normal flow. The operator
// chooses where the order resumes: back to confirmation when the vendor
// assignment needs to be redone, or straight to production when the hold
// cause is resolved.
type ResumeFromHoldCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	resumeStatus order.Status
	actor        string

	guard guard.ConstructorGuard
}

// NewResumeFromHoldCommand creates a command to release a hold. resumeStatus
// must be a valid status; whether it is an allowed resume target is decided
// by the aggregate. An empty actor is recorded as SystemActor.
func NewResumeFromHoldCommand(orderID kernel.UUID, resumeStatus order.Status, actor string) (ResumeFromHoldCommand, error) {
	cmd := ResumeFromHoldCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setResumeStatus(resumeStatus),
	); err != nil {
		return ResumeFromHoldCommand{}, err
	}

	cmd.actor = actorOrSystem(actor)
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrResumeFromHoldCommandIsNotConstructed if validation fails.
func (c ResumeFromHoldCommand) Validate() error {
	return c.guard.Validate(ErrResumeFromHoldCommandIsNotConstructed)
}

// OrderID returns the held order's identifier.
func (c ResumeFromHoldCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ResumeStatus returns the status the order should resume in.
func (c ResumeFromHoldCommand) ResumeStatus() order.Status {
	return c.resumeStatus
}

// Actor returns the operator releasing the hold.
func (c ResumeFromHoldCommand) Actor() string {
	return c.actor
}

func (c *ResumeFromHoldCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ResumeFromHoldCommand) setResumeStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.resumeStatus = status
	return nil
}
