package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrMarkPickedUpCommandIsNotConstructed = errors.New(
		"MarkPickedUpCommand must be created via NewMarkPickedUpCommand constructor",
	)
	ErrPickedUpByIsRequired = errors.New("picked up by is required")
)

// MarkPickedUpCommand records that a customer collected their order, either
// at the counter or from a courier en route.
type MarkPickedUpCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	pickedUpAt time.Time
	pickedUpBy string
	actor      string
	notes      string

	guard guard.ConstructorGuard
}

// NewMarkPickedUpCommand creates a command recording a completed pickup.
// pickedUpBy identifies who collected the order and is required; a zero
// pickedUpAt defaults to the current time. An empty actor is recorded as
// SystemActor.
func NewMarkPickedUpCommand(
	orderID kernel.UUID,
	pickedUpAt time.Time,
	pickedUpBy, actor, notes string,
) (MarkPickedUpCommand, error) {
	cmd := MarkPickedUpCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPickedUpBy(pickedUpBy),
	); err != nil {
		return MarkPickedUpCommand{}, err
	}

	if pickedUpAt.IsZero() {
		pickedUpAt = time.Now().UTC()
	}

	cmd.pickedUpAt = pickedUpAt
	cmd.actor = actorOrSystem(actor)
	cmd.notes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrMarkPickedUpCommandIsNotConstructed if validation fails.
func (c MarkPickedUpCommand) Validate() error {
	return c.guard.Validate(ErrMarkPickedUpCommandIsNotConstructed)
}

// OrderID returns the collected order's identifier.
func (c MarkPickedUpCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PickedUpAt returns when the order was collected.
func (c MarkPickedUpCommand) PickedUpAt() time.Time {
	return c.pickedUpAt
}

// PickedUpBy returns who collected the order.
func (c MarkPickedUpCommand) PickedUpBy() string {
	return c.pickedUpBy
}

// Actor returns who recorded the pickup.
func (c MarkPickedUpCommand) Actor() string {
	return c.actor
}

// Notes returns the free-form note to record on the history entry.
func (c MarkPickedUpCommand) Notes() string {
	return c.notes
}

func (c *MarkPickedUpCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *MarkPickedUpCommand) setPickedUpBy(pickedUpBy string) error {
	if pickedUpBy == "" {
		return ErrPickedUpByIsRequired
	}

	c.pickedUpBy = pickedUpBy
	return nil
}
