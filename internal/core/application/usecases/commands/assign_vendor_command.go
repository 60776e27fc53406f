package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrAssignVendorCommandIsNotConstructed = errors.New(
		"AssignVendorCommand must be created via NewAssignVendorCommand constructor",
	)
	ErrProductionDeadlineIsRequired = errors.New("production deadline is required")
)

// AssignVendorCommand sends an order into production at a chosen vendor shop.
// Operators issue it from the back office after reviewing a confirmed order,
// or to restart production on a held order.
type AssignVendorCommand struct { //nolint:recvcheck //using for validation
	orderID            kernel.UUID
	vendorID           kernel.UUID
	productionDeadline time.Time
	actor              string
	notes              string

	guard guard.ConstructorGuard
}

// NewAssignVendorCommand creates a command to assign a vendor to an order.
// Both identifiers must be valid and the deadline must be set. An empty actor
// is recorded as SystemActor.
func NewAssignVendorCommand(
	orderID, vendorID kernel.UUID,
	productionDeadline time.Time,
	actor, notes string,
) (AssignVendorCommand, error) {
	cmd := AssignVendorCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setVendorID(vendorID),
		cmd.setProductionDeadline(productionDeadline),
	); err != nil {
		return AssignVendorCommand{}, err
	}

	cmd.actor = actorOrSystem(actor)
	cmd.notes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignVendorCommandIsNotConstructed if validation fails.
func (c AssignVendorCommand) Validate() error {
	return c.guard.Validate(ErrAssignVendorCommandIsNotConstructed)
}

// OrderID returns the order to send into production.
func (c AssignVendorCommand) OrderID() kernel.UUID {
	return c.orderID
}

// VendorID returns the chosen vendor shop.
func (c AssignVendorCommand) VendorID() kernel.UUID {
	return c.vendorID
}

// ProductionDeadline returns the deadline agreed with the vendor.
func (c AssignVendorCommand) ProductionDeadline() time.Time {
	return c.productionDeadline
}

// Actor returns the operator who assigned the vendor.
func (c AssignVendorCommand) Actor() string {
	return c.actor
}

// Notes returns instructions forwarded to the vendor with the dispatch.
func (c AssignVendorCommand) Notes() string {
	return c.notes
}

func (c *AssignVendorCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AssignVendorCommand) setVendorID(vendorID kernel.UUID) error {
	if err := vendorID.Validate(); err != nil {
		return err
	}

	c.vendorID = vendorID
	return nil
}

func (c *AssignVendorCommand) setProductionDeadline(deadline time.Time) error {
	if deadline.IsZero() {
		return ErrProductionDeadlineIsRequired
	}

	c.productionDeadline = deadline
	return nil
}
