package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrMarkShippedCommandIsNotConstructed = errors.New(
		"MarkShippedCommand must be created via NewMarkShippedCommand constructor",
	)
	ErrTrackingNumberIsRequired = errors.New("tracking number is required")
	ErrCarrierIsRequired        = errors.New("carrier is required")
)

// MarkShippedCommand records that a vendor handed the finished order to a
// carrier. Vendors report it through the shipping webhook with the tracking
// data from their label purchase.
type MarkShippedCommand struct { //nolint:recvcheck //using for validation
	orderID           kernel.UUID
	trackingNumber    string
	carrier           string
	serviceCode       string
	labelURL          string
	estimatedDelivery *time.Time
	actor             string
	notes             string

	guard guard.ConstructorGuard
}

// NewMarkShippedCommand creates a command from a vendor's shipping report.
// Tracking number and carrier are required; service code, label URL and the
// delivery estimate are optional. An empty actor is recorded as SystemActor.
func NewMarkShippedCommand(
	orderID kernel.UUID,
	trackingNumber, carrier, serviceCode, labelURL string,
	estimatedDelivery *time.Time,
	actor, notes string,
) (MarkShippedCommand, error) {
	cmd := MarkShippedCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTracking(trackingNumber, carrier),
	); err != nil {
		return MarkShippedCommand{}, err
	}

	cmd.serviceCode = serviceCode
	cmd.labelURL = labelURL
	cmd.estimatedDelivery = estimatedDelivery
	cmd.actor = actorOrSystem(actor)
	cmd.notes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrMarkShippedCommandIsNotConstructed if validation fails.
func (c MarkShippedCommand) Validate() error {
	return c.guard.Validate(ErrMarkShippedCommandIsNotConstructed)
}

// OrderID returns the shipped order's identifier.
func (c MarkShippedCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TrackingNumber returns the carrier tracking number.
func (c MarkShippedCommand) TrackingNumber() string {
	return c.trackingNumber
}

// Carrier returns the carrier the vendor shipped with.
func (c MarkShippedCommand) Carrier() string {
	return c.carrier
}

// ServiceCode returns the carrier service level, if reported.
func (c MarkShippedCommand) ServiceCode() string {
	return c.serviceCode
}

// LabelURL returns the shipping label location, if reported.
func (c MarkShippedCommand) LabelURL() string {
	return c.labelURL
}

// EstimatedDelivery returns the carrier's delivery estimate, or nil.
func (c MarkShippedCommand) EstimatedDelivery() *time.Time {
	return c.estimatedDelivery
}

// Actor returns who reported the shipment.
func (c MarkShippedCommand) Actor() string {
	return c.actor
}

// Notes returns the free-form note to record on the history entry.
func (c MarkShippedCommand) Notes() string {
	return c.notes
}

func (c *MarkShippedCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *MarkShippedCommand) setTracking(trackingNumber, carrier string) error {
	if trackingNumber == "" {
		return ErrTrackingNumberIsRequired
	}
	if carrier == "" {
		return ErrCarrierIsRequired
	}

	c.trackingNumber = trackingNumber
	c.carrier = carrier
	return nil
}
