package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrProcessPaymentCommandIsNotConstructed = errors.New(
		"ProcessPaymentCommand must be created via NewProcessPaymentCommand constructor",
	)
	ErrPaymentReferenceIsRequired = errors.New("payment reference is required")
	ErrPaymentAmountIsInvalid     = errors.New("payment amount must be greater than 0")
)

// ProcessPaymentCommand records a captured payment reported by the payment
// gateway webhook and confirms the order.
//
// Gateways retry webhooks; the handler treats a second delivery for an
// already-confirmed order as a state conflict, not as a second confirmation.
type ProcessPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	paymentReference string
	amountCents      int64

	guard guard.ConstructorGuard
}

// NewProcessPaymentCommand creates a command from a payment webhook payload.
// The gateway reference and a positive amount are required.
func NewProcessPaymentCommand(orderID kernel.UUID, paymentReference string, amountCents int64) (ProcessPaymentCommand, error) {
	cmd := ProcessPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPaymentReference(paymentReference),
		cmd.setAmount(amountCents),
	); err != nil {
		return ProcessPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrProcessPaymentCommandIsNotConstructed if validation fails.
func (c ProcessPaymentCommand) Validate() error {
	return c.guard.Validate(ErrProcessPaymentCommandIsNotConstructed)
}

// OrderID returns the paid order's identifier.
func (c ProcessPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PaymentReference returns the gateway's reference for the captured payment.
func (c ProcessPaymentCommand) PaymentReference() string {
	return c.paymentReference
}

// AmountCents returns the captured amount in minor currency units.
func (c ProcessPaymentCommand) AmountCents() int64 {
	return c.amountCents
}

func (c *ProcessPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ProcessPaymentCommand) setPaymentReference(reference string) error {
	if reference == "" {
		return ErrPaymentReferenceIsRequired
	}

	c.paymentReference = reference
	return nil
}

func (c *ProcessPaymentCommand) setAmount(amountCents int64) error {
	if amountCents <= 0 {
		return ErrPaymentAmountIsInvalid
	}

	c.amountCents = amountCents
	return nil
}
