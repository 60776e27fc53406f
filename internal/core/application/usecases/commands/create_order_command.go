package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderNumberIsRequired   = errors.New("order number is required")
	ErrCustomerEmailIsRequired = errors.New("customer email is required")
	ErrTotalIsInvalid          = errors.New("total must be greater than 0")
)

// CreateOrderCommand registers a paid-for print order coming out of checkout.
// The order starts in pending payment and waits for the payment webhook.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, "ORD-2024-1042", "Ada", "ada@example.com",
//	    4999, "EUR", items, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	orderNumber   string
	customerName  string
	customerEmail string
	totalCents    int64
	currency      string
	items         []order.LineItem
	landingPageID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new print order.
// Validates that the order ID is valid, the order number and customer email
// are present, and the total is positive. landingPageID is optional marketing
// attribution.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	orderNumber, customerName, customerEmail string,
	totalCents int64,
	currency string,
	items []order.LineItem,
	landingPageID *kernel.UUID,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOrderNumber(orderNumber),
		cmd.setCustomer(customerName, customerEmail),
		cmd.setTotal(totalCents, currency),
		cmd.setLandingPageID(landingPageID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.items = append([]order.LineItem(nil), items...)
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrderNumber returns the human-readable order number.
func (c CreateOrderCommand) OrderNumber() string {
	return c.orderNumber
}

// CustomerName returns the customer contact name.
func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

// CustomerEmail returns the customer contact email.
func (c CreateOrderCommand) CustomerEmail() string {
	return c.customerEmail
}

// TotalCents returns the order total in minor currency units.
func (c CreateOrderCommand) TotalCents() int64 {
	return c.totalCents
}

// Currency returns the order's currency code.
func (c CreateOrderCommand) Currency() string {
	return c.currency
}

// Items returns the configured print products on the order.
func (c CreateOrderCommand) Items() []order.LineItem {
	return append([]order.LineItem(nil), c.items...)
}

// LandingPageID returns the attributed marketing page, or nil.
func (c CreateOrderCommand) LandingPageID() *kernel.UUID {
	return c.landingPageID
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return ErrOrderNumberIsRequired
	}

	c.orderNumber = orderNumber
	return nil
}

func (c *CreateOrderCommand) setCustomer(name, email string) error {
	if email == "" {
		return ErrCustomerEmailIsRequired
	}

	c.customerName = name
	c.customerEmail = email
	return nil
}

func (c *CreateOrderCommand) setTotal(totalCents int64, currency string) error {
	if totalCents <= 0 {
		return ErrTotalIsInvalid
	}

	c.totalCents = totalCents
	c.currency = currency
	return nil
}

func (c *CreateOrderCommand) setLandingPageID(pageID *kernel.UUID) error {
	if pageID == nil {
		return nil
	}
	if err := pageID.Validate(); err != nil {
		return err
	}

	c.landingPageID = pageID
	return nil
}
