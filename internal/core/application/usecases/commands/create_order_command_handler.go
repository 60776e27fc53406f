package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// CreateOrderCommandHandler persists new orders arriving from checkout.
// The order enters the state machine in pending payment; no side effects fire
// until the first transition.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order intake.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle builds the order aggregate from the command and persists it.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	o, err := order.NewOrder(
		command.OrderID(),
		command.OrderNumber(),
		command.CustomerName(),
		command.CustomerEmail(),
		command.TotalCents(),
		command.Currency(),
		command.Items(),
	)
	if err != nil {
		return err
	}

	if pageID := command.LandingPageID(); pageID != nil {
		if err = o.AttributeToLandingPage(*pageID); err != nil {
			return err
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
