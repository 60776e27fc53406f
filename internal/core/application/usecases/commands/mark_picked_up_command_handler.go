package commands

import (
	"context"
)

// MarkPickedUpCommandHandler completes an order through the pickup flow.
// Accepts orders waiting at the counter as well as orders a courier is
// hand-delivering.
type MarkPickedUpCommandHandler struct {
	uowFactory  OrderUoWFactory
	sideEffects *SideEffectDispatcher
}

// NewMarkPickedUpCommandHandler creates a handler for pickup completion.
func NewMarkPickedUpCommandHandler(uowFactory OrderUoWFactory, sideEffects *SideEffectDispatcher) MarkPickedUpCommandHandler {
	return MarkPickedUpCommandHandler{
		uowFactory:  uowFactory,
		sideEffects: sideEffects,
	}
}

// Handle records who collected the order and when, and moves it to its
// terminal picked up status. The pickup confirmation fires after commit; a
// failed confirmation never un-completes the order.
func (h MarkPickedUpCommandHandler) Handle(ctx context.Context, command MarkPickedUpCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	o, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if err = o.MarkPickedUp(
		command.PickedUpAt(),
		command.PickedUpBy(),
		command.Actor(),
		command.Notes(),
	); err != nil {
		return err
	}
	entry := lastUncommittedEntry(o)

	if err = ordersRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.sideEffects.OrderTransitioned(ctx, o, entry)
	return nil
}
