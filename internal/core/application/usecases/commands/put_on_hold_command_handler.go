package commands

import (
	"context"
	"time"
)

// PutOnHoldCommandHandler suspends an order. Only orders still in the shop's
// hands can be held; once shipped or picked up the order is out of reach and
// the aggregate rejects the hold.
type PutOnHoldCommandHandler struct {
	uowFactory  OrderUoWFactory
	sideEffects *SideEffectDispatcher
}

// NewPutOnHoldCommandHandler creates a handler for placing holds.
func NewPutOnHoldCommandHandler(uowFactory OrderUoWFactory, sideEffects *SideEffectDispatcher) PutOnHoldCommandHandler {
	return PutOnHoldCommandHandler{
		uowFactory:  uowFactory,
		sideEffects: sideEffects,
	}
}

// Handle moves the order to on hold, recording the reason. The customer is
// told about the hold after commit.
func (h PutOnHoldCommandHandler) Handle(ctx context.Context, command PutOnHoldCommand) error {
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

	if err = o.PutOnHold(command.Reason(), command.Actor(), command.AdminNotes(), time.Now().UTC()); err != nil {
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
