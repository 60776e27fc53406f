package commands

import (
	"context"
	"time"
)

// ResumeFromHoldCommandHandler releases a hold and returns the order to the
// chosen point of the normal flow.
type ResumeFromHoldCommandHandler struct {
	uowFactory  OrderUoWFactory
	sideEffects *SideEffectDispatcher
}

// NewResumeFromHoldCommandHandler creates a handler for releasing holds.
func NewResumeFromHoldCommandHandler(uowFactory OrderUoWFactory, sideEffects *SideEffectDispatcher) ResumeFromHoldCommandHandler {
	return ResumeFromHoldCommandHandler{
		uowFactory:  uowFactory,
		sideEffects: sideEffects,
	}
}

// Handle moves the held order to the requested resume status and clears the
// hold reason. Invalid resume targets come back as *errs.ValueIsInvalidError
// from the aggregate.
func (h ResumeFromHoldCommandHandler) Handle(ctx context.Context, command ResumeFromHoldCommand) error {
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

	if err = o.ResumeFromHold(command.ResumeStatus(), command.Actor(), time.Now().UTC()); err != nil {
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
