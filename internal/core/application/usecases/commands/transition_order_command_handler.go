package commands

import (
	"context"
	"time"

	"fulfillment/internal/pkg/errs"
)

// TransitionOrderCommandHandler applies a generic status transition.
//
// The handler enforces the caller's observed status twice: once against the
// loaded aggregate, and again through the repository's conditional update, so
// of two racing transitions exactly one wins and the loser receives a
// *errs.StateConflictError.
//
// Example:
//
//	cmd, _ := NewTransitionOrderCommand(orderID, order.Production, order.ReadyForPickup, "ops@shop", "")
//	err := handler.Handle(ctx, cmd)
//	var conflict *errs.StateConflictError
//	if errors.As(err, &conflict) {
//	    // the order moved on; re-read and decide again
//	}
type TransitionOrderCommandHandler struct {
	uowFactory  OrderUoWFactory
	sideEffects *SideEffectDispatcher
}

// NewTransitionOrderCommandHandler creates a handler for generic transitions.
func NewTransitionOrderCommandHandler(uowFactory OrderUoWFactory, sideEffects *SideEffectDispatcher) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory:  uowFactory,
		sideEffects: sideEffects,
	}
}

// Handle loads the order, verifies the observed status, applies the
// transition and persists the status write together with its history entry.
// Side effects fire only after the transaction has committed.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, command TransitionOrderCommand) error {
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

	if o.Status() != command.FromStatus() {
		return errs.NewStateConflictError(
			o.ID().String(),
			command.FromStatus().String(),
			o.Status().String(),
		)
	}

	if err = o.ChangeStatus(command.ToStatus(), command.Actor(), command.Notes(), time.Now().UTC()); err != nil {
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
