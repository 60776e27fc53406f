package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
)

// ProcessPaymentCommandHandler confirms an order when its payment is captured.
//
// Idempotency: the aggregate only accepts payment in pending payment status,
// so a retried webhook for an already-confirmed order returns
// *errs.StateConflictError and records nothing. Callers translating for the
// gateway typically report that as success.
type ProcessPaymentCommandHandler struct {
	uowFactory  OrderUoWFactory
	sideEffects *SideEffectDispatcher
}

// NewProcessPaymentCommandHandler creates a handler for payment webhooks.
func NewProcessPaymentCommandHandler(uowFactory OrderUoWFactory, sideEffects *SideEffectDispatcher) ProcessPaymentCommandHandler {
	return ProcessPaymentCommandHandler{
		uowFactory:  uowFactory,
		sideEffects: sideEffects,
	}
}

// Handle verifies the captured amount against the order total, confirms the
// order and, after commit, sends the confirmation notification and reports
// the conversion to attribution.
func (h ProcessPaymentCommandHandler) Handle(ctx context.Context, command ProcessPaymentCommand) error {
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

	if command.AmountCents() != o.TotalCents() {
		return errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("captured %d, order total is %d", command.AmountCents(), o.TotalCents()),
		)
	}

	if err = o.ProcessPayment(command.PaymentReference(), time.Now().UTC(), PaymentGatewayActor); err != nil {
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
	h.sideEffects.PaymentRecorded(ctx, o)
	return nil
}
