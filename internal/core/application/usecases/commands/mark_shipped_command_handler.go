package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
)

// MarkShippedCommandHandler records a shipment reported by the producing vendor.
//
// When the order has an assigned vendor with a configured carrier list, the
// reported carrier must be on it; a vendor reporting a carrier it has no
// contract with is a data error worth rejecting early.
type MarkShippedCommandHandler struct {
	uowFactory  UoWFactory
	sideEffects *SideEffectDispatcher
}

// NewMarkShippedCommandHandler creates a handler for vendor shipping reports.
func NewMarkShippedCommandHandler(uowFactory UoWFactory, sideEffects *SideEffectDispatcher) MarkShippedCommandHandler {
	return MarkShippedCommandHandler{
		uowFactory:  uowFactory,
		sideEffects: sideEffects,
	}
}

// Handle verifies the carrier against the vendor's capabilities, records the
// tracking data and moves the order to shipped. The customer's shipping
// notification fires after commit.
func (h MarkShippedCommandHandler) Handle(ctx context.Context, command MarkShippedCommand) error {
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

	if vendorID := o.VendorID(); vendorID != nil {
		v, err := uow.VendorRepository().Get(ctx, *vendorID)
		if err != nil {
			return err
		}
		if !v.SupportsCarrier(command.Carrier()) {
			return errs.NewValueIsInvalidErrorWithCause(
				"carrier",
				fmt.Errorf("vendor %s does not ship with %s", v.Name(), command.Carrier()),
			)
		}
	}

	if err = o.MarkShipped(
		command.TrackingNumber(),
		command.Carrier(),
		command.ServiceCode(),
		command.LabelURL(),
		command.EstimatedDelivery(),
		command.Actor(),
		command.Notes(),
		time.Now().UTC(),
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
