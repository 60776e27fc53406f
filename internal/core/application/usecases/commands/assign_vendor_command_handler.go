package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
)

// AssignVendorCommandHandler sends an order into production at a vendor shop.
//
// The vendor must exist and be active; assignments to deactivated vendors are
// rejected before the order is touched. The vendor dispatch itself is a side
// effect and fires only after the transition has committed, so a vendor whose
// inbox is down still gets the order recorded against it.
type AssignVendorCommandHandler struct {
	uowFactory  UoWFactory
	sideEffects *SideEffectDispatcher
}

// NewAssignVendorCommandHandler creates a handler for vendor assignment.
// Requires the cross-aggregate UoWFactory since it reads vendors while
// mutating orders.
func NewAssignVendorCommandHandler(uowFactory UoWFactory, sideEffects *SideEffectDispatcher) AssignVendorCommandHandler {
	return AssignVendorCommandHandler{
		uowFactory:  uowFactory,
		sideEffects: sideEffects,
	}
}

// Handle validates the vendor, moves the order into production and, after
// commit, dispatches the production order to the vendor shop.
func (h AssignVendorCommandHandler) Handle(ctx context.Context, command AssignVendorCommand) error {
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
	vendorsRepo := uow.VendorRepository()

	o, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	v, err := vendorsRepo.Get(ctx, command.VendorID())
	if err != nil {
		return err
	}

	if !v.IsActive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"vendorId",
			fmt.Errorf("vendor %s is not active", v.ID()),
		)
	}

	if err = o.AssignVendor(
		command.VendorID(),
		command.ProductionDeadline(),
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
	h.sideEffects.VendorAssigned(ctx, o, v, command.Notes())
	return nil
}
