package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarkShippedCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	v := testVendor(t)
	o := orderInStatus(t, order.Confirmation)
	require.NoError(t, o.AssignVendor(v.ID(), time.Now().UTC().Add(72*time.Hour), "ops@shop", "", time.Now().UTC()))
	o.ClearUncommittedHistory()

	eta := time.Now().UTC().Add(4 * 24 * time.Hour)
	cmd, err := commands.NewMarkShippedCommand(o.ID(), "1Z999AA10123456784", "UPS", "ups_ground", "https://labels.example/1", &eta, "", "")
	require.NoError(t, err)

	ordersRepo := new(MockOrderRepository)
	vendorsRepo := new(MockVendorRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(ordersRepo).Once()
	uow.On("VendorRepository").Return(vendorsRepo).Once()
	ordersRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	vendorsRepo.On("Get", mock.Anything, v.ID()).Return(v, nil).Once()
	ordersRepo.On("Update", mock.Anything, o).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMarkShippedCommandHandler(factory, noopSideEffects())
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, order.Shipped, o.Status())
	require.Equal(t, "1Z999AA10123456784", o.TrackingNumber())
	require.Equal(t, "UPS", o.Carrier())
	require.Equal(t, eta, *o.EstimatedDelivery())

	ordersRepo.AssertExpectations(t)
	vendorsRepo.AssertExpectations(t)
}

func TestMarkShippedCommandHandler_Handle_UnsupportedCarrier(t *testing.T) {
	ctx := t.Context()
	v := testVendor(t) // ships DHL and UPS only
	o := orderInStatus(t, order.Confirmation)
	require.NoError(t, o.AssignVendor(v.ID(), time.Now().UTC().Add(72*time.Hour), "ops@shop", "", time.Now().UTC()))
	o.ClearUncommittedHistory()

	cmd, err := commands.NewMarkShippedCommand(o.ID(), "9400100000000000000000", "USPS", "", "", nil, "", "")
	require.NoError(t, err)

	ordersRepo := new(MockOrderRepository)
	vendorsRepo := new(MockVendorRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(ordersRepo).Once()
	uow.On("VendorRepository").Return(vendorsRepo).Once()
	ordersRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	vendorsRepo.On("Get", mock.Anything, v.ID()).Return(v, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMarkShippedCommandHandler(factory, noopSideEffects())
	handleErr := h.Handle(ctx, cmd)

	require.ErrorIs(t, handleErr, errs.ErrValueIsInvalid)
	require.Equal(t, order.Production, o.Status())
	require.Empty(t, o.TrackingNumber())
}

func TestMarkShippedCommandHandler_Handle_NoVendorSkipsCarrierCheck(t *testing.T) {
	ctx := t.Context()
	o := orderInStatus(t, order.Production) // walked generically, no vendor bound

	cmd, err := commands.NewMarkShippedCommand(o.ID(), "JD014600003RF", "DPD", "", "", nil, "", "")
	require.NoError(t, err)

	ordersRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(ordersRepo).Once()
	ordersRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	ordersRepo.On("Update", mock.Anything, o).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMarkShippedCommandHandler(factory, noopSideEffects())
	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, order.Shipped, o.Status())
}

func TestMarkShippedCommandHandler_Handle_WrongStatus(t *testing.T) {
	ctx := t.Context()
	o := orderInStatus(t, order.Confirmation)

	cmd, err := commands.NewMarkShippedCommand(o.ID(), "1Z999AA10123456784", "UPS", "", "", nil, "", "")
	require.NoError(t, err)

	ordersRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(ordersRepo).Once()
	ordersRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMarkShippedCommandHandler(factory, noopSideEffects())
	handleErr := h.Handle(ctx, cmd)

	var conflict *errs.StateConflictError
	require.ErrorAs(t, handleErr, &conflict)
}
