package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResumeFromHoldCommandHandler_Handle_ResumeToProduction(t *testing.T) {
	ctx := t.Context()
	o := orderInStatus(t, order.OnHold)

	cmd, err := commands.NewResumeFromHoldCommand(o.ID(), order.Production, "ops@shop")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		repo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewResumeFromHoldCommandHandler(factory, noopSideEffects())
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, order.Production, o.Status())
	require.Empty(t, o.HoldReason())
}

func TestResumeFromHoldCommandHandler_Handle_InvalidResumeTarget(t *testing.T) {
	ctx := t.Context()
	o := orderInStatus(t, order.OnHold)

	cmd, err := commands.NewResumeFromHoldCommand(o.ID(), order.Shipped, "ops@shop")
	require.NoError(t, err, "target validity is decided by the aggregate, not the command")

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewResumeFromHoldCommandHandler(factory, noopSideEffects())
	handleErr := h.Handle(ctx, cmd)

	require.ErrorIs(t, handleErr, errs.ErrValueIsInvalid)
	require.Equal(t, order.OnHold, o.Status())
}

func TestResumeFromHoldCommandHandler_Handle_NotOnHold(t *testing.T) {
	ctx := t.Context()
	o := orderInStatus(t, order.Production)

	cmd, err := commands.NewResumeFromHoldCommand(o.ID(), order.Production, "ops@shop")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewResumeFromHoldCommandHandler(factory, noopSideEffects())
	handleErr := h.Handle(ctx, cmd)

	var conflict *errs.StateConflictError
	require.ErrorAs(t, handleErr, &conflict)
}
