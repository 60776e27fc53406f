package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/vendor"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errSMTPDown = errors.New("smtp relay unavailable")

// Shared testify mocks for the unit of work surface. Handlers differ only in
// which repositories they pull from the UoW, so one set of mocks serves all
// handler tests.

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockVendorRepository struct{ mock.Mock }

func (m *MockVendorRepository) Add(ctx context.Context, v *vendor.Vendor) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVendorRepository) Get(ctx context.Context, id kernel.UUID) (*vendor.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vendor.Vendor), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) VendorRepository() ports.VendorRepository {
	args := m.Called()
	return args.Get(0).(ports.VendorRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockNotificationService struct{ mock.Mock }

func (m *MockNotificationService) SendOrderConfirmation(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockNotificationService) SendShippingNotification(ctx context.Context, o *order.Order, tracking, carrier, etaText string) error {
	args := m.Called(ctx, o, tracking, carrier, etaText)
	return args.Error(0)
}

func (m *MockNotificationService) SendReadyForPickup(ctx context.Context, o *order.Order, location, instructions string) error {
	args := m.Called(ctx, o, location, instructions)
	return args.Error(0)
}

func (m *MockNotificationService) SendOnTheWayNotification(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockNotificationService) SendOnHoldNotification(ctx context.Context, o *order.Order, reason, actionRequired string) error {
	args := m.Called(ctx, o, reason, actionRequired)
	return args.Error(0)
}

func (m *MockNotificationService) SendPickupConfirmation(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockNotificationService) SendDeliveredConfirmation(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockNotificationService) SendReprintNotice(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockEventBus struct{ mock.Mock }

func (m *MockEventBus) Publish(ctx context.Context, eventName string, payload map[string]any) error {
	args := m.Called(ctx, eventName, payload)
	return args.Error(0)
}

type MockVendorGateway struct{ mock.Mock }

func (m *MockVendorGateway) DispatchOrder(ctx context.Context, v *vendor.Vendor, dispatch ports.VendorDispatch) error {
	args := m.Called(ctx, v, dispatch)
	return args.Error(0)
}

type MockAttributionService struct{ mock.Mock }

func (m *MockAttributionService) RecordConversion(ctx context.Context, landingPageID string, orderTotalCents int64) error {
	args := m.Called(ctx, landingPageID, orderTotalCents)
	return args.Error(0)
}

// No-op side channel stubs for handler tests that do not assert on side
// effects.

type stubNotifications struct{}

func (stubNotifications) SendOrderConfirmation(context.Context, *order.Order) error { return nil }
func (stubNotifications) SendShippingNotification(context.Context, *order.Order, string, string, string) error {
	return nil
}
func (stubNotifications) SendReadyForPickup(context.Context, *order.Order, string, string) error {
	return nil
}
func (stubNotifications) SendOnTheWayNotification(context.Context, *order.Order) error { return nil }
func (stubNotifications) SendOnHoldNotification(context.Context, *order.Order, string, string) error {
	return nil
}
func (stubNotifications) SendPickupConfirmation(context.Context, *order.Order) error    { return nil }
func (stubNotifications) SendDeliveredConfirmation(context.Context, *order.Order) error { return nil }
func (stubNotifications) SendReprintNotice(context.Context, *order.Order) error         { return nil }

type stubEventBus struct{}

func (stubEventBus) Publish(context.Context, string, map[string]any) error { return nil }

type stubVendorGateway struct{}

func (stubVendorGateway) DispatchOrder(context.Context, *vendor.Vendor, ports.VendorDispatch) error {
	return nil
}

type stubAttribution struct{}

func (stubAttribution) RecordConversion(context.Context, string, int64) error { return nil }

func noopSideEffects() *commands.SideEffectDispatcher {
	return commands.NewSideEffectDispatcher(
		stubNotifications{},
		stubEventBus{},
		stubVendorGateway{},
		stubAttribution{},
		zap.NewNop(),
		commands.SideEffectConfig{},
	)
}

func testOrder(t *testing.T) *order.Order {
	t.Helper()

	o, err := order.NewOrder(
		kernel.NewUUID(),
		"ORD-2024-1042",
		"Ada Lovelace",
		"ada@example.com",
		4999,
		"EUR",
		[]order.LineItem{{ProductName: "Business Cards", Quantity: 500, UnitPriceCents: 999}},
	)
	require.NoError(t, err)
	return o
}

// orderInStatus walks a freshly created order through valid transitions until
// it reaches the target status, then clears pending history so the order
// looks freshly loaded from storage.
func orderInStatus(t *testing.T, target order.Status) *order.Order {
	t.Helper()

	paths := map[order.Status][]order.Status{
		order.PendingPayment: {},
		order.Confirmation:   {order.Confirmation},
		order.Production:     {order.Confirmation, order.Production},
		order.OnHold:         {order.Confirmation, order.OnHold},
		order.Shipped:        {order.Confirmation, order.Production, order.Shipped},
		order.ReadyForPickup: {order.Confirmation, order.Production, order.ReadyForPickup},
		order.OnTheWay:       {order.Confirmation, order.Production, order.OnTheWay},
	}

	path, ok := paths[target]
	require.True(t, ok, "no walk defined to status %s", target)

	o := testOrder(t)
	for _, step := range path {
		require.NoError(t, o.ChangeStatus(step, "test", "", time.Now().UTC()))
	}
	o.ClearUncommittedHistory()
	return o
}
