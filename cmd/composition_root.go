package cmd

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fulfillment/internal/adapters/out/kafkabus"
	"fulfillment/internal/adapters/out/notifier"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/webhook"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
)

// CompositionRoot wires adapters into use case handlers. All dependency
// construction for the application happens here.
type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	sideEffects *commands.SideEffectDispatcher
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *zap.Logger) CompositionRoot {
	notifications := notifier.NewKafkaNotificationService(
		kafkabus.NewWriter([]string{config.KafkaHost}, config.KafkaNotificationsTopic),
	)
	eventBus := kafkabus.NewKafkaEventBus(
		kafkabus.NewWriter([]string{config.KafkaHost}, config.KafkaEventsTopic),
	)
	vendorGateway := webhook.NewHTTPVendorGateway(nil, config.VendorIntakeURL)
	attribution := webhook.NewHTTPAttributionService(nil, config.AttributionURL)

	sideEffects := commands.NewSideEffectDispatcher(
		notifications,
		eventBus,
		vendorGateway,
		attribution,
		logger,
		commands.SideEffectConfig{
			PickupLocation:     config.PickupLocation,
			PickupInstructions: config.PickupInstructions,
		},
	)

	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		sideEffects: sideEffects,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.sideEffects)
}

func (c *CompositionRoot) CreateProcessPaymentCommandHandler() commands.ProcessPaymentCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewProcessPaymentCommandHandler(f, c.sideEffects)
}

func (c *CompositionRoot) CreateAssignVendorCommandHandler() commands.AssignVendorCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignVendorCommandHandler(f, c.sideEffects)
}

func (c *CompositionRoot) CreateMarkShippedCommandHandler() commands.MarkShippedCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkShippedCommandHandler(f, c.sideEffects)
}

func (c *CompositionRoot) CreateMarkPickedUpCommandHandler() commands.MarkPickedUpCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkPickedUpCommandHandler(f, c.sideEffects)
}

func (c *CompositionRoot) CreatePutOnHoldCommandHandler() commands.PutOnHoldCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPutOnHoldCommandHandler(f, c.sideEffects)
}

func (c *CompositionRoot) CreateResumeFromHoldCommandHandler() commands.ResumeFromHoldCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResumeFromHoldCommandHandler(f, c.sideEffects)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersByStatusQueryHandler() queries.GetOrdersByStatusQueryHandler {
	return queries.NewGetOrdersByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOverdueProductionOrdersQueryHandler() queries.GetOverdueProductionOrdersQueryHandler {
	return queries.NewGetOverdueProductionOrdersQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
