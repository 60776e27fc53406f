package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/pkg/metrics"
)

// ProductionDeadlineJob watches for production orders past their agreed
// deadline. Runs every ten minutes, updates the overdue gauge, and logs each
// overdue order so operations can chase the vendor.
type ProductionDeadlineJob struct {
	handler queries.GetOverdueProductionOrdersQueryHandler
	cron    *cron.Cron
	logger  *zap.Logger
}

// NewProductionDeadlineJob creates the deadline watchdog.
// Uses GetOverdueProductionOrdersQueryHandler to find overdue orders.
func NewProductionDeadlineJob(handler queries.GetOverdueProductionOrdersQueryHandler, logger *zap.Logger) *ProductionDeadlineJob {
	return &ProductionDeadlineJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With(zap.String("component", "production_deadline_job")),
	}
}

// Start schedules the watchdog to run every ten minutes.
func (j *ProductionDeadlineJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Production deadline job started (running every ten minutes)")
	return nil
}

// Stop stops the watchdog.
func (j *ProductionDeadlineJob) Stop() {
	j.cron.Stop()
	j.logger.Info("Production deadline job stopped")
}

func (j *ProductionDeadlineJob) run() {
	ctx := context.Background()
	query := queries.NewGetOverdueProductionOrdersQuery(time.Now().UTC())

	overdue, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.Error("Production deadline job failed", zap.Error(err))
		return
	}

	metrics.OverdueProductionOrders.Set(float64(len(overdue)))

	for _, o := range overdue {
		fields := []zap.Field{
			zap.String("order_id", o.ID.String()),
			zap.String("order_number", o.OrderNumber),
			zap.Time("production_deadline", o.ProductionDeadline),
		}
		if o.VendorID != nil {
			fields = append(fields, zap.String("vendor_id", o.VendorID.String()))
		}
		j.logger.Warn("Order overdue in production", fields...)
	}
}
