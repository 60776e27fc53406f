// Package jobs provides scheduled background tasks for the fulfillment
// service, implemented with github.com/robfig/cron/v3.
//
// One job exists today: ProductionDeadlineJob, the watchdog that surfaces
// production orders past their vendor deadline. Jobs are managed through
// JobManager:
//
//	jobManager := jobs.NewJobManager(overdueHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs

import (
	"fmt"

	"go.uber.org/zap"

	"fulfillment/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	productionDeadlineJob *ProductionDeadlineJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	overdueHandler queries.GetOverdueProductionOrdersQueryHandler,
	logger *zap.Logger,
) *JobManager {
	return &JobManager{
		productionDeadlineJob: NewProductionDeadlineJob(overdueHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.productionDeadlineJob.Start(); err != nil {
		return fmt.Errorf("failed to start production deadline job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.productionDeadlineJob.Stop()
}
