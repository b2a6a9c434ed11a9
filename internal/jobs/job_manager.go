package jobs

import (
	"fmt"

	"github.com/TienDattttt/shoppi-sub004/internal/core/application/usecases/commands"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/logger"
)

// JobManager coordinates the scheduled jobs of the application.
type JobManager struct {
	redeliveryDispatchJob    *RedeliveryDispatchJob
	scheduledNotificationJob *ScheduledNotificationJob
}

// NewJobManager creates a job manager wiring the command handlers into their
// jobs.
func NewJobManager(
	redeliveryHandler commands.DispatchRedeliveriesCommandHandler,
	notificationHandler commands.DispatchScheduledNotificationsCommandHandler,
	log logger.Logger,
) *JobManager {
	return &JobManager{
		redeliveryDispatchJob:    NewRedeliveryDispatchJob(redeliveryHandler, log),
		scheduledNotificationJob: NewScheduledNotificationJob(notificationHandler, log),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.redeliveryDispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start redelivery dispatch job: %w", err)
	}

	if err := jm.scheduledNotificationJob.Start(); err != nil {
		jm.redeliveryDispatchJob.Stop()
		return fmt.Errorf("failed to start scheduled notification job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.scheduledNotificationJob.Stop()
	jm.redeliveryDispatchJob.Stop()
}
