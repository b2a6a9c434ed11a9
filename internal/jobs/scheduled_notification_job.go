package jobs

import (
	"context"

	"github.com/TienDattttt/shoppi-sub004/internal/core/application/usecases/commands"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

// ScheduledNotificationJob sends notifications whose scheduled time has
// arrived, such as rating prompts queued at delivery. Runs every minute.
type ScheduledNotificationJob struct {
	handler commands.DispatchScheduledNotificationsCommandHandler
	cron    *cron.Cron
	log     logger.Logger
}

// NewScheduledNotificationJob creates the scheduled notification job.
func NewScheduledNotificationJob(
	handler commands.DispatchScheduledNotificationsCommandHandler,
	log logger.Logger,
) *ScheduledNotificationJob {
	return &ScheduledNotificationJob{
		handler: handler,
		cron:    cron.New(),
		log:     log.With("component", "scheduled_notification_job"),
	}
}

// Start schedules the job to run every minute.
func (j *ScheduledNotificationJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewDispatchScheduledNotificationsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.log.Errorf(ctx, "scheduled notification dispatch failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.log.Infof(context.Background(), "scheduled notification job started")
	return nil
}

// Stop stops the job.
func (j *ScheduledNotificationJob) Stop() {
	j.cron.Stop()
	j.log.Infof(context.Background(), "scheduled notification job stopped")
}
