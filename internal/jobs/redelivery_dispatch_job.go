package jobs

import (
	"context"

	"github.com/TienDattttt/shoppi-sub004/internal/core/application/usecases/commands"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

// RedeliveryDispatchJob puts shipments whose redelivery window has opened
// back on the road. Runs every minute.
type RedeliveryDispatchJob struct {
	handler commands.DispatchRedeliveriesCommandHandler
	cron    *cron.Cron
	log     logger.Logger
}

// NewRedeliveryDispatchJob creates the redelivery dispatch job.
func NewRedeliveryDispatchJob(
	handler commands.DispatchRedeliveriesCommandHandler,
	log logger.Logger,
) *RedeliveryDispatchJob {
	return &RedeliveryDispatchJob{
		handler: handler,
		cron:    cron.New(),
		log:     log.With("component", "redelivery_dispatch_job"),
	}
}

// Start schedules the job to run every minute.
func (j *RedeliveryDispatchJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewDispatchRedeliveriesCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.log.Errorf(ctx, "redelivery dispatch failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.log.Infof(context.Background(), "redelivery dispatch job started")
	return nil
}

// Stop stops the job.
func (j *RedeliveryDispatchJob) Stop() {
	j.cron.Stop()
	j.log.Infof(context.Background(), "redelivery dispatch job stopped")
}
