// Package jobs provides the scheduled background tasks of the fulfillment
// core, implemented on github.com/robfig/cron/v3.
//
// Two jobs run every minute:
//
//  1. RedeliveryDispatchJob - re-publishes out_for_delivery intents for
//     shipments whose scheduled redelivery time has arrived
//  2. ScheduledNotificationJob - delivers due scheduled notifications
//     (such as the post-delivery rating prompt) and marks them sent
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(redeliveryHandler, notificationHandler, log)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal(err)
//	}
//	defer jobManager.StopAll()
package jobs
