// Package jobs provides scheduled background tasks for the marketplace.
//
// Jobs run on github.com/robfig/cron/v3 schedules and are coordinated
// through JobManager:
//
//	jobManager := jobs.NewJobManager(pendingAcceptanceHandler, publisher, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// AcceptanceReminderJob runs every minute and re-publishes a notification
// for each order sitting in pending_acceptance. Delivery offers never expire
// on their own, so the reminder keeps them visible until the courier answers
// or the pharmacy re-dispatches.
package jobs
