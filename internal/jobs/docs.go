// Package jobs provides scheduled background tasks for the order portal.
//
// Jobs run on github.com/robfig/cron/v3 schedules and do their work through
// the same command handlers the synchronous API uses, so the negotiation
// rules are never bypassed.
//
// # Available Jobs
//
// 1. NotificationPurgeJob - hourly, deletes read notifications older than
// the retention window.
//
// 2. SuggestionReminderJob - every six hours, re-notifies the reviewing side
// of orders stuck in a pending review status.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(purgeHandler, reminderHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
package jobs
