// Package jobs provides scheduled background tasks for the quotation
// workflow.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations around carrier invitations and offers.
//
// # Available Jobs
//
// 1. InvitationReminderJob - Runs daily at 08:00 to email carriers whose invitations have gone unanswered
// 2. OfferExpiryJob - Runs hourly to flag requests whose approved offer expired before confirmation
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(remindersHandler, expiredApprovalsHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The reminder job delegates per-invitation failures to its handler, which logs and continues the batch
// - The expiry job logs a warning per lapsed approval; it never mutates state on its own
// - Failed job starts will stop any already running jobs
package jobs
