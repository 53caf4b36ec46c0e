package jobs

import (
	"fmt"
	"log/slog"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	invitationReminderJob *InvitationReminderJob
	offerExpiryJob        *OfferExpiryJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	remindersHandler commands.SendInvitationRemindersCommandHandler,
	expiredApprovalsHandler queries.ListExpiredApprovalsQueryHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		invitationReminderJob: NewInvitationReminderJob(remindersHandler, logger),
		offerExpiryJob:        NewOfferExpiryJob(expiredApprovalsHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.invitationReminderJob.Start(); err != nil {
		return fmt.Errorf("failed to start invitation reminder job: %w", err)
	}

	if err := jm.offerExpiryJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.invitationReminderJob.Stop()
		return fmt.Errorf("failed to start offer expiry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.offerExpiryJob.Stop()
	jm.invitationReminderJob.Stop()
}
