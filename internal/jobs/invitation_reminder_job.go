package jobs

import (
	"context"
	"log/slog"

	"freight/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// reminderSchedule fires every morning at 08:00 so reminder emails land
// during office hours.
const reminderSchedule = "0 0 8 * * *"

// InvitationReminderJob periodically nudges carriers whose invitations have
// gone unanswered past the configured interval.
type InvitationReminderJob struct {
	handler commands.SendInvitationRemindersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewInvitationReminderJob creates the daily reminder job.
func NewInvitationReminderJob(handler commands.SendInvitationRemindersCommandHandler, logger *slog.Logger) *InvitationReminderJob {
	return &InvitationReminderJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "invitation_reminder_job"),
	}
}

// Start schedules the reminder sweep.
func (j *InvitationReminderJob) Start() error {
	_, err := j.cron.AddFunc(reminderSchedule, func() {
		ctx := context.Background()
		cmd, cmdErr := commands.NewSendInvitationRemindersCommand()
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Invitation reminder job misconfigured", "error", cmdErr)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Invitation reminder job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Invitation reminder job started (daily at 08:00)")
	return nil
}

// Stop stops the reminder job.
func (j *InvitationReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Invitation reminder job stopped")
}
