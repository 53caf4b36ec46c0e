package commands

import (
	"errors"

	"freight/internal/pkg/guard"
)

var ErrSendInvitationRemindersCommandIsNotConstructed = errors.New(
	"SendInvitationRemindersCommand must be created via NewSendInvitationRemindersCommand constructor",
)

// SendInvitationRemindersCommand nudges every carrier whose invitation has
// gone unanswered past the configured interval. Issued by the reminder job.
type SendInvitationRemindersCommand struct {
	guard guard.ConstructorGuard
}

func NewSendInvitationRemindersCommand() (SendInvitationRemindersCommand, error) {
	return SendInvitationRemindersCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SendInvitationRemindersCommand) Validate() error {
	return c.guard.Validate(ErrSendInvitationRemindersCommandIsNotConstructed)
}
