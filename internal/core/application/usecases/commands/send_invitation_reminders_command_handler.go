package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
)

// SendInvitationRemindersCommandHandler emails every carrier whose
// invitation has gone unanswered past the reminder interval. Candidates are
// collected in one read transaction; each successful email is then recorded
// in its own short transaction, so one failure never blocks the rest of the
// batch.
type SendInvitationRemindersCommandHandler struct {
	uowFactory    UoWFactory
	notifier      ports.Notifier
	publicBaseURL string
	reminderAfter time.Duration
	logger        *slog.Logger
}

func NewSendInvitationRemindersCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	publicBaseURL string,
	reminderAfter time.Duration,
	logger *slog.Logger,
) SendInvitationRemindersCommandHandler {
	return SendInvitationRemindersCommandHandler{
		uowFactory:    uowFactory,
		notifier:      notifier,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		reminderAfter: reminderAfter,
		logger:        logger,
	}
}

type pendingReminder struct {
	invitationID kernel.UUID
	notice       ports.ReminderNotice
}

// Handle processes one reminder sweep.
func (h *SendInvitationRemindersCommandHandler) Handle(ctx context.Context, cmd SendInvitationRemindersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	pending, err := h.collect(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, p := range pending {
		if err = h.notifier.SendReminder(ctx, p.notice); err != nil {
			h.logger.Warn("reminder email failed",
				"invitation_id", p.invitationID.String(),
				"to", p.notice.To,
				"error", err)
			continue
		}

		if err = h.recordReminder(ctx, p.invitationID, now); err != nil {
			h.logger.Error("reminder sent but not recorded",
				"invitation_id", p.invitationID.String(),
				"error", err)
		}
	}

	return nil
}

func (h *SendInvitationRemindersCommandHandler) collect(ctx context.Context) ([]pendingReminder, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cutoff := time.Now().Add(-h.reminderAfter)
	candidates, err := uow.InvitationRepository().GetAllAwaitingReminder(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	pending := make([]pendingReminder, 0, len(candidates))
	for _, inv := range candidates {
		aggregate, reqErr := uow.RequestRepository().Get(ctx, inv.RequestID())
		if reqErr != nil {
			return nil, reqErr
		}
		if !aggregate.Status().AllowsOfferSubmission() {
			continue
		}

		c, carrierErr := uow.CarrierRepository().Get(ctx, inv.CarrierID())
		if carrierErr != nil {
			return nil, carrierErr
		}

		pending = append(pending, pendingReminder{
			invitationID: inv.ID(),
			notice: ports.ReminderNotice{
				To:           c.Email(),
				CarrierName:  c.CompanyName(),
				RequestCode:  aggregate.Code(),
				RequestTitle: aggregate.Title(),
				ResponseURL:  fmt.Sprintf("%s/trasporti/risposta/%s", h.publicBaseURL, inv.Token().String()),
			},
		})
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return pending, nil
}

func (h *SendInvitationRemindersCommandHandler) recordReminder(
	ctx context.Context,
	invitationID kernel.UUID,
	at time.Time,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	inv, err := uow.InvitationRepository().Get(ctx, invitationID)
	if err != nil {
		return err
	}

	inv.RecordReminder(at)

	if err = uow.InvitationRepository().Update(ctx, inv); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
