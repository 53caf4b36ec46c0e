package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"freight/internal/core/domain/model/carrier"
	"freight/internal/core/domain/model/invitation"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// SendRequestCommandHandler dispatches a request for quotation. Inside one
// transaction it moves the request to Sent, resolves or creates a carrier
// record per recipient, and mints a tokenized invitation for each. Emails go
// out only after the transaction commits; a failed email never rolls back
// the send, it just leaves the invitation unsent for the reminder job.
type SendRequestCommandHandler struct {
	uowFactory    UoWFactory
	notifier      ports.Notifier
	publicBaseURL string
	logger        *slog.Logger
}

// NewSendRequestCommandHandler creates a handler for request dispatch.
func NewSendRequestCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	publicBaseURL string,
	logger *slog.Logger,
) SendRequestCommandHandler {
	return SendRequestCommandHandler{
		uowFactory:    uowFactory,
		notifier:      notifier,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
	}
}

type pendingInvite struct {
	invitationID kernel.UUID
	notice       ports.InvitationNotice
}

// Handle processes the send command.
func (h *SendRequestCommandHandler) Handle(ctx context.Context, cmd SendRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	pending, err := h.send(ctx, cmd)
	if err != nil {
		return err
	}

	h.dispatch(ctx, pending)

	return nil
}

func (h *SendRequestCommandHandler) send(ctx context.Context, cmd SendRequestCommand) ([]pendingInvite, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.RequestRepository().Get(ctx, cmd.RequestID())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err = aggregate.Send(now); err != nil {
		return nil, err
	}

	recipients, err := h.resolveRecipients(ctx, uow, cmd)
	if err != nil {
		return nil, err
	}

	pending := make([]pendingInvite, 0, len(recipients))
	for _, c := range recipients {
		inv, invErr := invitation.NewInvitation(kernel.NewUUID(), aggregate.ID(), c.ID(), now)
		if invErr != nil {
			return nil, invErr
		}

		if invErr = uow.InvitationRepository().Add(ctx, inv); invErr != nil {
			return nil, invErr
		}

		pending = append(pending, pendingInvite{
			invitationID: inv.ID(),
			notice: ports.InvitationNotice{
				To:           c.Email(),
				CarrierName:  c.CompanyName(),
				RequestCode:  aggregate.Code(),
				RequestTitle: aggregate.Title(),
				PickupCity:   aggregate.PickupAddress().City(),
				DeliveryCity: aggregate.DeliveryAddress().City(),
				ResponseURL:  h.responseURL(inv.Token()),
			},
		})
	}

	if err = uow.RequestRepository().Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return pending, nil
}

func (h *SendRequestCommandHandler) resolveRecipients(
	ctx context.Context,
	uow UoW,
	cmd SendRequestCommand,
) ([]*carrier.Carrier, error) {
	carrierRepo := uow.CarrierRepository()

	recipients := make([]*carrier.Carrier, 0, len(cmd.CarrierIDs())+len(cmd.AdHoc()))
	for _, id := range cmd.CarrierIDs() {
		c, err := carrierRepo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		recipients = append(recipients, c)
	}

	for _, r := range cmd.AdHoc() {
		c, err := carrierRepo.GetByEmail(ctx, r.Email)
		if err == nil {
			recipients = append(recipients, c)
			continue
		}
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return nil, err
		}

		c, err = carrier.NewAdHocCarrier(kernel.NewUUID(), r.CompanyName, r.Email)
		if err != nil {
			return nil, err
		}
		if err = carrierRepo.Add(ctx, c); err != nil {
			return nil, err
		}
		recipients = append(recipients, c)
	}

	return recipients, nil
}

// dispatch emails each pending invitation and records the send in its own
// short transaction. Invitations whose email fails stay unsent and are
// retried by the reminder job.
func (h *SendRequestCommandHandler) dispatch(ctx context.Context, pending []pendingInvite) {
	now := time.Now()
	for _, p := range pending {
		if err := h.notifier.SendInvitation(ctx, p.notice); err != nil {
			h.logger.Warn("invitation email failed",
				"invitation_id", p.invitationID.String(),
				"to", p.notice.To,
				"error", err)
			continue
		}

		if err := h.markSent(ctx, p.invitationID, now); err != nil {
			h.logger.Error("invitation sent but not recorded",
				"invitation_id", p.invitationID.String(),
				"error", err)
		}
	}
}

func (h *SendRequestCommandHandler) markSent(ctx context.Context, invitationID kernel.UUID, at time.Time) error {
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

	inv.MarkSent(at)

	if err = uow.InvitationRepository().Update(ctx, inv); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *SendRequestCommandHandler) responseURL(token kernel.AccessToken) string {
	return fmt.Sprintf("%s/trasporti/risposta/%s", h.publicBaseURL, token.String())
}
