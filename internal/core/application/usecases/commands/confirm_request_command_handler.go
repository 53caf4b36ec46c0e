package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/offer"
	"freight/internal/core/domain/model/request"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// ConfirmRequestCommandHandler commits the approved offer to its carrier.
// Confirming after a reopen on a different offer displaces the previously
// confirmed one: it is unconfirmed and a cancellation is recorded on its
// tracking timeline, all inside the same transaction. Re-confirming the
// same offer is a no-op for the offer and just replays the status change.
// Emails go out after commit and never abort the confirmation.
type ConfirmRequestCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewConfirmRequestCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) ConfirmRequestCommandHandler {
	return ConfirmRequestCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the confirmation command.
func (h *ConfirmRequestCommandHandler) Handle(ctx context.Context, cmd ConfirmRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.RequestRepository().Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}
	if aggregate.ApprovedOfferID() == nil {
		return request.ErrNoApprovedOffer
	}

	winner, err := uow.OfferRepository().Get(ctx, *aggregate.ApprovedOfferID())
	if err != nil {
		return err
	}

	now := time.Now()

	displaced, err := h.displacePrior(ctx, uow, aggregate.ID(), winner, now)
	if err != nil {
		return err
	}

	if !winner.Confirmed() {
		winner.Confirm(now)
		if err = h.recordEvent(winner, offer.TrackingEventConfirmed, "", now); err != nil {
			return err
		}
		if err = uow.OfferRepository().Update(ctx, winner); err != nil {
			return err
		}
	}

	if err = aggregate.Confirm(now); err != nil {
		return err
	}
	if err = uow.RequestRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	winnerCarrier, err := uow.CarrierRepository().Get(ctx, winner.CarrierID())
	if err != nil {
		return err
	}

	var displacedCarrier *ports.CancellationNotice
	if displaced != nil {
		c, carrierErr := uow.CarrierRepository().Get(ctx, displaced.CarrierID())
		if carrierErr != nil {
			return carrierErr
		}
		displacedCarrier = &ports.CancellationNotice{
			To:           c.Email(),
			CarrierName:  c.CompanyName(),
			RequestCode:  aggregate.Code(),
			RequestTitle: aggregate.Title(),
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	confirmation := ports.ConfirmationNotice{
		To:           winnerCarrier.Email(),
		CarrierName:  winnerCarrier.CompanyName(),
		RequestCode:  aggregate.Code(),
		RequestTitle: aggregate.Title(),
		TotalPrice:   winner.Total().String(),
		PickupDate:   winner.Terms().PickupDate,
	}
	if err = h.notifier.SendConfirmation(ctx, confirmation); err != nil {
		h.logger.Warn("confirmation email failed",
			"request_code", aggregate.Code(),
			"to", confirmation.To,
			"error", err)
	}

	if displacedCarrier != nil {
		if err = h.notifier.SendCancellation(ctx, *displacedCarrier); err != nil {
			h.logger.Warn("cancellation email failed",
				"request_code", aggregate.Code(),
				"to", displacedCarrier.To,
				"error", err)
		}
	}

	return nil
}

// displacePrior unconfirms a previously confirmed offer when a different one
// wins after a reopen. Returns the displaced offer, or nil when there was
// none or the winner is being re-confirmed.
func (h *ConfirmRequestCommandHandler) displacePrior(
	ctx context.Context,
	uow UoW,
	requestID kernel.UUID,
	winner *offer.Offer,
	now time.Time,
) (*offer.Offer, error) {
	prior, err := uow.OfferRepository().GetConfirmedByRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if prior.IsEqual(winner) {
		return nil, nil
	}

	prior.Unconfirm()
	if err = h.recordEvent(prior, offer.TrackingEventCancelled, "superseded by another offer", now); err != nil {
		return nil, err
	}
	if err = uow.OfferRepository().Update(ctx, prior); err != nil {
		return nil, err
	}

	return prior, nil
}

func (h *ConfirmRequestCommandHandler) recordEvent(
	o *offer.Offer,
	eventType offer.TrackingEventType,
	note string,
	at time.Time,
) error {
	event, err := offer.NewTrackingEvent(kernel.NewUUID(), eventType, note, at)
	if err != nil {
		return err
	}
	return o.RecordTrackingEvent(event)
}
