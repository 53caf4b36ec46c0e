package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/offer"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// CancelRequestCommandHandler abandons a request. When the request was
// already confirmed, the confirmed offer gets a cancellation on its tracking
// timeline and its carrier is notified after commit.
type CancelRequestCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewCancelRequestCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) CancelRequestCommandHandler {
	return CancelRequestCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the cancellation command.
func (h *CancelRequestCommandHandler) Handle(ctx context.Context, cmd CancelRequestCommand) error {
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

	now := time.Now()
	if err = aggregate.Cancel(now); err != nil {
		return err
	}

	var notice *ports.CancellationNotice
	confirmed, err := uow.OfferRepository().GetConfirmedByRequest(ctx, aggregate.ID())
	switch {
	case err == nil:
		event, eventErr := offer.NewTrackingEvent(kernel.NewUUID(), offer.TrackingEventCancelled, cmd.Reason(), now)
		if eventErr != nil {
			return eventErr
		}
		if eventErr = confirmed.RecordTrackingEvent(event); eventErr != nil {
			return eventErr
		}
		if eventErr = uow.OfferRepository().Update(ctx, confirmed); eventErr != nil {
			return eventErr
		}

		c, carrierErr := uow.CarrierRepository().Get(ctx, confirmed.CarrierID())
		if carrierErr != nil {
			return carrierErr
		}
		notice = &ports.CancellationNotice{
			To:           c.Email(),
			CarrierName:  c.CompanyName(),
			RequestCode:  aggregate.Code(),
			RequestTitle: aggregate.Title(),
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		// nothing confirmed yet, no one to notify
	default:
		return err
	}

	if err = uow.RequestRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if notice != nil {
		if err = h.notifier.SendCancellation(ctx, *notice); err != nil {
			h.logger.Warn("cancellation email failed",
				"request_code", aggregate.Code(),
				"to", notice.To,
				"error", err)
		}
	}

	return nil
}
