package commands

import (
	"context"
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/offer"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"
)

// ErrOffersClosed is returned when a carrier submits through a valid token
// but the request no longer accepts offers (confirmed, cancelled, or still
// a draft).
var ErrOffersClosed = errors.New("request is not accepting offers")

// SubmitOfferCommandHandler records quotes arriving through the public
// tokenized response page. A first submission creates the offer with the
// total grossed up by the configured tax rate; a resubmission through the
// same token replaces the quote in place. Either way the invitation is
// marked responded and the request moves to OffersReceived if it was
// still Sent.
type SubmitOfferCommandHandler struct {
	uowFactory     UoWFactory
	rateCalculator *services.RateCalculator
	validityDays   int
}

// NewSubmitOfferCommandHandler creates a handler for public offer submission.
func NewSubmitOfferCommandHandler(
	uowFactory UoWFactory,
	rateCalculator *services.RateCalculator,
	validityDays int,
) SubmitOfferCommandHandler {
	return SubmitOfferCommandHandler{
		uowFactory:     uowFactory,
		rateCalculator: rateCalculator,
		validityDays:   validityDays,
	}
}

// Handle processes the offer submission command.
func (h *SubmitOfferCommandHandler) Handle(ctx context.Context, cmd SubmitOfferCommand) error {
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

	inv, err := uow.InvitationRepository().GetByToken(ctx, cmd.Token())
	if err != nil {
		return err
	}

	aggregate, err := uow.RequestRepository().Get(ctx, inv.RequestID())
	if err != nil {
		return err
	}

	if !aggregate.Status().AllowsOfferSubmission() {
		return ErrOffersClosed
	}

	now := time.Now()
	terms := offer.Terms{
		PickupDate:            cmd.Terms().PickupDate,
		DeliveryDate:          cmd.Terms().DeliveryDate,
		VehicleType:           cmd.Terms().VehicleType,
		IncludesTracking:      cmd.Terms().IncludesTracking,
		IncludesInsurance:     cmd.Terms().IncludesInsurance,
		IncludesFloorDelivery: cmd.Terms().IncludesFloorDelivery,
		Notes:                 cmd.Terms().Notes,
		ExpiresAt:             now.AddDate(0, 0, h.validityDays),
	}

	existing, err := uow.OfferRepository().GetByInvitation(ctx, inv.ID())
	switch {
	case err == nil:
		if err = existing.UpdateQuote(cmd.Prices(), h.rateCalculator.TaxRateBasisPoints(), terms, now); err != nil {
			return err
		}
		if err = uow.OfferRepository().Update(ctx, existing); err != nil {
			return err
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		quote, newErr := offer.NewQuotedOffer(
			kernel.NewUUID(),
			aggregate.ID(),
			inv.ID(),
			inv.CarrierID(),
			cmd.Prices(),
			h.rateCalculator.TaxRateBasisPoints(),
			terms,
			now,
		)
		if newErr != nil {
			return newErr
		}
		if newErr = uow.OfferRepository().Add(ctx, quote); newErr != nil {
			return newErr
		}
	default:
		return err
	}

	if err = aggregate.RegisterOfferReceipt(); err != nil {
		return err
	}
	if err = uow.RequestRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	inv.MarkResponded(now)
	if err = uow.InvitationRepository().Update(ctx, inv); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
