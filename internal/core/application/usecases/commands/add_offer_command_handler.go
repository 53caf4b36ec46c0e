package commands

import (
	"context"
	"errors"
	"time"

	"freight/internal/core/domain/model/invitation"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/offer"
	"freight/internal/pkg/errs"
)

// AddOfferCommandHandler records staff-entered offers. Every offer is owned
// by an invitation, so out-of-band quotes get an implicit one, created
// already responded. Entering a second quote for the same carrier updates
// the existing offer in place.
type AddOfferCommandHandler struct {
	uowFactory   UoWFactory
	validityDays int
}

func NewAddOfferCommandHandler(uowFactory UoWFactory, validityDays int) AddOfferCommandHandler {
	return AddOfferCommandHandler{
		uowFactory:   uowFactory,
		validityDays: validityDays,
	}
}

// Handle processes the staff offer entry command and returns the id of the
// created or updated offer.
func (h *AddOfferCommandHandler) Handle(ctx context.Context, cmd AddOfferCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.RequestRepository().Get(ctx, cmd.RequestID())
	if err != nil {
		return kernel.UUID{}, err
	}
	if !aggregate.Status().AllowsOfferSubmission() {
		return kernel.UUID{}, ErrOffersClosed
	}

	if _, err = uow.CarrierRepository().Get(ctx, cmd.CarrierID()); err != nil {
		return kernel.UUID{}, err
	}

	now := time.Now()

	inv, err := h.resolveInvitation(ctx, uow, cmd, now)
	if err != nil {
		return kernel.UUID{}, err
	}

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

	var offerID kernel.UUID

	existing, err := uow.OfferRepository().GetByInvitation(ctx, inv.ID())
	switch {
	case err == nil:
		// zero tax rate keeps the manual total a plain sum
		if err = existing.UpdateQuote(cmd.Prices(), 0, terms, now); err != nil {
			return kernel.UUID{}, err
		}
		if err = uow.OfferRepository().Update(ctx, existing); err != nil {
			return kernel.UUID{}, err
		}
		offerID = existing.ID()
	case errors.Is(err, errs.ErrObjectNotFound):
		manual, newErr := offer.NewManualOffer(
			kernel.NewUUID(),
			aggregate.ID(),
			inv.ID(),
			cmd.CarrierID(),
			cmd.Prices(),
			terms,
			now,
		)
		if newErr != nil {
			return kernel.UUID{}, newErr
		}
		if newErr = uow.OfferRepository().Add(ctx, manual); newErr != nil {
			return kernel.UUID{}, newErr
		}
		offerID = manual.ID()
	default:
		return kernel.UUID{}, err
	}

	if err = aggregate.RegisterOfferReceipt(); err != nil {
		return kernel.UUID{}, err
	}
	if err = uow.RequestRepository().Update(ctx, aggregate); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return offerID, nil
}

// resolveInvitation reuses the carrier's invitation for this request, or
// mints one marked sent and responded so the offer has an owner.
func (h *AddOfferCommandHandler) resolveInvitation(
	ctx context.Context,
	uow UoW,
	cmd AddOfferCommand,
	now time.Time,
) (*invitation.Invitation, error) {
	existing, err := uow.InvitationRepository().GetAllByRequest(ctx, cmd.RequestID())
	if err != nil {
		return nil, err
	}
	for _, inv := range existing {
		if inv.CarrierID().IsEqual(cmd.CarrierID()) {
			if !inv.Responded() {
				inv.MarkResponded(now)
				if err = uow.InvitationRepository().Update(ctx, inv); err != nil {
					return nil, err
				}
			}
			return inv, nil
		}
	}

	inv, err := invitation.NewInvitation(kernel.NewUUID(), cmd.RequestID(), cmd.CarrierID(), now)
	if err != nil {
		return nil, err
	}
	inv.MarkSent(now)
	inv.MarkResponded(now)

	if err = uow.InvitationRepository().Add(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}
