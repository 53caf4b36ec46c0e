package commands

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrOfferBelongsToAnotherRequest is returned when the offer being
	// approved was submitted for a different request.
	ErrOfferBelongsToAnotherRequest = errors.New("offer belongs to another request")

	// ErrOfferExpired is returned when the offer's validity window has
	// already closed.
	ErrOfferExpired = errors.New("offer has expired")
)

// ApproveOfferCommandHandler records the winning offer of a comparison. The
// selection can be changed while the request stays in the Approved status;
// confirmation is a separate step.
type ApproveOfferCommandHandler struct {
	uowFactory UoWFactory
}

func NewApproveOfferCommandHandler(uowFactory UoWFactory) ApproveOfferCommandHandler {
	return ApproveOfferCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the approval command.
func (h *ApproveOfferCommandHandler) Handle(ctx context.Context, cmd ApproveOfferCommand) error {
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

	winner, err := uow.OfferRepository().Get(ctx, cmd.OfferID())
	if err != nil {
		return err
	}

	if !winner.RequestID().IsEqual(cmd.RequestID()) {
		return ErrOfferBelongsToAnotherRequest
	}

	now := time.Now()
	if winner.IsExpired(now) {
		return ErrOfferExpired
	}

	aggregate, err := uow.RequestRepository().Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}

	if err = aggregate.Approve(winner.ID(), cmd.ApproverID(), now); err != nil {
		return err
	}

	if err = uow.RequestRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
