package commands

import (
	"context"
	"time"

	"freight/internal/core/domain/model/request"
)

// CreateRequestCommandHandler opens new transport requests in Draft status.
// The TRS-YYYY-NNN code is allocated from the per-year sequence inside the
// creation transaction, so concurrent creations never share a code.
type CreateRequestCommandHandler struct {
	uowFactory RequestUoWFactory
}

// NewCreateRequestCommandHandler creates a handler for request creation.
func NewCreateRequestCommandHandler(uowFactory RequestUoWFactory) CreateRequestCommandHandler {
	return CreateRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the request creation command.
func (h *CreateRequestCommandHandler) Handle(ctx context.Context, cmd CreateRequestCommand) error {
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

	requestRepo := uow.RequestRepository()

	now := time.Now()
	sequence, err := requestRepo.NextCodeSequence(ctx, now.Year())
	if err != nil {
		return err
	}

	aggregate, err := request.NewRequest(
		cmd.RequestID(),
		request.FormatCode(now.Year(), sequence),
		cmd.Title(),
		cmd.RequesterID(),
		cmd.PickupAddress(),
		cmd.DeliveryAddress(),
		cmd.Details(),
		now,
	)
	if err != nil {
		return err
	}

	if err = requestRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
