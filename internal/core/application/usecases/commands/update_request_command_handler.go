package commands

import (
	"context"
)

// UpdateRequestCommandHandler edits the header of a Draft request.
type UpdateRequestCommandHandler struct {
	uowFactory RequestUoWFactory
}

func NewUpdateRequestCommandHandler(uowFactory RequestUoWFactory) UpdateRequestCommandHandler {
	return UpdateRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the request edit command.
func (h *UpdateRequestCommandHandler) Handle(ctx context.Context, cmd UpdateRequestCommand) error {
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

	if err = aggregate.UpdateDetails(cmd.Title(), cmd.Details()); err != nil {
		return err
	}

	if err = uow.RequestRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
