package commands

import (
	"context"
)

// ReopenRequestCommandHandler returns a request to Approved. The confirmed
// offer keeps its confirmation until a different offer wins the next
// confirmation, so re-confirming as-is touches nothing but the status.
type ReopenRequestCommandHandler struct {
	uowFactory RequestUoWFactory
}

func NewReopenRequestCommandHandler(uowFactory RequestUoWFactory) ReopenRequestCommandHandler {
	return ReopenRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the reopen command.
func (h *ReopenRequestCommandHandler) Handle(ctx context.Context, cmd ReopenRequestCommand) error {
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

	if err = aggregate.Reopen(); err != nil {
		return err
	}

	if err = uow.RequestRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
