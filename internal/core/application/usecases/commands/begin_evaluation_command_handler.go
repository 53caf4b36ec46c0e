package commands

import (
	"context"
	"time"
)

// BeginEvaluationCommandHandler moves a request into the Evaluating status,
// recording which operator started the comparison.
type BeginEvaluationCommandHandler struct {
	uowFactory RequestUoWFactory
}

func NewBeginEvaluationCommandHandler(uowFactory RequestUoWFactory) BeginEvaluationCommandHandler {
	return BeginEvaluationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the begin evaluation command.
func (h *BeginEvaluationCommandHandler) Handle(ctx context.Context, cmd BeginEvaluationCommand) error {
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

	if err = aggregate.BeginEvaluation(cmd.OperatorID(), time.Now()); err != nil {
		return err
	}

	if err = uow.RequestRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
