package commands

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/offer"
)

// SaveEvaluationParametersCommandHandler replaces the evaluation grid of an
// offer. Parameters are replace-all; ordering follows the submitted lines.
type SaveEvaluationParametersCommandHandler struct {
	uowFactory OfferUoWFactory
}

func NewSaveEvaluationParametersCommandHandler(uowFactory OfferUoWFactory) SaveEvaluationParametersCommandHandler {
	return SaveEvaluationParametersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the evaluation grid save.
func (h *SaveEvaluationParametersCommandHandler) Handle(ctx context.Context, cmd SaveEvaluationParametersCommand) error {
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

	aggregate, err := uow.OfferRepository().Get(ctx, cmd.OfferID())
	if err != nil {
		return err
	}

	parameters := make([]*offer.EvaluationParameter, 0, len(cmd.Lines()))
	for i, line := range cmd.Lines() {
		parameter, paramErr := offer.NewEvaluationParameter(kernel.NewUUID(), line.Label, line.Value, i)
		if paramErr != nil {
			return paramErr
		}
		parameters = append(parameters, parameter)
	}

	if err = aggregate.ReplaceEvaluationParameters(parameters); err != nil {
		return err
	}

	if err = uow.OfferRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
