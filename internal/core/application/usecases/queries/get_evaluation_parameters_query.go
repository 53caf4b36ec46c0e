package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var (
	ErrGetEvaluationParametersQueryIsNotConstructed = errors.New(
		"GetEvaluationParametersQuery must be created via NewGetEvaluationParametersQuery constructor",
	)
)

// GetEvaluationParametersQuery retrieves the evaluation grid of one offer.
type GetEvaluationParametersQuery struct {
	offerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetEvaluationParametersQuery(offerID kernel.UUID) (GetEvaluationParametersQuery, error) {
	if err := offerID.Validate(); err != nil {
		return GetEvaluationParametersQuery{}, err
	}

	return GetEvaluationParametersQuery{
		offerID: offerID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetEvaluationParametersQuery) OfferID() kernel.UUID { return q.offerID }

// Validate ensures the query was created through the constructor.
func (q GetEvaluationParametersQuery) Validate() error {
	return q.guard.Validate(ErrGetEvaluationParametersQueryIsNotConstructed)
}
