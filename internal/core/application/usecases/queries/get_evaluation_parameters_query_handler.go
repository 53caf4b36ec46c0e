package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetEvaluationParametersQueryHandler reads the evaluation grid of one offer.
type GetEvaluationParametersQueryHandler struct {
	db *gorm.DB
}

// NewGetEvaluationParametersQueryHandler creates a handler for evaluation grid queries.
func NewGetEvaluationParametersQueryHandler(db *gorm.DB) GetEvaluationParametersQueryHandler {
	return GetEvaluationParametersQueryHandler{db: db}
}

// Handle executes the query. An offer without parameters yields an empty
// slice, not an error.
func (h GetEvaluationParametersQueryHandler) Handle(
	ctx context.Context,
	query GetEvaluationParametersQuery,
) ([]EvaluationParameterView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	parameters := make([]EvaluationParameterView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT ep.label, ep.value
		FROM evaluation_parameters ep
		WHERE ep.offer_id = ? AND ep.deleted_at IS NULL
		ORDER BY ep.sort_order
	`, query.OfferID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var parameter EvaluationParameterView
		if err = rows.Scan(&parameter.Label, &parameter.Value); err != nil {
			return nil, err
		}
		parameters = append(parameters, parameter)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return parameters, nil
}
