package queries

import (
	"context"

	"freight/internal/core/domain/services"
)

// EstimateRouteQueryHandler answers route estimation queries using the
// DistanceEstimator domain service. Unlike the other query handlers it
// needs no database connection.
type EstimateRouteQueryHandler struct {
	estimator *services.DistanceEstimator
}

// NewEstimateRouteQueryHandler creates a handler for route estimation queries.
func NewEstimateRouteQueryHandler(estimator *services.DistanceEstimator) EstimateRouteQueryHandler {
	return EstimateRouteQueryHandler{estimator: estimator}
}

// Handle executes the estimation.
func (h EstimateRouteQueryHandler) Handle(
	_ context.Context,
	query EstimateRouteQuery,
) (EstimateRouteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return EstimateRouteQueryResponse{}, err
	}

	estimate, err := h.estimator.Estimate(query.From(), query.To())
	if err != nil {
		return EstimateRouteQueryResponse{}, err
	}

	return EstimateRouteQueryResponse{
		DistanceKm:     estimate.DistanceKm,
		EstimatedHours: estimate.EstimatedHours,
	}, nil
}
