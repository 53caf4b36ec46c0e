package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var (
	ErrEstimateRouteQueryIsNotConstructed = errors.New(
		"EstimateRouteQuery must be created via NewEstimateRouteQuery constructor",
	)
)

// EstimateRouteQuery estimates road distance and travel time between pickup
// and delivery coordinates. Serves the distance endpoint used while
// composing a request; no persistence involved.
type EstimateRouteQuery struct {
	from kernel.GeoPoint
	to   kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewEstimateRouteQuery creates a route estimation query from raw coordinates.
func NewEstimateRouteQuery(fromLat, fromLon, toLat, toLon float64) (EstimateRouteQuery, error) {
	from, err := kernel.NewGeoPoint(fromLat, fromLon)
	if err != nil {
		return EstimateRouteQuery{}, err
	}
	to, err := kernel.NewGeoPoint(toLat, toLon)
	if err != nil {
		return EstimateRouteQuery{}, err
	}

	return EstimateRouteQuery{
		from:  from,
		to:    to,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q EstimateRouteQuery) From() kernel.GeoPoint { return q.from }
func (q EstimateRouteQuery) To() kernel.GeoPoint   { return q.to }

// Validate ensures the query was created through the constructor.
func (q EstimateRouteQuery) Validate() error {
	return q.guard.Validate(ErrEstimateRouteQueryIsNotConstructed)
}

// EstimateRouteQueryResponse is the estimated route.
type EstimateRouteQueryResponse struct {
	DistanceKm     float64
	EstimatedHours float64
}
