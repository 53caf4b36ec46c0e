package services

import (
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

const (
	// DefaultRoadFactor approximates Italian road distance from the
	// great-circle distance.
	DefaultRoadFactor = 1.3

	// DefaultTruckSpeedKmh is the average door-to-door truck speed used for
	// travel time estimates.
	DefaultTruckSpeedKmh = 70.0
)

// RouteEstimate is the outcome of a distance estimation between two sites.
type RouteEstimate struct {
	DistanceKm     float64
	EstimatedHours float64
}

// DistanceEstimator is a domain service that estimates road distance and
// travel time between pickup and delivery coordinates. It applies a road
// factor to the great-circle distance; it is an estimate for quoting
// support, not a routing engine.
type DistanceEstimator struct {
	roadFactor      float64
	averageSpeedKmh float64
}

// NewDistanceEstimator creates a DistanceEstimator. Both parameters must be
// positive; use the Default constants for the standard configuration.
func NewDistanceEstimator(roadFactor, averageSpeedKmh float64) (*DistanceEstimator, error) {
	if roadFactor < 1 {
		return nil, errs.NewValueIsOutOfRangeError("roadFactor", roadFactor, 1.0, 10.0)
	}
	if averageSpeedKmh <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("averageSpeedKmh", averageSpeedKmh, 1.0, 200.0)
	}
	return &DistanceEstimator{
		roadFactor:      roadFactor,
		averageSpeedKmh: averageSpeedKmh,
	}, nil
}

// Estimate returns the estimated road distance and travel time between two
// points.
func (e *DistanceEstimator) Estimate(from, to kernel.GeoPoint) (RouteEstimate, error) {
	crowFlies, err := from.DistanceKm(to)
	if err != nil {
		return RouteEstimate{}, err
	}

	distance := crowFlies * e.roadFactor
	return RouteEstimate{
		DistanceKm:     distance,
		EstimatedHours: distance / e.averageSpeedKmh,
	}, nil
}
