// Package services provides domain services of the freight quotation
// workflow: logic that spans value objects without belonging to a single
// aggregate.
//
// The package includes:
//   - RateCalculator: grosses up pre-tax quote amounts by the tax rate
//   - DistanceEstimator: estimates road distance and travel time between sites
package services
