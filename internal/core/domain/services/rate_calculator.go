package services

import (
	"math"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// RateCalculator is a domain service that grosses up pre-tax quote amounts
// by the configured tax rate. The rate is held in basis points so the same
// pre-tax amount always yields the same total, with no floating point on the
// money path.
type RateCalculator struct {
	taxRateBasisPoints int64
}

// NewRateCalculator creates a RateCalculator for a rate in basis points
// (2200 = 22%).
func NewRateCalculator(taxRateBasisPoints int64) (*RateCalculator, error) {
	if taxRateBasisPoints < 0 || taxRateBasisPoints > kernel.BasisPointsPerUnit {
		return nil, errs.NewValueIsOutOfRangeError(
			"taxRateBasisPoints", taxRateBasisPoints, int64(0), kernel.BasisPointsPerUnit)
	}
	return &RateCalculator{taxRateBasisPoints: taxRateBasisPoints}, nil
}

// BasisPointsFromRate converts a fractional rate such as 0.22 into basis
// points. The conversion happens once at configuration time; everything
// downstream uses the integer value.
func BasisPointsFromRate(rate float64) (int64, error) {
	if rate < 0 || rate > 1 {
		return 0, errs.NewValueIsOutOfRangeError("taxRate", rate, 0.0, 1.0)
	}
	return int64(math.Round(rate * float64(kernel.BasisPointsPerUnit))), nil
}

// TaxRateBasisPoints returns the configured rate in basis points.
func (c *RateCalculator) TaxRateBasisPoints() int64 {
	return c.taxRateBasisPoints
}

// GrossTotal returns the pre-tax amount grossed up by the configured rate.
func (c *RateCalculator) GrossTotal(pretax kernel.Money) (kernel.Money, error) {
	return pretax.WithTax(c.taxRateBasisPoints)
}
