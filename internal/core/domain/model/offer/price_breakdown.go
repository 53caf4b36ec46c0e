package offer

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
)

// PriceBreakdown splits a quoted price into its pre-tax components.
// All components must be constructed Money values; use zero-cent Money for
// components a carrier does not quote.
type PriceBreakdown struct {
	base      kernel.Money
	insurance kernel.Money
	tolls     kernel.Money
	extra     kernel.Money
}

// NewPriceBreakdown creates a validated PriceBreakdown.
func NewPriceBreakdown(base, insurance, tolls, extra kernel.Money) (PriceBreakdown, error) {
	if err := errors.Join(
		base.Validate(),
		insurance.Validate(),
		tolls.Validate(),
		extra.Validate(),
	); err != nil {
		return PriceBreakdown{}, err
	}

	return PriceBreakdown{
		base:      base,
		insurance: insurance,
		tolls:     tolls,
		extra:     extra,
	}, nil
}

// NewBaseOnlyPriceBreakdown creates a breakdown where the whole pre-tax
// amount sits in the base component, as public token submissions do.
func NewBaseOnlyPriceBreakdown(base kernel.Money) (PriceBreakdown, error) {
	zero, err := kernel.NewMoneyFromCents(0)
	if err != nil {
		return PriceBreakdown{}, err
	}
	return NewPriceBreakdown(base, zero, zero, zero)
}

func (p PriceBreakdown) Base() kernel.Money      { return p.base }
func (p PriceBreakdown) Insurance() kernel.Money { return p.insurance }
func (p PriceBreakdown) Tolls() kernel.Money     { return p.tolls }
func (p PriceBreakdown) Extra() kernel.Money     { return p.extra }

// Pretax returns the sum of all components.
func (p PriceBreakdown) Pretax() (kernel.Money, error) {
	sum, err := p.base.Add(p.insurance)
	if err != nil {
		return kernel.Money{}, err
	}
	sum, err = sum.Add(p.tolls)
	if err != nil {
		return kernel.Money{}, err
	}
	return sum.Add(p.extra)
}

// Validate checks that every component is a constructed Money value.
func (p PriceBreakdown) Validate() error {
	return errors.Join(
		p.base.Validate(),
		p.insurance.Validate(),
		p.tolls.Validate(),
		p.extra.Validate(),
	)
}
