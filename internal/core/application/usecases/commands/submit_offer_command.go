package commands

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/offer"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrSubmitOfferCommandIsNotConstructed = errors.New(
	"SubmitOfferCommand must be created via NewSubmitOfferCommand constructor",
)

// OfferTerms carries the schedule and service conditions of a submission.
// The quote's expiry is not part of the submission; the handler stamps it
// from the configured validity window.
type OfferTerms struct {
	PickupDate            time.Time
	DeliveryDate          time.Time
	VehicleType           string
	IncludesTracking      bool
	IncludesInsurance     bool
	IncludesFloorDelivery bool
	Notes                 string
}

// SubmitOfferCommand records a carrier's quote submitted through the public
// tokenized response page. Resubmitting through the same token replaces the
// previous quote.
type SubmitOfferCommand struct { //nolint:recvcheck //using for validation
	token  kernel.AccessToken
	prices offer.PriceBreakdown
	terms  OfferTerms

	guard guard.ConstructorGuard
}

// NewSubmitOfferCommand creates a command for a public offer submission.
func NewSubmitOfferCommand(
	token kernel.AccessToken,
	prices offer.PriceBreakdown,
	terms OfferTerms,
) (SubmitOfferCommand, error) {
	cmd := SubmitOfferCommand{
		terms: terms,
		guard: guard.NewConstructorGuard(),
	}

	err := errors.Join(
		cmd.setToken(token),
		cmd.setPrices(prices),
	)
	if err != nil {
		return SubmitOfferCommand{}, err
	}

	if terms.PickupDate.IsZero() {
		return SubmitOfferCommand{}, errs.NewValueIsRequiredError("pickupDate")
	}
	if terms.DeliveryDate.IsZero() {
		return SubmitOfferCommand{}, errs.NewValueIsRequiredError("deliveryDate")
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitOfferCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOfferCommandIsNotConstructed)
}

func (c SubmitOfferCommand) Token() kernel.AccessToken    { return c.token }
func (c SubmitOfferCommand) Prices() offer.PriceBreakdown { return c.prices }
func (c SubmitOfferCommand) Terms() OfferTerms            { return c.terms }

func (c *SubmitOfferCommand) setToken(token kernel.AccessToken) error {
	if err := token.Validate(); err != nil {
		return err
	}
	c.token = token
	return nil
}

func (c *SubmitOfferCommand) setPrices(prices offer.PriceBreakdown) error {
	if err := prices.Validate(); err != nil {
		return err
	}
	c.prices = prices
	return nil
}
