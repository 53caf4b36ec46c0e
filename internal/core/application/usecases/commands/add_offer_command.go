package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/offer"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrAddOfferCommandIsNotConstructed = errors.New(
	"AddOfferCommand must be created via NewAddOfferCommand constructor",
)

// AddOfferCommand records a quote that arrived out of band, by phone or
// plain email, entered by staff on behalf of a carrier. The total is taken
// as the plain component sum without tax gross-up.
type AddOfferCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	carrierID kernel.UUID
	prices    offer.PriceBreakdown
	terms     OfferTerms

	guard guard.ConstructorGuard
}

// NewAddOfferCommand creates a command for a staff-entered offer.
func NewAddOfferCommand(
	requestID, carrierID kernel.UUID,
	prices offer.PriceBreakdown,
	terms OfferTerms,
) (AddOfferCommand, error) {
	cmd := AddOfferCommand{
		terms: terms,
		guard: guard.NewConstructorGuard(),
	}

	err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setCarrierID(carrierID),
		cmd.setPrices(prices),
	)
	if err != nil {
		return AddOfferCommand{}, err
	}

	if terms.PickupDate.IsZero() {
		return AddOfferCommand{}, errs.NewValueIsRequiredError("pickupDate")
	}
	if terms.DeliveryDate.IsZero() {
		return AddOfferCommand{}, errs.NewValueIsRequiredError("deliveryDate")
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddOfferCommand) Validate() error {
	return c.guard.Validate(ErrAddOfferCommandIsNotConstructed)
}

func (c AddOfferCommand) RequestID() kernel.UUID       { return c.requestID }
func (c AddOfferCommand) CarrierID() kernel.UUID       { return c.carrierID }
func (c AddOfferCommand) Prices() offer.PriceBreakdown { return c.prices }
func (c AddOfferCommand) Terms() OfferTerms            { return c.terms }

func (c *AddOfferCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}
	c.requestID = requestID
	return nil
}

func (c *AddOfferCommand) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}
	c.carrierID = carrierID
	return nil
}

func (c *AddOfferCommand) setPrices(prices offer.PriceBreakdown) error {
	if err := prices.Validate(); err != nil {
		return err
	}
	c.prices = prices
	return nil
}
