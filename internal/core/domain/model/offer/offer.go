package offer

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	// ErrOfferIsNotConstructed is returned when an Offer was not created via
	// one of the constructors.
	ErrOfferIsNotConstructed = errors.New("offer must be created via NewQuotedOffer, NewManualOffer or RestoreOffer")

	// ErrOfferIsConfirmed is returned when mutating a quote that has already
	// been committed to its carrier.
	ErrOfferIsConfirmed = errors.New("offer is confirmed and cannot be updated")
)

// Terms carries the schedule and service conditions of a quote.
type Terms struct {
	PickupDate            time.Time
	DeliveryDate          time.Time
	VehicleType           string
	IncludesTracking      bool
	IncludesInsurance     bool
	IncludesFloorDelivery bool
	Notes                 string
	ExpiresAt             time.Time
}

func (t Terms) validate() error {
	var result error

	if t.PickupDate.IsZero() {
		result = errors.Join(result, errs.NewValueIsRequiredError("pickupDate"))
	}
	if t.DeliveryDate.IsZero() {
		result = errors.Join(result, errs.NewValueIsRequiredError("deliveryDate"))
	}
	if !t.PickupDate.IsZero() && !t.DeliveryDate.IsZero() && t.DeliveryDate.Before(t.PickupDate) {
		result = errors.Join(result, errs.NewValueIsInvalidErrorWithCause("deliveryDate",
			fmt.Errorf("delivery %s precedes pickup %s",
				t.DeliveryDate.Format(time.DateOnly), t.PickupDate.Format(time.DateOnly))))
	}
	if t.ExpiresAt.IsZero() {
		result = errors.Join(result, errs.NewValueIsRequiredError("expiresAt"))
	}

	return result
}

// Offer is a carrier's quote for one request, reached through exactly one
// invitation. An invitation never carries more than one offer; a carrier
// resubmitting through its token updates the quote in place.
//
// The total is derived, never supplied: quoted offers gross up the pre-tax
// component sum by the tax rate, manual offers take the plain sum. An offer
// also owns its evaluation parameters and the tracking timeline recorded
// after confirmation.
type Offer struct {
	id           kernel.UUID
	requestID    kernel.UUID
	invitationID kernel.UUID
	carrierID    kernel.UUID

	prices PriceBreakdown
	total  kernel.Money

	terms Terms

	confirmed   bool
	confirmedAt *time.Time

	evaluationParameters []*EvaluationParameter
	trackingEvents       []*TrackingEvent

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewQuotedOffer creates an offer from a public token submission. The total
// is the pre-tax component sum grossed up by the tax rate in basis points.
func NewQuotedOffer(
	id, requestID, invitationID, carrierID kernel.UUID,
	prices PriceBreakdown,
	taxRateBasisPoints int64,
	terms Terms,
	createdAt time.Time,
) (*Offer, error) {
	total, err := grossTotal(prices, taxRateBasisPoints)
	if err != nil {
		return nil, err
	}
	return newOffer(id, requestID, invitationID, carrierID, prices, total, terms, createdAt)
}

// NewManualOffer creates an offer entered by staff. The total is the plain
// sum of the price components without tax gross-up.
func NewManualOffer(
	id, requestID, invitationID, carrierID kernel.UUID,
	prices PriceBreakdown,
	terms Terms,
	createdAt time.Time,
) (*Offer, error) {
	total, err := prices.Pretax()
	if err != nil {
		return nil, err
	}
	return newOffer(id, requestID, invitationID, carrierID, prices, total, terms, createdAt)
}

func newOffer(
	id, requestID, invitationID, carrierID kernel.UUID,
	prices PriceBreakdown,
	total kernel.Money,
	terms Terms,
	createdAt time.Time,
) (*Offer, error) {
	o := &Offer{
		createdAt: createdAt,
		updatedAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setRequestID(requestID),
		o.setInvitationID(invitationID),
		o.setCarrierID(carrierID),
		o.setPrices(prices, total),
		o.setTerms(terms),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOfferParams carries the full persisted state of an offer.
type RestoreOfferParams struct {
	ID                   kernel.UUID
	RequestID            kernel.UUID
	InvitationID         kernel.UUID
	CarrierID            kernel.UUID
	Prices               PriceBreakdown
	Total                kernel.Money
	Terms                Terms
	Confirmed            bool
	ConfirmedAt          *time.Time
	EvaluationParameters []*EvaluationParameter
	TrackingEvents       []*TrackingEvent
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// RestoreOffer reconstructs an Offer from persistence.
func RestoreOffer(p RestoreOfferParams) (*Offer, error) {
	o := &Offer{
		confirmed:   p.Confirmed,
		confirmedAt: p.ConfirmedAt,
		createdAt:   p.CreatedAt,
		updatedAt:   p.UpdatedAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setRequestID(p.RequestID),
		o.setInvitationID(p.InvitationID),
		o.setCarrierID(p.CarrierID),
		o.setPrices(p.Prices, p.Total),
		o.setTerms(p.Terms),
		o.setEvaluationParameters(p.EvaluationParameters),
		o.setTrackingEvents(p.TrackingEvents),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// IsEqual compares two offers by identity.
func (o *Offer) IsEqual(other *Offer) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Offer) ID() kernel.UUID           { return o.id }
func (o *Offer) RequestID() kernel.UUID    { return o.requestID }
func (o *Offer) InvitationID() kernel.UUID { return o.invitationID }
func (o *Offer) CarrierID() kernel.UUID    { return o.carrierID }
func (o *Offer) Prices() PriceBreakdown    { return o.prices }
func (o *Offer) Total() kernel.Money       { return o.total }
func (o *Offer) Terms() Terms              { return o.terms }
func (o *Offer) Confirmed() bool           { return o.confirmed }
func (o *Offer) ConfirmedAt() *time.Time   { return o.confirmedAt }
func (o *Offer) CreatedAt() time.Time      { return o.createdAt }
func (o *Offer) UpdatedAt() time.Time      { return o.updatedAt }

// EvaluationParameters returns the current parameter set, replace-all via
// ReplaceEvaluationParameters.
func (o *Offer) EvaluationParameters() []*EvaluationParameter {
	return o.evaluationParameters
}

// TrackingEvents returns the append-only tracking timeline.
func (o *Offer) TrackingEvents() []*TrackingEvent {
	return o.trackingEvents
}

// TransitDays returns the quoted transit time in whole days, derived from
// the offer's own dates.
func (o *Offer) TransitDays() int {
	return int(o.terms.DeliveryDate.Sub(o.terms.PickupDate) / (24 * time.Hour))
}

// IsExpired reports whether the quote's validity has lapsed.
func (o *Offer) IsExpired(now time.Time) bool {
	return now.After(o.terms.ExpiresAt)
}

// UpdateQuote replaces the quote content on resubmission through the token.
// The last submission wins; a confirmed offer can no longer change.
func (o *Offer) UpdateQuote(prices PriceBreakdown, taxRateBasisPoints int64, terms Terms, at time.Time) error {
	if o.confirmed {
		return ErrOfferIsConfirmed
	}

	total, err := grossTotal(prices, taxRateBasisPoints)
	if err != nil {
		return err
	}
	if err := errors.Join(o.setPrices(prices, total), o.setTerms(terms)); err != nil {
		return err
	}

	o.updatedAt = at
	return nil
}

// Confirm commits the offer to its carrier.
func (o *Offer) Confirm(at time.Time) {
	o.confirmed = true
	o.confirmedAt = &at
}

// Unconfirm withdraws a previous confirmation, used when another offer
// displaces this one or the request is reopened.
func (o *Offer) Unconfirm() {
	o.confirmed = false
	o.confirmedAt = nil
}

// ReplaceEvaluationParameters swaps the full parameter set.
func (o *Offer) ReplaceEvaluationParameters(parameters []*EvaluationParameter) error {
	return o.setEvaluationParameters(parameters)
}

// RecordTrackingEvent appends a milestone to the tracking timeline.
func (o *Offer) RecordTrackingEvent(event *TrackingEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}
	o.trackingEvents = append(o.trackingEvents, event)
	return nil
}

// Validate ensures the Offer was built through a constructor.
func (o *Offer) Validate() error {
	if o == nil {
		return ErrOfferIsNotConstructed
	}
	return o.guard.Validate(ErrOfferIsNotConstructed)
}

func grossTotal(prices PriceBreakdown, taxRateBasisPoints int64) (kernel.Money, error) {
	pretax, err := prices.Pretax()
	if err != nil {
		return kernel.Money{}, err
	}
	return pretax.WithTax(taxRateBasisPoints)
}

func (o *Offer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Offer) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}
	o.requestID = requestID
	return nil
}

func (o *Offer) setInvitationID(invitationID kernel.UUID) error {
	if err := invitationID.Validate(); err != nil {
		return err
	}
	o.invitationID = invitationID
	return nil
}

func (o *Offer) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}
	o.carrierID = carrierID
	return nil
}

func (o *Offer) setPrices(prices PriceBreakdown, total kernel.Money) error {
	if err := errors.Join(prices.Validate(), total.Validate()); err != nil {
		return err
	}
	o.prices = prices
	o.total = total
	return nil
}

func (o *Offer) setTerms(terms Terms) error {
	if err := terms.validate(); err != nil {
		return err
	}
	o.terms = terms
	return nil
}

func (o *Offer) setEvaluationParameters(parameters []*EvaluationParameter) error {
	for _, p := range parameters {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	o.evaluationParameters = parameters
	return nil
}

func (o *Offer) setTrackingEvents(events []*TrackingEvent) error {
	for _, e := range events {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	o.trackingEvents = events
	return nil
}
