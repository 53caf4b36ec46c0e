package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var (
	ErrCompareOffersQueryIsNotConstructed = errors.New(
		"CompareOffersQuery must be created via NewCompareOffersQuery constructor",
	)
)

// CompareOffersQuery retrieves all offers of one request side by side for
// the comparison grid: carrier, price components, total, transit days,
// expiry, and the evaluation parameters staff attached to each offer.
//
// Example:
//
//	query, err := NewCompareOffersQuery(requestID)
//	if err != nil {
//	    return err
//	}
//
//	comparison, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to compare offers: %w", err)
//	}
//
//	for _, row := range comparison {
//	    fmt.Printf("%s: %s (%d days)\n", row.CarrierName, row.Total, row.TransitDays)
//	}
type CompareOffersQuery struct {
	requestID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompareOffersQuery creates a comparison query for the given request.
func NewCompareOffersQuery(requestID kernel.UUID) (CompareOffersQuery, error) {
	if err := requestID.Validate(); err != nil {
		return CompareOffersQuery{}, err
	}

	return CompareOffersQuery{
		requestID: requestID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q CompareOffersQuery) RequestID() kernel.UUID { return q.requestID }

// Validate ensures the query was created through the constructor.
func (q CompareOffersQuery) Validate() error {
	return q.guard.Validate(ErrCompareOffersQueryIsNotConstructed)
}

// CompareOffersQueryResponse is one offer row of the comparison grid.
type CompareOffersQueryResponse struct {
	OfferID     kernel.UUID
	CarrierID   kernel.UUID
	CarrierName string

	Base      kernel.Money
	Insurance kernel.Money
	Tolls     kernel.Money
	Extra     kernel.Money
	Total     kernel.Money

	PickupDate   time.Time
	DeliveryDate time.Time
	TransitDays  int
	VehicleType  string

	IncludesTracking      bool
	IncludesInsurance     bool
	IncludesFloorDelivery bool

	ExpiresAt time.Time
	Expired   bool
	Confirmed bool

	EvaluationParameters []EvaluationParameterView
}

// EvaluationParameterView is one label/value pair of the comparison grid.
type EvaluationParameterView struct {
	Label string
	Value string
}
