package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var (
	ErrGetResponsePageQueryIsNotConstructed = errors.New(
		"GetResponsePageQuery must be created via NewGetResponsePageQuery constructor",
	)
)

// GetResponsePageQuery retrieves everything the public response page shows
// an invited carrier: the shipment summary, whether offers are still being
// accepted, and the carrier's own previous offer for prefill.
//
// The token is the only credential; an unknown token yields the same
// not-found error a malformed one would.
type GetResponsePageQuery struct {
	token kernel.AccessToken

	guard guard.ConstructorGuard
}

// NewGetResponsePageQuery creates a response page query for the given token.
func NewGetResponsePageQuery(token kernel.AccessToken) (GetResponsePageQuery, error) {
	if err := token.Validate(); err != nil {
		return GetResponsePageQuery{}, err
	}

	return GetResponsePageQuery{
		token: token,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q GetResponsePageQuery) Token() kernel.AccessToken { return q.token }

// Validate ensures the query was created through the constructor.
func (q GetResponsePageQuery) Validate() error {
	return q.guard.Validate(ErrGetResponsePageQueryIsNotConstructed)
}

// GetResponsePageQueryResponse is the public response page content.
type GetResponsePageQueryResponse struct {
	RequestCode  string
	RequestTitle string
	CarrierName  string

	PickupAddress   AddressView
	DeliveryAddress AddressView

	GoodsDescription string
	PickupDate       *time.Time
	DeliveryDate     *time.Time

	Packages      []PackageLineView
	TotalPackages int
	TotalWeightKg float64
	TotalVolumeM3 float64

	AcceptingOffers bool
	ExistingOffer   *OfferPrefill
}

// OfferPrefill carries the carrier's previous submission so the form can be
// pre-populated on resubmission.
type OfferPrefill struct {
	Base      kernel.Money
	Insurance kernel.Money
	Tolls     kernel.Money
	Extra     kernel.Money
	Total     kernel.Money

	PickupDate            time.Time
	DeliveryDate          time.Time
	VehicleType           string
	IncludesTracking      bool
	IncludesInsurance     bool
	IncludesFloorDelivery bool
	Notes                 string
}
