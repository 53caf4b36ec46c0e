package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var (
	ErrGetRequestQueryIsNotConstructed = errors.New(
		"GetRequestQuery must be created via NewGetRequestQuery constructor",
	)
)

// GetRequestQuery retrieves the full detail of one transport request,
// including its package lines and computed totals.
type GetRequestQuery struct {
	requestID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRequestQuery creates a detail query for the given request.
func NewGetRequestQuery(requestID kernel.UUID) (GetRequestQuery, error) {
	if err := requestID.Validate(); err != nil {
		return GetRequestQuery{}, err
	}

	return GetRequestQuery{
		requestID: requestID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetRequestQuery) RequestID() kernel.UUID { return q.requestID }

// Validate ensures the query was created through the constructor.
func (q GetRequestQuery) Validate() error {
	return q.guard.Validate(ErrGetRequestQueryIsNotConstructed)
}

// GetRequestQueryResponse is the request detail view.
type GetRequestQueryResponse struct {
	ID     kernel.UUID
	Code   string
	Title  string
	Status string

	PickupAddress   AddressView
	DeliveryAddress AddressView

	Description      string
	GoodsDescription string
	Notes            string
	DeclaredValue    *kernel.Money

	PickupDate   *time.Time
	DeliveryDate *time.Time

	Packages      []PackageLineView
	TotalPackages int
	TotalWeightKg float64
	TotalVolumeM3 float64

	CreatedAt   time.Time
	SentAt      *time.Time
	ConfirmedAt *time.Time
}

// AddressView is a flattened postal address.
type AddressView struct {
	Street     string
	PostalCode string
	City       string
	Province   string
	Country    string
}

// PackageLineView is one package line of the detail view.
type PackageLineView struct {
	Quantity     int
	PackageType  string
	LengthCm     float64
	WidthCm      float64
	HeightCm     float64
	WeightKg     float64
	Fragile      bool
	Stackable    bool
	LineWeightKg float64
	LineVolumeM3 float64
}
