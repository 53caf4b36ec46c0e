// Package requestrepo provides data transfer objects and mapping functions
// for request persistence, including the package line items owned by the
// request aggregate and the per-year code sequence.
package requestrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestDTO represents the database structure for persisting request
// aggregates. Packages are stored in their own table and loaded with the
// aggregate; replacing the package set replaces the rows.
type RequestDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code   string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	Title  string    `gorm:"type:varchar(255);not null"`
	Status int       `gorm:"not null;index"`

	RequesterID     uuid.UUID  `gorm:"type:uuid;not null"`
	OperatorID      *uuid.UUID `gorm:"type:uuid"`
	ApproverID      *uuid.UUID `gorm:"type:uuid"`
	ApprovedOfferID *uuid.UUID `gorm:"type:uuid"`

	Pickup   AddressDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Delivery AddressDTO `gorm:"embedded;embeddedPrefix:delivery_"`

	Description      string `gorm:"type:text"`
	GoodsDescription string `gorm:"type:text"`
	Notes            string `gorm:"type:text"`

	DeclaredValueCents *int64

	PickupDate         *time.Time
	DeliveryDate       *time.Time
	PickupWindowFrom   *string `gorm:"type:varchar(5)"`
	PickupWindowTo     *string `gorm:"type:varchar(5)"`
	DeliveryWindowFrom *string `gorm:"type:varchar(5)"`
	DeliveryWindowTo   *string `gorm:"type:varchar(5)"`

	PickupLat   *float64
	PickupLon   *float64
	DeliveryLat *float64
	DeliveryLon *float64

	Requirements RequirementsDTO `gorm:"embedded;embeddedPrefix:req_"`

	CreatedAt   time.Time `gorm:"not null"`
	SentAt      *time.Time
	EvaluatedAt *time.Time
	ApprovedAt  *time.Time
	ConfirmedAt *time.Time
	PickedUpAt  *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`

	Packages []PackageDTO `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "requests".
func (RequestDTO) TableName() string {
	return "requests"
}

// AddressDTO represents an embedded postal address.
type AddressDTO struct {
	Street     string `gorm:"type:varchar(255);not null"`
	PostalCode string `gorm:"type:varchar(16);not null"`
	City       string `gorm:"type:varchar(128);not null"`
	Province   string `gorm:"type:varchar(8)"`
	Country    string `gorm:"type:varchar(2);not null"`
}

// RequirementsDTO represents the embedded special handling flags.
type RequirementsDTO struct {
	Fragile               bool
	Perishable            bool
	Hazardous             bool
	ADRCode               string `gorm:"type:varchar(16)"`
	TemperatureControlled bool
	TemperatureMinC       *float64
	TemperatureMaxC       *float64
	InsuranceRequired     bool
	InsuranceCapCents     *int64
	TailLift              bool
	FloorDelivery         bool
}

// PackageDTO represents one package line item of a request.
type PackageDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity    int       `gorm:"not null"`
	PackageType int       `gorm:"not null"`
	LengthCm    float64   `gorm:"not null"`
	WidthCm     float64   `gorm:"not null"`
	HeightCm    float64   `gorm:"not null"`
	WeightKg    float64   `gorm:"not null"`
	Fragile     bool
	Stackable   bool
	SortOrder   int            `gorm:"not null"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName overrides GORM's default naming to use "packages".
func (PackageDTO) TableName() string {
	return "packages"
}

// CodeSequenceDTO backs the per-year TRS code counter.
type CodeSequenceDTO struct {
	Year      int `gorm:"primaryKey"`
	LastValue int `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "request_code_sequences".
func (CodeSequenceDTO) TableName() string {
	return "request_code_sequences"
}

func fromDomain(aggregate *request.Request) RequestDTO {
	details := aggregate.Details()

	dto := RequestDTO{
		ID:               aggregate.ID().Bytes(),
		Code:             aggregate.Code(),
		Title:            aggregate.Title(),
		Status:           int(aggregate.Status()),
		RequesterID:      aggregate.RequesterID().Bytes(),
		OperatorID:       optionalUUID(aggregate.OperatorID()),
		ApproverID:       optionalUUID(aggregate.ApproverID()),
		ApprovedOfferID:  optionalUUID(aggregate.ApprovedOfferID()),
		Pickup:           addressFromDomain(aggregate.PickupAddress()),
		Delivery:         addressFromDomain(aggregate.DeliveryAddress()),
		Description:      details.Description,
		GoodsDescription: details.GoodsDescription,
		Notes:            details.Notes,
		PickupDate:       details.PickupDate,
		DeliveryDate:     details.DeliveryDate,
		CreatedAt:        aggregate.CreatedAt(),
		SentAt:           aggregate.SentAt(),
		EvaluatedAt:      aggregate.EvaluatedAt(),
		ApprovedAt:       aggregate.ApprovedAt(),
		ConfirmedAt:      aggregate.ConfirmedAt(),
		PickedUpAt:       aggregate.PickedUpAt(),
		DeliveredAt:      aggregate.DeliveredAt(),
		CancelledAt:      aggregate.CancelledAt(),
	}

	if details.DeclaredValue != nil {
		cents := details.DeclaredValue.Cents()
		dto.DeclaredValueCents = &cents
	}
	if details.PickupWindow != nil {
		from, to := details.PickupWindow.From(), details.PickupWindow.To()
		dto.PickupWindowFrom, dto.PickupWindowTo = &from, &to
	}
	if details.DeliveryWindow != nil {
		from, to := details.DeliveryWindow.From(), details.DeliveryWindow.To()
		dto.DeliveryWindowFrom, dto.DeliveryWindowTo = &from, &to
	}
	if details.PickupGeo != nil {
		lat, lon := details.PickupGeo.Latitude(), details.PickupGeo.Longitude()
		dto.PickupLat, dto.PickupLon = &lat, &lon
	}
	if details.DeliveryGeo != nil {
		lat, lon := details.DeliveryGeo.Latitude(), details.DeliveryGeo.Longitude()
		dto.DeliveryLat, dto.DeliveryLon = &lat, &lon
	}

	req := details.Requirements
	dto.Requirements = RequirementsDTO{
		Fragile:               req.Fragile,
		Perishable:            req.Perishable,
		Hazardous:             req.Hazardous,
		ADRCode:               req.ADRCode,
		TemperatureControlled: req.TemperatureControlled,
		TemperatureMinC:       req.TemperatureMinC,
		TemperatureMaxC:       req.TemperatureMaxC,
		InsuranceRequired:     req.InsuranceRequired,
		TailLift:              req.TailLift,
		FloorDelivery:         req.FloorDelivery,
	}
	if req.InsuranceCap != nil {
		cents := req.InsuranceCap.Cents()
		dto.Requirements.InsuranceCapCents = &cents
	}

	requestID := aggregate.ID().Bytes()
	for _, pkg := range aggregate.Packages() {
		dto.Packages = append(dto.Packages, PackageDTO{
			ID:          pkg.ID().Bytes(),
			RequestID:   requestID,
			Quantity:    pkg.Quantity(),
			PackageType: int(pkg.PackageType()),
			LengthCm:    pkg.LengthCm(),
			WidthCm:     pkg.WidthCm(),
			HeightCm:    pkg.HeightCm(),
			WeightKg:    pkg.WeightKg(),
			Fragile:     pkg.Fragile(),
			Stackable:   pkg.Stackable(),
			SortOrder:   pkg.SortOrder(),
		})
	}

	return dto
}

func toDomain(dto RequestDTO) (*request.Request, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	requesterID, err := kernel.UUIDFromBytes(dto.RequesterID[:])
	if err != nil {
		return nil, err
	}

	operatorID, err := optionalUUIDToDomain(dto.OperatorID)
	if err != nil {
		return nil, err
	}
	approverID, err := optionalUUIDToDomain(dto.ApproverID)
	if err != nil {
		return nil, err
	}
	approvedOfferID, err := optionalUUIDToDomain(dto.ApprovedOfferID)
	if err != nil {
		return nil, err
	}

	pickup, err := addressToDomain(dto.Pickup)
	if err != nil {
		return nil, err
	}
	delivery, err := addressToDomain(dto.Delivery)
	if err != nil {
		return nil, err
	}

	details, err := detailsToDomain(dto)
	if err != nil {
		return nil, err
	}

	packages := make([]*request.Package, 0, len(dto.Packages))
	for _, pkgDto := range dto.Packages {
		pkg, pkgErr := packageToDomain(pkgDto)
		if pkgErr != nil {
			return nil, pkgErr
		}
		packages = append(packages, pkg)
	}

	return request.RestoreRequest(request.RestoreRequestParams{
		ID:              id,
		Code:            dto.Code,
		Title:           dto.Title,
		PickupAddress:   pickup,
		DeliveryAddress: delivery,
		Details:         details,
		Packages:        packages,
		Status:          request.Status(dto.Status),
		RequesterID:     requesterID,
		OperatorID:      operatorID,
		ApproverID:      approverID,
		ApprovedOfferID: approvedOfferID,
		CreatedAt:       dto.CreatedAt,
		SentAt:          dto.SentAt,
		EvaluatedAt:     dto.EvaluatedAt,
		ApprovedAt:      dto.ApprovedAt,
		ConfirmedAt:     dto.ConfirmedAt,
		PickedUpAt:      dto.PickedUpAt,
		DeliveredAt:     dto.DeliveredAt,
		CancelledAt:     dto.CancelledAt,
	})
}

func detailsToDomain(dto RequestDTO) (request.Details, error) {
	details := request.Details{
		Description:      dto.Description,
		GoodsDescription: dto.GoodsDescription,
		Notes:            dto.Notes,
		PickupDate:       dto.PickupDate,
		DeliveryDate:     dto.DeliveryDate,
	}

	if dto.DeclaredValueCents != nil {
		value, err := kernel.NewMoneyFromCents(*dto.DeclaredValueCents)
		if err != nil {
			return request.Details{}, err
		}
		details.DeclaredValue = &value
	}
	if dto.PickupWindowFrom != nil && dto.PickupWindowTo != nil {
		window, err := kernel.NewTimeWindow(*dto.PickupWindowFrom, *dto.PickupWindowTo)
		if err != nil {
			return request.Details{}, err
		}
		details.PickupWindow = &window
	}
	if dto.DeliveryWindowFrom != nil && dto.DeliveryWindowTo != nil {
		window, err := kernel.NewTimeWindow(*dto.DeliveryWindowFrom, *dto.DeliveryWindowTo)
		if err != nil {
			return request.Details{}, err
		}
		details.DeliveryWindow = &window
	}
	if dto.PickupLat != nil && dto.PickupLon != nil {
		point, err := kernel.NewGeoPoint(*dto.PickupLat, *dto.PickupLon)
		if err != nil {
			return request.Details{}, err
		}
		details.PickupGeo = &point
	}
	if dto.DeliveryLat != nil && dto.DeliveryLon != nil {
		point, err := kernel.NewGeoPoint(*dto.DeliveryLat, *dto.DeliveryLon)
		if err != nil {
			return request.Details{}, err
		}
		details.DeliveryGeo = &point
	}

	req := dto.Requirements
	details.Requirements = request.ServiceRequirements{
		Fragile:               req.Fragile,
		Perishable:            req.Perishable,
		Hazardous:             req.Hazardous,
		ADRCode:               req.ADRCode,
		TemperatureControlled: req.TemperatureControlled,
		TemperatureMinC:       req.TemperatureMinC,
		TemperatureMaxC:       req.TemperatureMaxC,
		InsuranceRequired:     req.InsuranceRequired,
		TailLift:              req.TailLift,
		FloorDelivery:         req.FloorDelivery,
	}
	if req.InsuranceCapCents != nil {
		insuranceCap, err := kernel.NewMoneyFromCents(*req.InsuranceCapCents)
		if err != nil {
			return request.Details{}, err
		}
		details.Requirements.InsuranceCap = &insuranceCap
	}

	return details, nil
}

func packageToDomain(dto PackageDTO) (*request.Package, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return request.RestorePackage(
		id,
		dto.Quantity,
		request.PackageType(dto.PackageType),
		dto.LengthCm,
		dto.WidthCm,
		dto.HeightCm,
		dto.WeightKg,
		dto.Fragile,
		dto.Stackable,
		dto.SortOrder,
	)
}

func addressFromDomain(a kernel.Address) AddressDTO {
	return AddressDTO{
		Street:     a.Street(),
		PostalCode: a.PostalCode(),
		City:       a.City(),
		Province:   a.Province(),
		Country:    a.Country(),
	}
}

func addressToDomain(dto AddressDTO) (kernel.Address, error) {
	return kernel.NewAddress(dto.Street, dto.PostalCode, dto.City, dto.Province, dto.Country)
}

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalUUIDToDomain(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	domainID, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &domainID, nil
}
