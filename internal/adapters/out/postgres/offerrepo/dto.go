// Package offerrepo provides data transfer objects and mapping functions
// for offer persistence, including evaluation parameters and tracking
// events owned by the offer aggregate.
package offerrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/offer"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OfferDTO represents the database structure for persisting offers. The
// unique index on InvitationID backs the one-offer-per-invitation invariant
// against concurrent submissions through the same token.
type OfferDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID    uuid.UUID `gorm:"type:uuid;not null;index"`
	InvitationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CarrierID    uuid.UUID `gorm:"type:uuid;not null;index"`

	BaseCents      int64 `gorm:"not null"`
	InsuranceCents int64 `gorm:"not null"`
	TollsCents     int64 `gorm:"not null"`
	ExtraCents     int64 `gorm:"not null"`
	TotalCents     int64 `gorm:"not null"`

	PickupDate            time.Time `gorm:"not null"`
	DeliveryDate          time.Time `gorm:"not null"`
	VehicleType           string    `gorm:"type:varchar(64)"`
	IncludesTracking      bool
	IncludesInsurance     bool
	IncludesFloorDelivery bool
	Notes                 string    `gorm:"type:text"`
	ExpiresAt             time.Time `gorm:"not null"`

	Confirmed   bool `gorm:"not null;index"`
	ConfirmedAt *time.Time

	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`

	EvaluationParameters []EvaluationParameterDTO `gorm:"foreignKey:OfferID;constraint:OnDelete:CASCADE"`
	TrackingEvents       []TrackingEventDTO       `gorm:"foreignKey:OfferID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "offers".
func (OfferDTO) TableName() string {
	return "offers"
}

// EvaluationParameterDTO represents one label/value pair of the comparison
// grid of an offer.
type EvaluationParameterDTO struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OfferID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Label     string         `gorm:"type:varchar(128);not null"`
	Value     string         `gorm:"type:varchar(255)"`
	SortOrder int            `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName overrides GORM's default naming to use "evaluation_parameters".
func (EvaluationParameterDTO) TableName() string {
	return "evaluation_parameters"
}

// TrackingEventDTO represents one entry of the offer's tracking timeline.
type TrackingEventDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OfferID    uuid.UUID `gorm:"type:uuid;not null;index"`
	EventType  int       `gorm:"not null"`
	Note       string    `gorm:"type:text"`
	OccurredAt time.Time `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "tracking_events".
func (TrackingEventDTO) TableName() string {
	return "tracking_events"
}

func fromDomain(aggregate *offer.Offer) OfferDTO {
	offerID := aggregate.ID().Bytes()
	terms := aggregate.Terms()
	prices := aggregate.Prices()

	dto := OfferDTO{
		ID:                    offerID,
		RequestID:             aggregate.RequestID().Bytes(),
		InvitationID:          aggregate.InvitationID().Bytes(),
		CarrierID:             aggregate.CarrierID().Bytes(),
		BaseCents:             prices.Base().Cents(),
		InsuranceCents:        prices.Insurance().Cents(),
		TollsCents:            prices.Tolls().Cents(),
		ExtraCents:            prices.Extra().Cents(),
		TotalCents:            aggregate.Total().Cents(),
		PickupDate:            terms.PickupDate,
		DeliveryDate:          terms.DeliveryDate,
		VehicleType:           terms.VehicleType,
		IncludesTracking:      terms.IncludesTracking,
		IncludesInsurance:     terms.IncludesInsurance,
		IncludesFloorDelivery: terms.IncludesFloorDelivery,
		Notes:                 terms.Notes,
		ExpiresAt:             terms.ExpiresAt,
		Confirmed:             aggregate.Confirmed(),
		ConfirmedAt:           aggregate.ConfirmedAt(),
		CreatedAt:             aggregate.CreatedAt(),
		UpdatedAt:             aggregate.UpdatedAt(),
	}

	for _, p := range aggregate.EvaluationParameters() {
		dto.EvaluationParameters = append(dto.EvaluationParameters, EvaluationParameterDTO{
			ID:        p.ID().Bytes(),
			OfferID:   offerID,
			Label:     p.Label(),
			Value:     p.Value(),
			SortOrder: p.SortOrder(),
		})
	}

	for _, e := range aggregate.TrackingEvents() {
		dto.TrackingEvents = append(dto.TrackingEvents, TrackingEventDTO{
			ID:         e.ID().Bytes(),
			OfferID:    offerID,
			EventType:  int(e.EventType()),
			Note:       e.Note(),
			OccurredAt: e.OccurredAt(),
		})
	}

	return dto
}

func toDomain(dto OfferDTO) (*offer.Offer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	requestID, err := kernel.UUIDFromBytes(dto.RequestID[:])
	if err != nil {
		return nil, err
	}
	invitationID, err := kernel.UUIDFromBytes(dto.InvitationID[:])
	if err != nil {
		return nil, err
	}
	carrierID, err := kernel.UUIDFromBytes(dto.CarrierID[:])
	if err != nil {
		return nil, err
	}

	prices, err := pricesToDomain(dto)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoneyFromCents(dto.TotalCents)
	if err != nil {
		return nil, err
	}

	parameters := make([]*offer.EvaluationParameter, 0, len(dto.EvaluationParameters))
	for _, pDto := range dto.EvaluationParameters {
		p, pErr := parameterToDomain(pDto)
		if pErr != nil {
			return nil, pErr
		}
		parameters = append(parameters, p)
	}

	events := make([]*offer.TrackingEvent, 0, len(dto.TrackingEvents))
	for _, eDto := range dto.TrackingEvents {
		e, eErr := eventToDomain(eDto)
		if eErr != nil {
			return nil, eErr
		}
		events = append(events, e)
	}

	return offer.RestoreOffer(offer.RestoreOfferParams{
		ID:           id,
		RequestID:    requestID,
		InvitationID: invitationID,
		CarrierID:    carrierID,
		Prices:       prices,
		Total:        total,
		Terms: offer.Terms{
			PickupDate:            dto.PickupDate,
			DeliveryDate:          dto.DeliveryDate,
			VehicleType:           dto.VehicleType,
			IncludesTracking:      dto.IncludesTracking,
			IncludesInsurance:     dto.IncludesInsurance,
			IncludesFloorDelivery: dto.IncludesFloorDelivery,
			Notes:                 dto.Notes,
			ExpiresAt:             dto.ExpiresAt,
		},
		Confirmed:            dto.Confirmed,
		ConfirmedAt:          dto.ConfirmedAt,
		EvaluationParameters: parameters,
		TrackingEvents:       events,
		CreatedAt:            dto.CreatedAt,
		UpdatedAt:            dto.UpdatedAt,
	})
}

func pricesToDomain(dto OfferDTO) (offer.PriceBreakdown, error) {
	base, err := kernel.NewMoneyFromCents(dto.BaseCents)
	if err != nil {
		return offer.PriceBreakdown{}, err
	}
	insurance, err := kernel.NewMoneyFromCents(dto.InsuranceCents)
	if err != nil {
		return offer.PriceBreakdown{}, err
	}
	tolls, err := kernel.NewMoneyFromCents(dto.TollsCents)
	if err != nil {
		return offer.PriceBreakdown{}, err
	}
	extra, err := kernel.NewMoneyFromCents(dto.ExtraCents)
	if err != nil {
		return offer.PriceBreakdown{}, err
	}

	return offer.NewPriceBreakdown(base, insurance, tolls, extra)
}

func parameterToDomain(dto EvaluationParameterDTO) (*offer.EvaluationParameter, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return offer.RestoreEvaluationParameter(id, dto.Label, dto.Value, dto.SortOrder)
}

func eventToDomain(dto TrackingEventDTO) (*offer.TrackingEvent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return offer.RestoreTrackingEvent(id, offer.TrackingEventType(dto.EventType), dto.Note, dto.OccurredAt)
}
