// Package carrierrepo provides data transfer objects and mapping functions
// for carrier persistence.
package carrierrepo

import (
	"freight/internal/core/domain/model/carrier"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CarrierDTO represents the database structure for persisting carriers.
// The email is unique across registered and ad-hoc carriers, so a repeated
// ad-hoc recipient resolves to the same row.
type CarrierDTO struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CompanyName string         `gorm:"type:varchar(255);not null"`
	Email       string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	Phone       string         `gorm:"type:varchar(32)"`
	Active      bool           `gorm:"not null;index"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName overrides GORM's default naming to use "carriers".
func (CarrierDTO) TableName() string {
	return "carriers"
}

func fromDomain(aggregate *carrier.Carrier) CarrierDTO {
	return CarrierDTO{
		ID:          aggregate.ID().Bytes(),
		CompanyName: aggregate.CompanyName(),
		Email:       aggregate.Email(),
		Phone:       aggregate.Phone(),
		Active:      aggregate.Active(),
	}
}

func toDomain(dto CarrierDTO) (*carrier.Carrier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return carrier.RestoreCarrier(id, dto.CompanyName, dto.Email, dto.Phone, dto.Active)
}
