// Package invitationrepo provides data transfer objects and mapping
// functions for invitation persistence.
package invitationrepo

import (
	"time"

	"freight/internal/core/domain/model/invitation"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvitationDTO represents the database structure for persisting carrier
// invitations. The token is unique and backs the public response URL.
type InvitationDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID      uuid.UUID `gorm:"type:uuid;not null;index"`
	CarrierID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Token          string    `gorm:"type:varchar(36);not null;uniqueIndex"`
	Sent           bool      `gorm:"not null"`
	SentAt         *time.Time
	Responded      bool `gorm:"not null"`
	RespondedAt    *time.Time
	ReminderCount  int `gorm:"not null"`
	LastReminderAt *time.Time
	CreatedAt      time.Time      `gorm:"not null"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// TableName overrides GORM's default naming to use "invitations".
func (InvitationDTO) TableName() string {
	return "invitations"
}

func fromDomain(aggregate *invitation.Invitation) InvitationDTO {
	return InvitationDTO{
		ID:             aggregate.ID().Bytes(),
		RequestID:      aggregate.RequestID().Bytes(),
		CarrierID:      aggregate.CarrierID().Bytes(),
		Token:          aggregate.Token().String(),
		Sent:           aggregate.Sent(),
		SentAt:         aggregate.SentAt(),
		Responded:      aggregate.Responded(),
		RespondedAt:    aggregate.RespondedAt(),
		ReminderCount:  aggregate.ReminderCount(),
		LastReminderAt: aggregate.LastReminderAt(),
		CreatedAt:      aggregate.CreatedAt(),
	}
}

func toDomain(dto InvitationDTO) (*invitation.Invitation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	requestID, err := kernel.UUIDFromBytes(dto.RequestID[:])
	if err != nil {
		return nil, err
	}
	carrierID, err := kernel.UUIDFromBytes(dto.CarrierID[:])
	if err != nil {
		return nil, err
	}
	token, err := kernel.AccessTokenFromString(dto.Token)
	if err != nil {
		return nil, err
	}

	return invitation.RestoreInvitation(invitation.RestoreInvitationParams{
		ID:             id,
		RequestID:      requestID,
		CarrierID:      carrierID,
		Token:          token,
		Sent:           dto.Sent,
		SentAt:         dto.SentAt,
		Responded:      dto.Responded,
		RespondedAt:    dto.RespondedAt,
		ReminderCount:  dto.ReminderCount,
		LastReminderAt: dto.LastReminderAt,
		CreatedAt:      dto.CreatedAt,
	})
}
