package invitationrepo

import (
	"context"
	"errors"
	"time"

	"freight/internal/core/domain/model/invitation"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInvitationRepository implements InvitationRepository using GORM.
type GormInvitationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormInvitationRepository creates a new GORM invitation repository.
func NewGormInvitationRepository(db *gorm.DB, tracker aggregateTracker) *GormInvitationRepository {
	return &GormInvitationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new invitation to the database.
func (r *GormInvitationRepository) Add(ctx context.Context, aggregate *invitation.Invitation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing invitation to the database.
func (r *GormInvitationRepository) Update(ctx context.Context, aggregate *invitation.Invitation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an invitation by ID.
func (r *GormInvitationRepository) Get(ctx context.Context, id kernel.UUID) (*invitation.Invitation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto InvitationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("invitation", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByToken retrieves the invitation carrying the given access token. A
// missing token yields the same not-found error a malformed one would, so
// the public endpoint leaks nothing about which tokens exist.
func (r *GormInvitationRepository) GetByToken(ctx context.Context, token kernel.AccessToken) (*invitation.Invitation, error) {
	if err := token.Validate(); err != nil {
		return nil, err
	}

	var dto InvitationDTO
	if err := r.db.WithContext(ctx).First(&dto, "token = ?", token.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("invitation", token.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByRequest retrieves every invitation of one request.
func (r *GormInvitationRepository) GetAllByRequest(ctx context.Context, requestID kernel.UUID) ([]*invitation.Invitation, error) {
	if err := requestID.Validate(); err != nil {
		return nil, err
	}

	var dtos []InvitationDTO
	if err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&dtos, "request_id = ?", requestID.Bytes()).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllAwaitingReminder retrieves invitations sent before the cutoff with
// no response, whose last reminder (if any) also precedes the cutoff.
func (r *GormInvitationRepository) GetAllAwaitingReminder(ctx context.Context, cutoff time.Time) ([]*invitation.Invitation, error) {
	var dtos []InvitationDTO
	if err := r.db.WithContext(ctx).
		Where("sent = ? AND responded = ?", true, false).
		Where("sent_at < ?", cutoff).
		Where("last_reminder_at IS NULL OR last_reminder_at < ?", cutoff).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []InvitationDTO) ([]*invitation.Invitation, error) {
	invitations := make([]*invitation.Invitation, 0, len(dtos))
	for _, dto := range dtos {
		inv, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}
	return invitations, nil
}
