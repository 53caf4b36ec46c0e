package offerrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/offer"
	"freight/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

// ErrDuplicateOffer signals that an offer already exists for the invitation.
// The unique index catches the race where two submissions through the same
// token pass the existence check concurrently.
var ErrDuplicateOffer = errors.New("an offer already exists for this invitation")

// GormOfferRepository implements OfferRepository using GORM.
type GormOfferRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOfferRepository creates a new GORM offer repository.
func NewGormOfferRepository(db *gorm.DB, tracker aggregateTracker) *GormOfferRepository {
	return &GormOfferRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new offer to the database.
func (r *GormOfferRepository) Add(ctx context.Context, aggregate *offer.Offer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
			return errs.NewValueIsInvalidErrorWithCause("invitationId", ErrDuplicateOffer)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing offer to the database. Evaluation parameter rows
// are replaced wholesale since their identity does not survive an edit of
// the comparison grid.
func (r *GormOfferRepository) Update(ctx context.Context, aggregate *offer.Offer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	if err := r.db.WithContext(ctx).
		Where("offer_id = ?", dto.ID).
		Delete(&EvaluationParameterDTO{}).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an offer by ID.
func (r *GormOfferRepository) Get(ctx context.Context, id kernel.UUID) (*offer.Offer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OfferDTO
	if err := r.preloaded(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("offer", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByInvitation retrieves the single offer of an invitation.
func (r *GormOfferRepository) GetByInvitation(ctx context.Context, invitationID kernel.UUID) (*offer.Offer, error) {
	if err := invitationID.Validate(); err != nil {
		return nil, err
	}

	var dto OfferDTO
	if err := r.preloaded(ctx).First(&dto, "invitation_id = ?", invitationID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("offer", invitationID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByRequest retrieves every offer submitted for one request, oldest
// first.
func (r *GormOfferRepository) GetAllByRequest(ctx context.Context, requestID kernel.UUID) ([]*offer.Offer, error) {
	if err := requestID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OfferDTO
	if err := r.preloaded(ctx).
		Order("created_at").
		Find(&dtos, "request_id = ?", requestID.Bytes()).Error; err != nil {
		return nil, err
	}

	offers := make([]*offer.Offer, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		offers = append(offers, aggregate)
	}

	return offers, nil
}

// GetConfirmedByRequest retrieves the currently confirmed offer of a request.
func (r *GormOfferRepository) GetConfirmedByRequest(ctx context.Context, requestID kernel.UUID) (*offer.Offer, error) {
	if err := requestID.Validate(); err != nil {
		return nil, err
	}

	var dto OfferDTO
	if err := r.preloaded(ctx).
		First(&dto, "request_id = ? AND confirmed = ?", requestID.Bytes(), true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("offer", requestID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOfferRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("EvaluationParameters", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order")
		}).
		Preload("TrackingEvents", func(db *gorm.DB) *gorm.DB {
			return db.Order("occurred_at")
		})
}
