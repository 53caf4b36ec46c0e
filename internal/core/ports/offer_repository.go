package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/offer"
)

// OfferRepository defines the persistence contract for offer aggregates,
// including their evaluation parameters and tracking events.
type OfferRepository interface {
	// Add persists a new offer. A second offer for the same invitation
	// violates a unique constraint and yields an error.
	Add(ctx context.Context, aggregate *offer.Offer) error

	// Update persists changes to an existing offer, replacing its evaluation
	// parameters with the aggregate's current set and appending new tracking
	// events.
	Update(ctx context.Context, aggregate *offer.Offer) error

	// Get retrieves an offer by id.
	Get(ctx context.Context, id kernel.UUID) (*offer.Offer, error)

	// GetByInvitation retrieves the single offer of an invitation.
	// Returns an ObjectNotFoundError when the invitation has no offer yet.
	GetByInvitation(ctx context.Context, invitationID kernel.UUID) (*offer.Offer, error)

	// GetAllByRequest retrieves every offer submitted for one request.
	GetAllByRequest(ctx context.Context, requestID kernel.UUID) ([]*offer.Offer, error)

	// GetConfirmedByRequest retrieves the currently confirmed offer of a
	// request. Returns an ObjectNotFoundError when none is confirmed.
	GetConfirmedByRequest(ctx context.Context, requestID kernel.UUID) (*offer.Offer, error)
}
