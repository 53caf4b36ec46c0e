package ports

import (
	"context"
	"time"

	"freight/internal/core/domain/model/invitation"
	"freight/internal/core/domain/model/kernel"
)

// InvitationRepository defines the persistence contract for carrier
// invitations.
type InvitationRepository interface {
	// Add persists a new invitation.
	Add(ctx context.Context, aggregate *invitation.Invitation) error

	// Update persists changes to an existing invitation.
	Update(ctx context.Context, aggregate *invitation.Invitation) error

	// Get retrieves an invitation by id.
	Get(ctx context.Context, id kernel.UUID) (*invitation.Invitation, error)

	// GetByToken retrieves the invitation carrying the given access token.
	// Returns an ObjectNotFoundError when the token matches nothing; callers
	// must not distinguish that case from a malformed token.
	GetByToken(ctx context.Context, token kernel.AccessToken) (*invitation.Invitation, error)

	// GetAllByRequest retrieves every invitation of one request.
	GetAllByRequest(ctx context.Context, requestID kernel.UUID) ([]*invitation.Invitation, error)

	// GetAllAwaitingReminder retrieves invitations that were sent before the
	// cutoff, have no response, and whose last reminder (if any) also
	// precedes the cutoff.
	GetAllAwaitingReminder(ctx context.Context, cutoff time.Time) ([]*invitation.Invitation, error)
}
