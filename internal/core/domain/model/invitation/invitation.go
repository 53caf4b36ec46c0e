package invitation

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

// ErrInvitationIsNotConstructed is returned when an Invitation was not
// created via NewInvitation or RestoreInvitation.
var ErrInvitationIsNotConstructed = errors.New("invitation must be created via NewInvitation or RestoreInvitation")

// Invitation grants one carrier access to one request through an unguessable
// token. The token is minted at creation and never rotated; the invitation
// tracks whether the email went out, whether the carrier responded, and how
// many reminders were sent.
type Invitation struct {
	id        kernel.UUID
	requestID kernel.UUID
	carrierID kernel.UUID
	token     kernel.AccessToken

	sent   bool
	sentAt *time.Time

	responded   bool
	respondedAt *time.Time

	reminderCount  int
	lastReminderAt *time.Time

	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewInvitation creates an invitation with a fresh access token. The email
// is not considered sent until MarkSent records a successful dispatch.
func NewInvitation(id, requestID, carrierID kernel.UUID, createdAt time.Time) (*Invitation, error) {
	inv := &Invitation{
		token:     kernel.NewAccessToken(),
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		inv.setID(id),
		inv.setRequestID(requestID),
		inv.setCarrierID(carrierID),
	); err != nil {
		return nil, err
	}

	return inv, nil
}

// RestoreInvitationParams carries the full persisted state of an invitation.
type RestoreInvitationParams struct {
	ID             kernel.UUID
	RequestID      kernel.UUID
	CarrierID      kernel.UUID
	Token          kernel.AccessToken
	Sent           bool
	SentAt         *time.Time
	Responded      bool
	RespondedAt    *time.Time
	ReminderCount  int
	LastReminderAt *time.Time
	CreatedAt      time.Time
}

// RestoreInvitation reconstructs an Invitation from persistence.
func RestoreInvitation(p RestoreInvitationParams) (*Invitation, error) {
	inv := &Invitation{
		sent:           p.Sent,
		sentAt:         p.SentAt,
		responded:      p.Responded,
		respondedAt:    p.RespondedAt,
		reminderCount:  p.ReminderCount,
		lastReminderAt: p.LastReminderAt,
		createdAt:      p.CreatedAt,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		inv.setID(p.ID),
		inv.setRequestID(p.RequestID),
		inv.setCarrierID(p.CarrierID),
		inv.setToken(p.Token),
	); err != nil {
		return nil, err
	}

	return inv, nil
}

// IsEqual compares two invitations by identity.
func (i *Invitation) IsEqual(other *Invitation) bool {
	return other != nil && i.id.IsEqual(other.id)
}

func (i *Invitation) ID() kernel.UUID            { return i.id }
func (i *Invitation) RequestID() kernel.UUID     { return i.requestID }
func (i *Invitation) CarrierID() kernel.UUID     { return i.carrierID }
func (i *Invitation) Token() kernel.AccessToken  { return i.token }
func (i *Invitation) Sent() bool                 { return i.sent }
func (i *Invitation) SentAt() *time.Time         { return i.sentAt }
func (i *Invitation) Responded() bool            { return i.responded }
func (i *Invitation) RespondedAt() *time.Time    { return i.respondedAt }
func (i *Invitation) ReminderCount() int         { return i.reminderCount }
func (i *Invitation) LastReminderAt() *time.Time { return i.lastReminderAt }
func (i *Invitation) CreatedAt() time.Time       { return i.createdAt }

// MarkSent records a successful email dispatch. Dispatch happens after the
// owning transaction commits, so an invitation can exist with sent == false
// when the mail server was down.
func (i *Invitation) MarkSent(at time.Time) {
	i.sent = true
	i.sentAt = &at
}

// MarkResponded records that the carrier submitted an offer through the
// token. Resubmissions refresh the timestamp.
func (i *Invitation) MarkResponded(at time.Time) {
	i.responded = true
	i.respondedAt = &at
}

// RecordReminder increments the reminder counter.
func (i *Invitation) RecordReminder(at time.Time) {
	i.reminderCount++
	i.lastReminderAt = &at
}

// NeedsReminder reports whether a reminder email is due: the invitation went
// out, got no response, and neither the original email nor the last reminder
// is younger than the given interval.
func (i *Invitation) NeedsReminder(now time.Time, interval time.Duration) bool {
	if !i.sent || i.responded {
		return false
	}
	last := i.sentAt
	if i.lastReminderAt != nil {
		last = i.lastReminderAt
	}
	if last == nil {
		return false
	}
	return now.Sub(*last) >= interval
}

// Validate ensures the Invitation was built through a constructor.
func (i *Invitation) Validate() error {
	if i == nil {
		return ErrInvitationIsNotConstructed
	}
	return i.guard.Validate(ErrInvitationIsNotConstructed)
}

func (i *Invitation) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Invitation) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}
	i.requestID = requestID
	return nil
}

func (i *Invitation) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return err
	}
	i.carrierID = carrierID
	return nil
}

func (i *Invitation) setToken(token kernel.AccessToken) error {
	if err := token.Validate(); err != nil {
		return err
	}
	i.token = token
	return nil
}
