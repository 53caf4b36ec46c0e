package invitation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freight/internal/core/domain/model/invitation"
	"freight/internal/core/domain/model/kernel"
)

func newInvitation(t *testing.T) *invitation.Invitation {
	t.Helper()
	inv, err := invitation.NewInvitation(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), time.Now())
	require.NoError(t, err)
	return inv
}

func TestNewInvitation(t *testing.T) {
	inv := newInvitation(t)

	require.NoError(t, inv.Token().Validate())
	assert.False(t, inv.Sent())
	assert.False(t, inv.Responded())
	assert.Zero(t, inv.ReminderCount())
}

func TestNewInvitationTokensAreUnique(t *testing.T) {
	inv1 := newInvitation(t)
	inv2 := newInvitation(t)
	assert.False(t, inv1.Token().IsEqual(inv2.Token()))
}

func TestInvitationMarkSentAndResponded(t *testing.T) {
	inv := newInvitation(t)

	sentAt := time.Now()
	inv.MarkSent(sentAt)
	assert.True(t, inv.Sent())
	require.NotNil(t, inv.SentAt())

	first := sentAt.Add(time.Hour)
	inv.MarkResponded(first)
	assert.True(t, inv.Responded())

	// resubmission refreshes the timestamp
	second := first.Add(time.Hour)
	inv.MarkResponded(second)
	require.NotNil(t, inv.RespondedAt())
	assert.Equal(t, second, *inv.RespondedAt())
}

func TestInvitationNeedsReminder(t *testing.T) {
	now := time.Now()
	interval := 48 * time.Hour

	t.Run("never sent", func(t *testing.T) {
		inv := newInvitation(t)
		assert.False(t, inv.NeedsReminder(now, interval))
	})

	t.Run("sent recently", func(t *testing.T) {
		inv := newInvitation(t)
		inv.MarkSent(now.Add(-time.Hour))
		assert.False(t, inv.NeedsReminder(now, interval))
	})

	t.Run("sent long ago without response", func(t *testing.T) {
		inv := newInvitation(t)
		inv.MarkSent(now.Add(-72 * time.Hour))
		assert.True(t, inv.NeedsReminder(now, interval))
	})

	t.Run("responded", func(t *testing.T) {
		inv := newInvitation(t)
		inv.MarkSent(now.Add(-72 * time.Hour))
		inv.MarkResponded(now.Add(-time.Hour))
		assert.False(t, inv.NeedsReminder(now, interval))
	})

	t.Run("recent reminder postpones the next one", func(t *testing.T) {
		inv := newInvitation(t)
		inv.MarkSent(now.Add(-200 * time.Hour))
		inv.RecordReminder(now.Add(-time.Hour))
		assert.False(t, inv.NeedsReminder(now, interval))
		assert.Equal(t, 1, inv.ReminderCount())
	})

	t.Run("stale reminder triggers again", func(t *testing.T) {
		inv := newInvitation(t)
		inv.MarkSent(now.Add(-200 * time.Hour))
		inv.RecordReminder(now.Add(-100 * time.Hour))
		assert.True(t, inv.NeedsReminder(now, interval))
	})
}

func TestRestoreInvitation(t *testing.T) {
	token := kernel.NewAccessToken()
	sentAt := time.Now().Add(-time.Hour)

	inv, err := invitation.RestoreInvitation(invitation.RestoreInvitationParams{
		ID:            kernel.NewUUID(),
		RequestID:     kernel.NewUUID(),
		CarrierID:     kernel.NewUUID(),
		Token:         token,
		Sent:          true,
		SentAt:        &sentAt,
		ReminderCount: 2,
		CreatedAt:     time.Now().Add(-2 * time.Hour),
	})

	require.NoError(t, err)
	assert.True(t, inv.Token().IsEqual(token))
	assert.Equal(t, 2, inv.ReminderCount())
}

func TestRestoreInvitationRequiresToken(t *testing.T) {
	_, err := invitation.RestoreInvitation(invitation.RestoreInvitationParams{
		ID:        kernel.NewUUID(),
		RequestID: kernel.NewUUID(),
		CarrierID: kernel.NewUUID(),
		CreatedAt: time.Now(),
	})
	require.Error(t, err)
}

func TestInvitationValidate(t *testing.T) {
	var zero invitation.Invitation
	require.ErrorIs(t, zero.Validate(), invitation.ErrInvitationIsNotConstructed)

	var nilInvitation *invitation.Invitation
	require.ErrorIs(t, nilInvitation.Validate(), invitation.ErrInvitationIsNotConstructed)
}
