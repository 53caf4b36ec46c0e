package ports

import (
	"context"
	"time"
)

// InvitationNotice is the payload of the email inviting a carrier to quote.
// ResponseURL embeds the invitation's access token.
type InvitationNotice struct {
	To           string
	CarrierName  string
	RequestCode  string
	RequestTitle string
	PickupCity   string
	DeliveryCity string
	ResponseURL  string
}

// ConfirmationNotice tells a carrier its offer has been confirmed.
type ConfirmationNotice struct {
	To           string
	CarrierName  string
	RequestCode  string
	RequestTitle string
	TotalPrice   string
	PickupDate   time.Time
}

// CancellationNotice tells a carrier its previously confirmed offer has been
// withdrawn.
type CancellationNotice struct {
	To           string
	CarrierName  string
	RequestCode  string
	RequestTitle string
}

// ReminderNotice nudges a carrier that has not responded to an invitation.
type ReminderNotice struct {
	To           string
	CarrierName  string
	RequestCode  string
	RequestTitle string
	ResponseURL  string
}

// Notifier sends workflow emails to carriers. Implementations are invoked
// after the owning transaction commits; failures are reported to the caller
// but never abort the workflow.
type Notifier interface {
	SendInvitation(ctx context.Context, notice InvitationNotice) error
	SendConfirmation(ctx context.Context, notice ConfirmationNotice) error
	SendCancellation(ctx context.Context, notice CancellationNotice) error
	SendReminder(ctx context.Context, notice ReminderNotice) error
}
