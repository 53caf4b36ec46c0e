package request

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Status represents the lifecycle state of a transport request.
// It implements a state machine with defined transitions so a request can
// never skip a workflow step or leave a terminal state by accident.
//
// State transitions:
//
//	Draft ──> Sent ──> OffersReceived ──> Evaluating ──> Approved ──> Confirmed ──> InTransit ──> Delivered
//	                         │                               ^              │            │             │
//	                         └──────────> Approved ──────────┘<── Reopen ───┴────────────┴─────────────┘
//
//	Cancelled is reachable from every state except Delivered and Cancelled.
//
// The status is the single source of truth for the workflow position; there
// are no parallel boolean flags.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Draft is the initial status. The request is being composed and has not
	// been shown to any carrier.
	Draft

	// Sent means carrier invitations have been created and dispatched.
	Sent

	// OffersReceived means at least one carrier has submitted an offer.
	OffersReceived

	// Evaluating means staff are comparing the received offers.
	Evaluating

	// Approved means one offer has been selected, awaiting confirmation.
	Approved

	// Confirmed means the approved offer has been committed to its carrier.
	Confirmed

	// InTransit means the goods have been picked up.
	InTransit

	// Delivered means the goods reached their destination. Terminal except
	// for Reopen.
	Delivered

	// Cancelled means the request was abandoned. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Draft:          "Draft",
		Sent:           "Sent",
		OffersReceived: "OffersReceived",
		Evaluating:     "Evaluating",
		Approved:       "Approved",
		Confirmed:      "Confirmed",
		InTransit:      "InTransit",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Draft:          "Draft",
		Sent:           "Sent",
		OffersReceived: "OffersReceived",
		Evaluating:     "Evaluating",
		Approved:       "Approved",
		Confirmed:      "Confirmed",
		InTransit:      "InTransit",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

// StatusFromString restores a Status from its string representation,
// typically when loading a request from persistence.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status is one of the defined workflow states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further workflow transition except Reopen
// (for Delivered) is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// AllowsOfferSubmission reports whether a carrier may still submit or update
// an offer through its invitation token. Approval does not close the window;
// updated quotes stay relevant while a reopened request can be re-approved.
func (s Status) AllowsOfferSubmission() bool {
	return s == Sent || s == OffersReceived || s == Evaluating || s == Approved
}

// Send transitions the status to Sent. Only a Draft request can be sent.
func (s Status) Send() (Status, error) {
	if s != Draft {
		return 0, invalidTransition(s, "send")
	}
	return Sent, nil
}

// ReceiveOffer transitions Sent to OffersReceived on the first incoming
// offer. Later offers while OffersReceived, Evaluating or Approved keep the
// current status.
func (s Status) ReceiveOffer() (Status, error) {
	switch s {
	case Sent:
		return OffersReceived, nil
	case OffersReceived, Evaluating, Approved:
		return s, nil
	default:
		return 0, invalidTransition(s, "receive an offer for")
	}
}

// BeginEvaluation transitions OffersReceived to Evaluating.
func (s Status) BeginEvaluation() (Status, error) {
	if s != OffersReceived {
		return 0, invalidTransition(s, "begin evaluating")
	}
	return Evaluating, nil
}

// Approve transitions to Approved. Valid from OffersReceived and Evaluating,
// and from Approved itself so a reopened request can be re-approved on a
// different offer.
func (s Status) Approve() (Status, error) {
	if s != OffersReceived && s != Evaluating && s != Approved {
		return 0, invalidTransition(s, "approve an offer for")
	}
	return Approved, nil
}

// Confirm transitions Approved to Confirmed.
func (s Status) Confirm() (Status, error) {
	if s != Approved {
		return 0, invalidTransition(s, "confirm")
	}
	return Confirmed, nil
}

// Reopen returns a Confirmed, InTransit or Delivered request to Approved.
func (s Status) Reopen() (Status, error) {
	if s != Confirmed && s != InTransit && s != Delivered {
		return 0, invalidTransition(s, "reopen")
	}
	return Approved, nil
}

// MarkInTransit transitions Confirmed to InTransit.
func (s Status) MarkInTransit() (Status, error) {
	if s != Confirmed {
		return 0, invalidTransition(s, "mark in transit")
	}
	return InTransit, nil
}

// MarkDelivered transitions InTransit to Delivered.
func (s Status) MarkDelivered() (Status, error) {
	if s != InTransit {
		return 0, invalidTransition(s, "mark delivered")
	}
	return Delivered, nil
}

// Cancel transitions any non-terminal status to Cancelled.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s.IsTerminal() {
		return 0, invalidTransition(s, "cancel")
	}
	return Cancelled, nil
}

func invalidTransition(s Status, action string) error {
	return errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%s is not a valid status to %s a request", s.String(), action))
}
