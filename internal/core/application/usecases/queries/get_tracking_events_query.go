package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var (
	ErrGetTrackingEventsQueryIsNotConstructed = errors.New(
		"GetTrackingEventsQuery must be created via NewGetTrackingEventsQuery constructor",
	)
)

// GetTrackingEventsQuery retrieves the tracking timeline of a request:
// every event recorded on its offers, oldest first.
type GetTrackingEventsQuery struct {
	requestID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetTrackingEventsQuery creates a tracking timeline query.
func NewGetTrackingEventsQuery(requestID kernel.UUID) (GetTrackingEventsQuery, error) {
	if err := requestID.Validate(); err != nil {
		return GetTrackingEventsQuery{}, err
	}

	return GetTrackingEventsQuery{
		requestID: requestID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetTrackingEventsQuery) RequestID() kernel.UUID { return q.requestID }

// Validate ensures the query was created through the constructor.
func (q GetTrackingEventsQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingEventsQueryIsNotConstructed)
}

// GetTrackingEventsQueryResponse is one entry of the tracking timeline.
type GetTrackingEventsQueryResponse struct {
	OfferID     kernel.UUID
	CarrierName string
	EventType   string
	Note        string
	OccurredAt  time.Time
}
