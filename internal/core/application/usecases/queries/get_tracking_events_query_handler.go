package queries

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/offer"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTrackingEventsQueryHandler retrieves the tracking timeline of a request.
type GetTrackingEventsQueryHandler struct {
	db *gorm.DB
}

// NewGetTrackingEventsQueryHandler creates a handler for tracking timeline queries.
func NewGetTrackingEventsQueryHandler(db *gorm.DB) GetTrackingEventsQueryHandler {
	return GetTrackingEventsQueryHandler{db: db}
}

// Handle executes the timeline query, oldest event first.
func (h GetTrackingEventsQueryHandler) Handle(
	ctx context.Context,
	query GetTrackingEventsQuery,
) ([]GetTrackingEventsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	events := make([]GetTrackingEventsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			te.offer_id,
			c.company_name,
			te.event_type,
			te.note,
			te.occurred_at
		FROM tracking_events te
		JOIN offers o ON o.id = te.offer_id
		JOIN carriers c ON c.id = o.carrier_id
		WHERE o.request_id = ? AND o.deleted_at IS NULL
		ORDER BY te.occurred_at
	`, query.RequestID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var event GetTrackingEventsQueryResponse
		var offerID uuid.UUID
		var eventType int

		err = rows.Scan(
			&offerID,
			&event.CarrierName,
			&eventType,
			&event.Note,
			&event.OccurredAt,
		)
		if err != nil {
			return nil, err
		}

		if event.OfferID, err = kernel.UUIDFromBytes(offerID[:]); err != nil {
			return nil, err
		}
		event.EventType = offer.TrackingEventType(eventType).String()
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
