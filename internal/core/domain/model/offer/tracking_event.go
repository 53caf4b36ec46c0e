package offer

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// ErrTrackingEventIsNotConstructed is returned when a TrackingEvent was not
// created via NewTrackingEvent or RestoreTrackingEvent.
var ErrTrackingEventIsNotConstructed = errors.New("tracking event must be created via NewTrackingEvent or RestoreTrackingEvent")

// TrackingEventType classifies a milestone in the life of a confirmed offer.
type TrackingEventType int

const (
	// TrackingEventUnknown represents an invalid or undefined event type.
	TrackingEventUnknown TrackingEventType = iota
	TrackingEventConfirmed
	TrackingEventPickedUp
	TrackingEventInTransit
	TrackingEventDelivered
	TrackingEventCancelled
)

func getTrackingEventTypeStrings() map[TrackingEventType]string {
	return map[TrackingEventType]string{
		TrackingEventUnknown:   "Unknown",
		TrackingEventConfirmed: "Confirmed",
		TrackingEventPickedUp:  "PickedUp",
		TrackingEventInTransit: "InTransit",
		TrackingEventDelivered: "Delivered",
		TrackingEventCancelled: "Cancelled",
	}
}

func getValidTrackingEventTypeStrings() map[TrackingEventType]string {
	//nolint:exhaustive // TrackingEventUnknown is intentionally excluded as it's invalid
	return map[TrackingEventType]string{
		TrackingEventConfirmed: "Confirmed",
		TrackingEventPickedUp:  "PickedUp",
		TrackingEventInTransit: "InTransit",
		TrackingEventDelivered: "Delivered",
		TrackingEventCancelled: "Cancelled",
	}
}

// TrackingEventTypeFromString restores a TrackingEventType from its string
// representation.
func TrackingEventTypeFromString(s string) (TrackingEventType, error) {
	for eventType, str := range getValidTrackingEventTypeStrings() {
		if str == s {
			return eventType, nil
		}
	}
	return TrackingEventUnknown, errs.NewValueIsInvalidErrorWithCause("eventType",
		fmt.Errorf("%q is not a valid tracking event type", s))
}

// Validate checks that the TrackingEventType is one of the defined types.
func (t TrackingEventType) Validate() error {
	if _, ok := getValidTrackingEventTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("eventType",
			fmt.Errorf("%d is not a valid tracking event type", t))
	}
	return nil
}

// String returns the human-readable name of the event type.
func (t TrackingEventType) String() string {
	if str, ok := getTrackingEventTypeStrings()[t]; ok {
		return str
	}
	return "Unknown"
}

// TrackingEvent is one milestone on the timeline of a confirmed offer.
// Events are append-only; workflow transitions record them.
type TrackingEvent struct {
	id         kernel.UUID
	eventType  TrackingEventType
	note       string
	occurredAt time.Time

	guard guard.ConstructorGuard
}

// NewTrackingEvent creates a validated TrackingEvent.
func NewTrackingEvent(id kernel.UUID, eventType TrackingEventType, note string, occurredAt time.Time) (*TrackingEvent, error) {
	e := &TrackingEvent{
		note:       note,
		occurredAt: occurredAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(e.setID(id), e.setEventType(eventType)); err != nil {
		return nil, err
	}

	return e, nil
}

// RestoreTrackingEvent reconstructs a TrackingEvent from persistence.
func RestoreTrackingEvent(id kernel.UUID, eventType TrackingEventType, note string, occurredAt time.Time) (*TrackingEvent, error) {
	return NewTrackingEvent(id, eventType, note, occurredAt)
}

func (e *TrackingEvent) ID() kernel.UUID              { return e.id }
func (e *TrackingEvent) EventType() TrackingEventType { return e.eventType }
func (e *TrackingEvent) Note() string                 { return e.note }
func (e *TrackingEvent) OccurredAt() time.Time        { return e.occurredAt }

// Validate returns ErrTrackingEventIsNotConstructed for a zero-value event.
func (e *TrackingEvent) Validate() error {
	if e == nil {
		return ErrTrackingEventIsNotConstructed
	}
	return e.guard.Validate(ErrTrackingEventIsNotConstructed)
}

func (e *TrackingEvent) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *TrackingEvent) setEventType(eventType TrackingEventType) error {
	if err := eventType.Validate(); err != nil {
		return err
	}
	e.eventType = eventType
	return nil
}
