package commands

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/offer"
	"freight/internal/core/domain/model/request"
)

// RecordTransitCommandHandler moves a confirmed request through its physical
// lifecycle. Each transition also lands on the confirmed offer's tracking
// timeline so the carrier-facing history matches the request status.
type RecordTransitCommandHandler struct {
	uowFactory UoWFactory
}

func NewRecordTransitCommandHandler(uowFactory UoWFactory) RecordTransitCommandHandler {
	return RecordTransitCommandHandler{
		uowFactory: uowFactory,
	}
}

// HandleInTransit processes the pickup command.
func (h *RecordTransitCommandHandler) HandleInTransit(ctx context.Context, cmd MarkInTransitCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.transition(ctx, cmd.RequestID(), cmd.Note(), offer.TrackingEventInTransit,
		func(r *request.Request, at time.Time) error { return r.MarkInTransit(at) })
}

// HandleDelivered processes the delivery command.
func (h *RecordTransitCommandHandler) HandleDelivered(ctx context.Context, cmd MarkDeliveredCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.transition(ctx, cmd.RequestID(), cmd.Note(), offer.TrackingEventDelivered,
		func(r *request.Request, at time.Time) error { return r.MarkDelivered(at) })
}

func (h *RecordTransitCommandHandler) transition(
	ctx context.Context,
	requestID kernel.UUID,
	note string,
	eventType offer.TrackingEventType,
	move func(*request.Request, time.Time) error,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.RequestRepository().Get(ctx, requestID)
	if err != nil {
		return err
	}

	now := time.Now()
	if err = move(aggregate, now); err != nil {
		return err
	}

	confirmed, err := uow.OfferRepository().GetConfirmedByRequest(ctx, aggregate.ID())
	if err != nil {
		return err
	}

	event, err := offer.NewTrackingEvent(kernel.NewUUID(), eventType, note, now)
	if err != nil {
		return err
	}
	if err = confirmed.RecordTrackingEvent(event); err != nil {
		return err
	}

	if err = uow.OfferRepository().Update(ctx, confirmed); err != nil {
		return err
	}
	if err = uow.RequestRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
