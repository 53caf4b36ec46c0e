package queries

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompareOffersQueryHandler builds the offer comparison grid for a request.
//
// Example:
//
//	handler := NewCompareOffersQueryHandler(db)
//	query, _ := NewCompareOffersQuery(requestID)
//
//	comparison, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to compare offers: %v", err)
//	    return err
//	}
type CompareOffersQueryHandler struct {
	db *gorm.DB
}

// NewCompareOffersQueryHandler creates a handler for offer comparison queries.
func NewCompareOffersQueryHandler(db *gorm.DB) CompareOffersQueryHandler {
	return CompareOffersQueryHandler{db: db}
}

// Handle executes the comparison query. Offers are sorted cheapest first;
// transit days come from each offer's own dates.
func (h CompareOffersQueryHandler) Handle(
	ctx context.Context,
	query CompareOffersQuery,
) ([]CompareOffersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	offers := make([]CompareOffersQueryResponse, 0)
	index := make(map[uuid.UUID]int)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.carrier_id,
			c.company_name,
			o.base_cents,
			o.insurance_cents,
			o.tolls_cents,
			o.extra_cents,
			o.total_cents,
			o.pickup_date,
			o.delivery_date,
			o.vehicle_type,
			o.includes_tracking,
			o.includes_insurance,
			o.includes_floor_delivery,
			o.expires_at,
			o.confirmed
		FROM offers o
		JOIN carriers c ON c.id = o.carrier_id
		WHERE o.request_id = ? AND o.deleted_at IS NULL
		ORDER BY o.total_cents
	`, query.RequestID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := time.Now()
	for rows.Next() {
		var row CompareOffersQueryResponse
		var offerID, carrierID uuid.UUID
		var baseCents, insuranceCents, tollsCents, extraCents, totalCents int64

		err = rows.Scan(
			&offerID,
			&carrierID,
			&row.CarrierName,
			&baseCents,
			&insuranceCents,
			&tollsCents,
			&extraCents,
			&totalCents,
			&row.PickupDate,
			&row.DeliveryDate,
			&row.VehicleType,
			&row.IncludesTracking,
			&row.IncludesInsurance,
			&row.IncludesFloorDelivery,
			&row.ExpiresAt,
			&row.Confirmed,
		)
		if err != nil {
			return nil, err
		}

		if row.OfferID, err = kernel.UUIDFromBytes(offerID[:]); err != nil {
			return nil, err
		}
		if row.CarrierID, err = kernel.UUIDFromBytes(carrierID[:]); err != nil {
			return nil, err
		}

		if row.Base, err = kernel.NewMoneyFromCents(baseCents); err != nil {
			return nil, err
		}
		if row.Insurance, err = kernel.NewMoneyFromCents(insuranceCents); err != nil {
			return nil, err
		}
		if row.Tolls, err = kernel.NewMoneyFromCents(tollsCents); err != nil {
			return nil, err
		}
		if row.Extra, err = kernel.NewMoneyFromCents(extraCents); err != nil {
			return nil, err
		}
		if row.Total, err = kernel.NewMoneyFromCents(totalCents); err != nil {
			return nil, err
		}

		row.TransitDays = int(row.DeliveryDate.Sub(row.PickupDate).Hours() / 24)
		row.Expired = row.ExpiresAt.Before(now)
		row.EvaluationParameters = make([]EvaluationParameterView, 0)

		index[offerID] = len(offers)
		offers = append(offers, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(offers) == 0 {
		return offers, nil
	}

	paramRows, err := h.db.WithContext(ctx).Raw(`
		SELECT ep.offer_id, ep.label, ep.value
		FROM evaluation_parameters ep
		JOIN offers o ON o.id = ep.offer_id
		WHERE o.request_id = ? AND ep.deleted_at IS NULL AND o.deleted_at IS NULL
		ORDER BY ep.sort_order
	`, query.RequestID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer paramRows.Close()

	for paramRows.Next() {
		var offerID uuid.UUID
		var parameter EvaluationParameterView

		if err = paramRows.Scan(&offerID, &parameter.Label, &parameter.Value); err != nil {
			return nil, err
		}

		if i, ok := index[offerID]; ok {
			offers[i].EvaluationParameters = append(offers[i].EvaluationParameters, parameter)
		}
	}

	if err = paramRows.Err(); err != nil {
		return nil, err
	}

	return offers, nil
}
