package queries

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetResponsePageQueryHandler builds the public response page for an
// invitation token.
type GetResponsePageQueryHandler struct {
	db *gorm.DB
}

// NewGetResponsePageQueryHandler creates a handler for response page queries.
func NewGetResponsePageQueryHandler(db *gorm.DB) GetResponsePageQueryHandler {
	return GetResponsePageQueryHandler{db: db}
}

type responsePageRow struct {
	InvitationID       uuid.UUID
	RequestID          uuid.UUID
	Code               string
	Title              string
	Status             int
	CompanyName        string
	PickupStreet       string
	PickupPostalCode   string
	PickupCity         string
	PickupProvince     string
	PickupCountry      string
	DeliveryStreet     string
	DeliveryPostalCode string
	DeliveryCity       string
	DeliveryProvince   string
	DeliveryCountry    string
	GoodsDescription   string
	PickupDate         *time.Time
	DeliveryDate       *time.Time
}

type offerPrefillRow struct {
	BaseCents             int64
	InsuranceCents        int64
	TollsCents            int64
	ExtraCents            int64
	TotalCents            int64
	PickupDate            time.Time
	DeliveryDate          time.Time
	VehicleType           string
	IncludesTracking      bool
	IncludesInsurance     bool
	IncludesFloorDelivery bool
	Notes                 string
}

// Handle executes the response page query. An unknown token yields a
// not-found error with no further detail.
func (h GetResponsePageQueryHandler) Handle(
	ctx context.Context,
	query GetResponsePageQuery,
) (GetResponsePageQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetResponsePageQueryResponse{}, err
	}

	var row responsePageRow
	result := h.db.WithContext(ctx).Raw(`
		SELECT
			i.id AS invitation_id,
			r.id AS request_id,
			r.code, r.title, r.status,
			c.company_name,
			r.pickup_street, r.pickup_postal_code, r.pickup_city, r.pickup_province, r.pickup_country,
			r.delivery_street, r.delivery_postal_code, r.delivery_city, r.delivery_province, r.delivery_country,
			r.goods_description, r.pickup_date, r.delivery_date
		FROM invitations i
		JOIN requests r ON r.id = i.request_id
		JOIN carriers c ON c.id = i.carrier_id
		WHERE i.token = ? AND i.deleted_at IS NULL AND r.deleted_at IS NULL
	`, query.Token().String()).Scan(&row)
	if result.Error != nil {
		return GetResponsePageQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GetResponsePageQueryResponse{}, errs.NewObjectNotFoundError("invitation", query.Token().String())
	}

	status := request.Status(row.Status)
	response := GetResponsePageQueryResponse{
		RequestCode:      row.Code,
		RequestTitle:     row.Title,
		CarrierName:      row.CompanyName,
		PickupAddress:    addressView(row.PickupStreet, row.PickupPostalCode, row.PickupCity, row.PickupProvince, row.PickupCountry),
		DeliveryAddress:  addressView(row.DeliveryStreet, row.DeliveryPostalCode, row.DeliveryCity, row.DeliveryProvince, row.DeliveryCountry),
		GoodsDescription: row.GoodsDescription,
		PickupDate:       row.PickupDate,
		DeliveryDate:     row.DeliveryDate,
		Packages:         make([]PackageLineView, 0),
		AcceptingOffers:  status.AllowsOfferSubmission(),
	}

	var lines []packageLineRow
	if err := h.db.WithContext(ctx).Raw(`
		SELECT quantity, package_type, length_cm, width_cm, height_cm, weight_kg, fragile, stackable
		FROM packages
		WHERE request_id = ? AND deleted_at IS NULL
		ORDER BY sort_order
	`, row.RequestID).Scan(&lines).Error; err != nil {
		return GetResponsePageQueryResponse{}, err
	}

	for _, line := range lines {
		lineVolume := line.LengthCm * line.WidthCm * line.HeightCm / 1_000_000 * float64(line.Quantity)
		lineWeight := line.WeightKg * float64(line.Quantity)

		response.Packages = append(response.Packages, PackageLineView{
			Quantity:     line.Quantity,
			PackageType:  request.PackageType(line.PackageType).String(),
			LengthCm:     line.LengthCm,
			WidthCm:      line.WidthCm,
			HeightCm:     line.HeightCm,
			WeightKg:     line.WeightKg,
			Fragile:      line.Fragile,
			Stackable:    line.Stackable,
			LineWeightKg: lineWeight,
			LineVolumeM3: lineVolume,
		})

		response.TotalPackages += line.Quantity
		response.TotalWeightKg += lineWeight
		response.TotalVolumeM3 += lineVolume
	}

	var prefillRow offerPrefillRow
	offerResult := h.db.WithContext(ctx).Raw(`
		SELECT
			base_cents, insurance_cents, tolls_cents, extra_cents, total_cents,
			pickup_date, delivery_date, vehicle_type,
			includes_tracking, includes_insurance, includes_floor_delivery, notes
		FROM offers
		WHERE invitation_id = ? AND deleted_at IS NULL
	`, row.InvitationID).Scan(&prefillRow)
	if offerResult.Error != nil {
		return GetResponsePageQueryResponse{}, offerResult.Error
	}
	if offerResult.RowsAffected > 0 {
		prefill, err := buildPrefill(prefillRow)
		if err != nil {
			return GetResponsePageQueryResponse{}, err
		}
		response.ExistingOffer = prefill
	}

	return response, nil
}

func buildPrefill(row offerPrefillRow) (*OfferPrefill, error) {
	prefill := OfferPrefill{
		PickupDate:            row.PickupDate,
		DeliveryDate:          row.DeliveryDate,
		VehicleType:           row.VehicleType,
		IncludesTracking:      row.IncludesTracking,
		IncludesInsurance:     row.IncludesInsurance,
		IncludesFloorDelivery: row.IncludesFloorDelivery,
		Notes:                 row.Notes,
	}

	var err error
	if prefill.Base, err = kernel.NewMoneyFromCents(row.BaseCents); err != nil {
		return nil, err
	}
	if prefill.Insurance, err = kernel.NewMoneyFromCents(row.InsuranceCents); err != nil {
		return nil, err
	}
	if prefill.Tolls, err = kernel.NewMoneyFromCents(row.TollsCents); err != nil {
		return nil, err
	}
	if prefill.Extra, err = kernel.NewMoneyFromCents(row.ExtraCents); err != nil {
		return nil, err
	}
	if prefill.Total, err = kernel.NewMoneyFromCents(row.TotalCents); err != nil {
		return nil, err
	}

	return &prefill, nil
}
