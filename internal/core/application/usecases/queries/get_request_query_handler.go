package queries

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetRequestQueryHandler retrieves the request detail view from the database.
type GetRequestQueryHandler struct {
	db *gorm.DB
}

// NewGetRequestQueryHandler creates a handler for request detail queries.
func NewGetRequestQueryHandler(db *gorm.DB) GetRequestQueryHandler {
	return GetRequestQueryHandler{db: db}
}

type requestDetailRow struct {
	Code               string
	Title              string
	Status             int
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
	Description        string
	GoodsDescription   string
	Notes              string
	DeclaredValueCents *int64
	PickupDate         *time.Time
	DeliveryDate       *time.Time
	CreatedAt          time.Time
	SentAt             *time.Time
	ConfirmedAt        *time.Time
}

type packageLineRow struct {
	Quantity    int
	PackageType int
	LengthCm    float64
	WidthCm     float64
	HeightCm    float64
	WeightKg    float64
	Fragile     bool
	Stackable   bool
}

// Handle executes the detail query. Returns an ObjectNotFoundError when the
// request does not exist.
func (h GetRequestQueryHandler) Handle(
	ctx context.Context,
	query GetRequestQuery,
) (GetRequestQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRequestQueryResponse{}, err
	}

	var row requestDetailRow
	result := h.db.WithContext(ctx).Raw(`
		SELECT
			code, title, status,
			pickup_street, pickup_postal_code, pickup_city, pickup_province, pickup_country,
			delivery_street, delivery_postal_code, delivery_city, delivery_province, delivery_country,
			description, goods_description, notes, declared_value_cents,
			pickup_date, delivery_date,
			created_at, sent_at, confirmed_at
		FROM requests
		WHERE id = ? AND deleted_at IS NULL
	`, query.RequestID().Bytes()).Scan(&row)
	if result.Error != nil {
		return GetRequestQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GetRequestQueryResponse{}, errs.NewObjectNotFoundError("request", query.RequestID().String())
	}

	response := GetRequestQueryResponse{
		ID:               query.RequestID(),
		Code:             row.Code,
		Title:            row.Title,
		Status:           request.Status(row.Status).String(),
		PickupAddress:    addressView(row.PickupStreet, row.PickupPostalCode, row.PickupCity, row.PickupProvince, row.PickupCountry),
		DeliveryAddress:  addressView(row.DeliveryStreet, row.DeliveryPostalCode, row.DeliveryCity, row.DeliveryProvince, row.DeliveryCountry),
		Description:      row.Description,
		GoodsDescription: row.GoodsDescription,
		Notes:            row.Notes,
		PickupDate:       row.PickupDate,
		DeliveryDate:     row.DeliveryDate,
		Packages:         make([]PackageLineView, 0),
		CreatedAt:        row.CreatedAt,
		SentAt:           row.SentAt,
		ConfirmedAt:      row.ConfirmedAt,
	}

	if row.DeclaredValueCents != nil {
		declared, err := kernel.NewMoneyFromCents(*row.DeclaredValueCents)
		if err != nil {
			return GetRequestQueryResponse{}, err
		}
		response.DeclaredValue = &declared
	}

	var lines []packageLineRow
	if err := h.db.WithContext(ctx).Raw(`
		SELECT quantity, package_type, length_cm, width_cm, height_cm, weight_kg, fragile, stackable
		FROM packages
		WHERE request_id = ? AND deleted_at IS NULL
		ORDER BY sort_order
	`, query.RequestID().Bytes()).Scan(&lines).Error; err != nil {
		return GetRequestQueryResponse{}, err
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

	return response, nil
}

func addressView(street, postalCode, city, province, country string) AddressView {
	return AddressView{
		Street:     street,
		PostalCode: postalCode,
		City:       city,
		Province:   province,
		Country:    country,
	}
}
