package http

import (
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/offer"
	"freight/internal/core/domain/model/request"
)

// Monetary amounts travel as two-decimal strings ("850.00") so nothing on the
// wire is ever a float.

type addressPayload struct {
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Country    string `json:"country"`
}

func (p addressPayload) toDomain() (kernel.Address, error) {
	return kernel.NewAddress(p.Street, p.PostalCode, p.City, p.Province, p.Country)
}

type geoPayload struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type windowPayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type requirementsPayload struct {
	Fragile               bool     `json:"fragile"`
	Perishable            bool     `json:"perishable"`
	Hazardous             bool     `json:"hazardous"`
	ADRCode               string   `json:"adr_code"`
	TemperatureControlled bool     `json:"temperature_controlled"`
	TemperatureMinC       *float64 `json:"temperature_min_c"`
	TemperatureMaxC       *float64 `json:"temperature_max_c"`
	InsuranceRequired     bool     `json:"insurance_required"`
	InsuranceCap          *string  `json:"insurance_cap"`
	TailLift              bool     `json:"tail_lift"`
	FloorDelivery         bool     `json:"floor_delivery"`
}

type detailsPayload struct {
	Description      string              `json:"description"`
	GoodsDescription string              `json:"goods_description"`
	DeclaredValue    *string             `json:"declared_value"`
	PickupDate       *time.Time          `json:"pickup_date"`
	DeliveryDate     *time.Time          `json:"delivery_date"`
	PickupWindow     *windowPayload      `json:"pickup_window"`
	DeliveryWindow   *windowPayload      `json:"delivery_window"`
	PickupGeo        *geoPayload         `json:"pickup_geo"`
	DeliveryGeo      *geoPayload         `json:"delivery_geo"`
	Requirements     requirementsPayload `json:"requirements"`
	Notes            string              `json:"notes"`
}

func (p detailsPayload) toDomain() (request.Details, error) {
	details := request.Details{
		Description:      p.Description,
		GoodsDescription: p.GoodsDescription,
		PickupDate:       p.PickupDate,
		DeliveryDate:     p.DeliveryDate,
		Notes:            p.Notes,
		Requirements: request.ServiceRequirements{
			Fragile:               p.Requirements.Fragile,
			Perishable:            p.Requirements.Perishable,
			Hazardous:             p.Requirements.Hazardous,
			ADRCode:               p.Requirements.ADRCode,
			TemperatureControlled: p.Requirements.TemperatureControlled,
			TemperatureMinC:       p.Requirements.TemperatureMinC,
			TemperatureMaxC:       p.Requirements.TemperatureMaxC,
			InsuranceRequired:     p.Requirements.InsuranceRequired,
			TailLift:              p.Requirements.TailLift,
			FloorDelivery:         p.Requirements.FloorDelivery,
		},
	}

	if p.DeclaredValue != nil {
		value, err := kernel.MoneyFromDecimalString(*p.DeclaredValue)
		if err != nil {
			return request.Details{}, err
		}
		details.DeclaredValue = &value
	}
	if p.Requirements.InsuranceCap != nil {
		insuranceCap, err := kernel.MoneyFromDecimalString(*p.Requirements.InsuranceCap)
		if err != nil {
			return request.Details{}, err
		}
		details.Requirements.InsuranceCap = &insuranceCap
	}
	if p.PickupWindow != nil {
		window, err := kernel.NewTimeWindow(p.PickupWindow.From, p.PickupWindow.To)
		if err != nil {
			return request.Details{}, err
		}
		details.PickupWindow = &window
	}
	if p.DeliveryWindow != nil {
		window, err := kernel.NewTimeWindow(p.DeliveryWindow.From, p.DeliveryWindow.To)
		if err != nil {
			return request.Details{}, err
		}
		details.DeliveryWindow = &window
	}
	if p.PickupGeo != nil {
		point, err := kernel.NewGeoPoint(p.PickupGeo.Lat, p.PickupGeo.Lon)
		if err != nil {
			return request.Details{}, err
		}
		details.PickupGeo = &point
	}
	if p.DeliveryGeo != nil {
		point, err := kernel.NewGeoPoint(p.DeliveryGeo.Lat, p.DeliveryGeo.Lon)
		if err != nil {
			return request.Details{}, err
		}
		details.DeliveryGeo = &point
	}

	return details, nil
}

type createRequestPayload struct {
	Title           string         `json:"title"`
	RequesterID     string         `json:"requester_id"`
	PickupAddress   addressPayload `json:"pickup_address"`
	DeliveryAddress addressPayload `json:"delivery_address"`
	Details         detailsPayload `json:"details"`
}

type updateRequestPayload struct {
	Title   string         `json:"title"`
	Details detailsPayload `json:"details"`
}

type packageLinePayload struct {
	Quantity    int     `json:"quantity"`
	PackageType string  `json:"package_type"`
	LengthCm    float64 `json:"length_cm"`
	WidthCm     float64 `json:"width_cm"`
	HeightCm    float64 `json:"height_cm"`
	WeightKg    float64 `json:"weight_kg"`
	Fragile     bool    `json:"fragile"`
	Stackable   bool    `json:"stackable"`
}

type updatePackagesPayload struct {
	Packages []packageLinePayload `json:"packages"`
}

func (p updatePackagesPayload) toLines() ([]commands.PackageLine, error) {
	lines := make([]commands.PackageLine, 0, len(p.Packages))
	for _, pkg := range p.Packages {
		packageType, err := request.PackageTypeFromString(pkg.PackageType)
		if err != nil {
			return nil, err
		}
		lines = append(lines, commands.PackageLine{
			Quantity:    pkg.Quantity,
			PackageType: packageType,
			LengthCm:    pkg.LengthCm,
			WidthCm:     pkg.WidthCm,
			HeightCm:    pkg.HeightCm,
			WeightKg:    pkg.WeightKg,
			Fragile:     pkg.Fragile,
			Stackable:   pkg.Stackable,
		})
	}
	return lines, nil
}

type adHocRecipientPayload struct {
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
}

type sendRequestPayload struct {
	CarrierIDs []string                `json:"carrier_ids"`
	AdHoc      []adHocRecipientPayload `json:"ad_hoc"`
}

type offerPayload struct {
	Base      string `json:"base"`
	Insurance string `json:"insurance"`
	Tolls     string `json:"tolls"`
	Extra     string `json:"extra"`

	PickupDate   time.Time `json:"pickup_date"`
	DeliveryDate time.Time `json:"delivery_date"`
	VehicleType  string    `json:"vehicle_type"`

	IncludesTracking      bool `json:"includes_tracking"`
	IncludesInsurance     bool `json:"includes_insurance"`
	IncludesFloorDelivery bool `json:"includes_floor_delivery"`

	Notes string `json:"notes"`
}

func (p offerPayload) toPrices() (offer.PriceBreakdown, error) {
	amounts := make([]kernel.Money, 4)
	for i, raw := range []string{p.Base, p.Insurance, p.Tolls, p.Extra} {
		value := raw
		if value == "" {
			value = "0.00"
		}
		amount, err := kernel.MoneyFromDecimalString(value)
		if err != nil {
			return offer.PriceBreakdown{}, err
		}
		amounts[i] = amount
	}
	return offer.NewPriceBreakdown(amounts[0], amounts[1], amounts[2], amounts[3])
}

func (p offerPayload) toTerms() commands.OfferTerms {
	return commands.OfferTerms{
		PickupDate:            p.PickupDate,
		DeliveryDate:          p.DeliveryDate,
		VehicleType:           p.VehicleType,
		IncludesTracking:      p.IncludesTracking,
		IncludesInsurance:     p.IncludesInsurance,
		IncludesFloorDelivery: p.IncludesFloorDelivery,
		Notes:                 p.Notes,
	}
}

type addOfferPayload struct {
	CarrierID string `json:"carrier_id"`
	offerPayload
}

type approveOfferPayload struct {
	OfferID string `json:"offer_id"`
}

type cancelRequestPayload struct {
	Reason string `json:"reason"`
}

type transitNotePayload struct {
	Note string `json:"note"`
}

type evaluationParameterPayload struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type saveParametersPayload struct {
	Parameters []evaluationParameterPayload `json:"parameters"`
}

// Response views.

type createdView struct {
	ID string `json:"id"`
}

type requestSummaryView struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	Title         string    `json:"title"`
	Status        string    `json:"status"`
	PickupCity    string    `json:"pickup_city"`
	DeliveryCity  string    `json:"delivery_city"`
	OffersCount   int       `json:"offers_count"`
	TotalWeightKg float64   `json:"total_weight_kg"`
	CreatedAt     time.Time `json:"created_at"`
}

type requestListView struct {
	Items    []requestSummaryView `json:"items"`
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}

func toRequestListView(result queries.ListRequestsQueryResponse) requestListView {
	items := make([]requestSummaryView, len(result.Items))
	for i, item := range result.Items {
		items[i] = requestSummaryView{
			ID:            item.ID.String(),
			Code:          item.Code,
			Title:         item.Title,
			Status:        item.Status,
			PickupCity:    item.PickupCity,
			DeliveryCity:  item.DeliveryCity,
			OffersCount:   item.OffersCount,
			TotalWeightKg: item.TotalWeightKg,
			CreatedAt:     item.CreatedAt,
		}
	}
	return requestListView{
		Items:    items,
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
	}
}

type addressView struct {
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Country    string `json:"country"`
}

func toAddressView(address queries.AddressView) addressView {
	return addressView{
		Street:     address.Street,
		PostalCode: address.PostalCode,
		City:       address.City,
		Province:   address.Province,
		Country:    address.Country,
	}
}

type packageLineView struct {
	Quantity     int     `json:"quantity"`
	PackageType  string  `json:"package_type"`
	LengthCm     float64 `json:"length_cm"`
	WidthCm      float64 `json:"width_cm"`
	HeightCm     float64 `json:"height_cm"`
	WeightKg     float64 `json:"weight_kg"`
	Fragile      bool    `json:"fragile"`
	Stackable    bool    `json:"stackable"`
	LineWeightKg float64 `json:"line_weight_kg"`
	LineVolumeM3 float64 `json:"line_volume_m3"`
}

func toPackageLineViews(packages []queries.PackageLineView) []packageLineView {
	views := make([]packageLineView, len(packages))
	for i, pkg := range packages {
		views[i] = packageLineView{
			Quantity:     pkg.Quantity,
			PackageType:  pkg.PackageType,
			LengthCm:     pkg.LengthCm,
			WidthCm:      pkg.WidthCm,
			HeightCm:     pkg.HeightCm,
			WeightKg:     pkg.WeightKg,
			Fragile:      pkg.Fragile,
			Stackable:    pkg.Stackable,
			LineWeightKg: pkg.LineWeightKg,
			LineVolumeM3: pkg.LineVolumeM3,
		}
	}
	return views
}

type requestDetailView struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Title  string `json:"title"`
	Status string `json:"status"`

	PickupAddress   addressView `json:"pickup_address"`
	DeliveryAddress addressView `json:"delivery_address"`

	Description      string  `json:"description"`
	GoodsDescription string  `json:"goods_description"`
	Notes            string  `json:"notes"`
	DeclaredValue    *string `json:"declared_value"`

	PickupDate   *time.Time `json:"pickup_date"`
	DeliveryDate *time.Time `json:"delivery_date"`

	Packages      []packageLineView `json:"packages"`
	TotalPackages int               `json:"total_packages"`
	TotalWeightKg float64           `json:"total_weight_kg"`
	TotalVolumeM3 float64           `json:"total_volume_m3"`

	CreatedAt   time.Time  `json:"created_at"`
	SentAt      *time.Time `json:"sent_at"`
	ConfirmedAt *time.Time `json:"confirmed_at"`
}

func toRequestDetailView(detail queries.GetRequestQueryResponse) requestDetailView {
	view := requestDetailView{
		ID:               detail.ID.String(),
		Code:             detail.Code,
		Title:            detail.Title,
		Status:           detail.Status,
		PickupAddress:    toAddressView(detail.PickupAddress),
		DeliveryAddress:  toAddressView(detail.DeliveryAddress),
		Description:      detail.Description,
		GoodsDescription: detail.GoodsDescription,
		Notes:            detail.Notes,
		PickupDate:       detail.PickupDate,
		DeliveryDate:     detail.DeliveryDate,
		Packages:         toPackageLineViews(detail.Packages),
		TotalPackages:    detail.TotalPackages,
		TotalWeightKg:    detail.TotalWeightKg,
		TotalVolumeM3:    detail.TotalVolumeM3,
		CreatedAt:        detail.CreatedAt,
		SentAt:           detail.SentAt,
		ConfirmedAt:      detail.ConfirmedAt,
	}
	if detail.DeclaredValue != nil {
		value := detail.DeclaredValue.String()
		view.DeclaredValue = &value
	}
	return view
}

type evaluationParameterView struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

func toEvaluationParameterViews(parameters []queries.EvaluationParameterView) []evaluationParameterView {
	views := make([]evaluationParameterView, len(parameters))
	for i, parameter := range parameters {
		views[i] = evaluationParameterView(parameter)
	}
	return views
}

type offerComparisonView struct {
	OfferID     string `json:"offer_id"`
	CarrierID   string `json:"carrier_id"`
	CarrierName string `json:"carrier_name"`

	Base      string `json:"base"`
	Insurance string `json:"insurance"`
	Tolls     string `json:"tolls"`
	Extra     string `json:"extra"`
	Total     string `json:"total"`

	PickupDate   time.Time `json:"pickup_date"`
	DeliveryDate time.Time `json:"delivery_date"`
	TransitDays  int       `json:"transit_days"`
	VehicleType  string    `json:"vehicle_type"`

	IncludesTracking      bool `json:"includes_tracking"`
	IncludesInsurance     bool `json:"includes_insurance"`
	IncludesFloorDelivery bool `json:"includes_floor_delivery"`

	ExpiresAt time.Time `json:"expires_at"`
	Expired   bool      `json:"expired"`
	Confirmed bool      `json:"confirmed"`

	EvaluationParameters []evaluationParameterView `json:"evaluation_parameters"`
}

func toOfferComparisonViews(offers []queries.CompareOffersQueryResponse) []offerComparisonView {
	views := make([]offerComparisonView, len(offers))
	for i, o := range offers {
		views[i] = offerComparisonView{
			OfferID:               o.OfferID.String(),
			CarrierID:             o.CarrierID.String(),
			CarrierName:           o.CarrierName,
			Base:                  o.Base.String(),
			Insurance:             o.Insurance.String(),
			Tolls:                 o.Tolls.String(),
			Extra:                 o.Extra.String(),
			Total:                 o.Total.String(),
			PickupDate:            o.PickupDate,
			DeliveryDate:          o.DeliveryDate,
			TransitDays:           o.TransitDays,
			VehicleType:           o.VehicleType,
			IncludesTracking:      o.IncludesTracking,
			IncludesInsurance:     o.IncludesInsurance,
			IncludesFloorDelivery: o.IncludesFloorDelivery,
			ExpiresAt:             o.ExpiresAt,
			Expired:               o.Expired,
			Confirmed:             o.Confirmed,
			EvaluationParameters:  toEvaluationParameterViews(o.EvaluationParameters),
		}
	}
	return views
}

type trackingEventView struct {
	OfferID     string    `json:"offer_id"`
	CarrierName string    `json:"carrier_name"`
	EventType   string    `json:"event_type"`
	Note        string    `json:"note"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func toTrackingEventViews(events []queries.GetTrackingEventsQueryResponse) []trackingEventView {
	views := make([]trackingEventView, len(events))
	for i, event := range events {
		views[i] = trackingEventView{
			OfferID:     event.OfferID.String(),
			CarrierName: event.CarrierName,
			EventType:   event.EventType,
			Note:        event.Note,
			OccurredAt:  event.OccurredAt,
		}
	}
	return views
}

type offerPrefillView struct {
	Base      string `json:"base"`
	Insurance string `json:"insurance"`
	Tolls     string `json:"tolls"`
	Extra     string `json:"extra"`
	Total     string `json:"total"`

	PickupDate   time.Time `json:"pickup_date"`
	DeliveryDate time.Time `json:"delivery_date"`
	VehicleType  string    `json:"vehicle_type"`

	IncludesTracking      bool `json:"includes_tracking"`
	IncludesInsurance     bool `json:"includes_insurance"`
	IncludesFloorDelivery bool `json:"includes_floor_delivery"`

	Notes string `json:"notes"`
}

type responsePageView struct {
	RequestCode  string `json:"request_code"`
	RequestTitle string `json:"request_title"`
	CarrierName  string `json:"carrier_name"`

	PickupAddress   addressView `json:"pickup_address"`
	DeliveryAddress addressView `json:"delivery_address"`

	GoodsDescription string     `json:"goods_description"`
	PickupDate       *time.Time `json:"pickup_date"`
	DeliveryDate     *time.Time `json:"delivery_date"`

	Packages      []packageLineView `json:"packages"`
	TotalPackages int               `json:"total_packages"`
	TotalWeightKg float64           `json:"total_weight_kg"`
	TotalVolumeM3 float64           `json:"total_volume_m3"`

	AcceptingOffers bool              `json:"accepting_offers"`
	ExistingOffer   *offerPrefillView `json:"existing_offer"`
}

func toResponsePageView(page queries.GetResponsePageQueryResponse) responsePageView {
	view := responsePageView{
		RequestCode:      page.RequestCode,
		RequestTitle:     page.RequestTitle,
		CarrierName:      page.CarrierName,
		PickupAddress:    toAddressView(page.PickupAddress),
		DeliveryAddress:  toAddressView(page.DeliveryAddress),
		GoodsDescription: page.GoodsDescription,
		PickupDate:       page.PickupDate,
		DeliveryDate:     page.DeliveryDate,
		Packages:         toPackageLineViews(page.Packages),
		TotalPackages:    page.TotalPackages,
		TotalWeightKg:    page.TotalWeightKg,
		TotalVolumeM3:    page.TotalVolumeM3,
		AcceptingOffers:  page.AcceptingOffers,
	}
	if page.ExistingOffer != nil {
		prefill := page.ExistingOffer
		view.ExistingOffer = &offerPrefillView{
			Base:                  prefill.Base.String(),
			Insurance:             prefill.Insurance.String(),
			Tolls:                 prefill.Tolls.String(),
			Extra:                 prefill.Extra.String(),
			Total:                 prefill.Total.String(),
			PickupDate:            prefill.PickupDate,
			DeliveryDate:          prefill.DeliveryDate,
			VehicleType:           prefill.VehicleType,
			IncludesTracking:      prefill.IncludesTracking,
			IncludesInsurance:     prefill.IncludesInsurance,
			IncludesFloorDelivery: prefill.IncludesFloorDelivery,
			Notes:                 prefill.Notes,
		}
	}
	return view
}

// distanceView matches the shape the request form's map widget consumes.
// tempo_stimato is in hours.
type distanceView struct {
	DistanzaKm   float64 `json:"distanza_km"`
	TempoStimato float64 `json:"tempo_stimato"`
}
