package request

import (
	"errors"
	"fmt"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// ServiceRequirements captures the special handling a shipment needs.
// It is a parameter object validated as a whole when attached to a request.
type ServiceRequirements struct {
	Fragile               bool
	Perishable            bool
	Hazardous             bool
	ADRCode               string
	TemperatureControlled bool
	TemperatureMinC       *float64
	TemperatureMaxC       *float64
	InsuranceRequired     bool
	InsuranceCap          *kernel.Money
	TailLift              bool
	FloorDelivery         bool
}

// Validate enforces cross-field rules: hazardous goods carry an ADR code,
// temperature bounds only appear on temperature-controlled shipments and are
// ordered, an insurance cap only appears when insurance is required.
func (r ServiceRequirements) Validate() error {
	var result error

	if r.Hazardous && strings.TrimSpace(r.ADRCode) == "" {
		result = errors.Join(result, errs.NewValueIsRequiredError("adrCode"))
	}
	if !r.Hazardous && strings.TrimSpace(r.ADRCode) != "" {
		result = errors.Join(result, errs.NewValueIsInvalidErrorWithCause("adrCode",
			errors.New("ADR code given for non-hazardous goods")))
	}

	if !r.TemperatureControlled && (r.TemperatureMinC != nil || r.TemperatureMaxC != nil) {
		result = errors.Join(result, errs.NewValueIsInvalidErrorWithCause("temperature",
			errors.New("temperature bounds given for uncontrolled shipment")))
	}
	if r.TemperatureMinC != nil && r.TemperatureMaxC != nil && *r.TemperatureMinC >= *r.TemperatureMaxC {
		result = errors.Join(result, errs.NewValueIsInvalidErrorWithCause("temperature",
			fmt.Errorf("min %g is not below max %g", *r.TemperatureMinC, *r.TemperatureMaxC)))
	}

	if r.InsuranceCap != nil {
		if !r.InsuranceRequired {
			result = errors.Join(result, errs.NewValueIsInvalidErrorWithCause("insuranceCap",
				errors.New("insurance cap given without insurance requirement")))
		} else if err := r.InsuranceCap.Validate(); err != nil {
			result = errors.Join(result, err)
		}
	}

	return result
}
