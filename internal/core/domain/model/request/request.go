package request

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// ErrRequestIsNotConstructed is returned when a Request was not created via
// NewRequest or RestoreRequest.
var ErrRequestIsNotConstructed = errors.New("request must be created via NewRequest or RestoreRequest")

// ErrNoApprovedOffer is returned when confirming a request that has no
// approved offer attached.
var ErrNoApprovedOffer = errors.New("request has no approved offer to confirm")

var codePattern = regexp.MustCompile(`^TRS-\d{4}-\d{3,}$`)

// FormatCode builds the human-readable request code from the issue year and
// the per-year sequence number, e.g. FormatCode(2025, 7) == "TRS-2025-007".
func FormatCode(year, sequence int) string {
	return fmt.Sprintf("TRS-%04d-%03d", year, sequence)
}

// Details carries the descriptive, schedule and handling data of a request.
// All fields are optional; cross-field rules live in ServiceRequirements.
type Details struct {
	Description      string
	GoodsDescription string
	DeclaredValue    *kernel.Money
	PickupDate       *time.Time
	DeliveryDate     *time.Time
	PickupWindow     *kernel.TimeWindow
	DeliveryWindow   *kernel.TimeWindow
	PickupGeo        *kernel.GeoPoint
	DeliveryGeo      *kernel.GeoPoint
	Requirements     ServiceRequirements
	Notes            string
}

func (d Details) validate() error {
	var result error

	if d.DeclaredValue != nil {
		if err := d.DeclaredValue.Validate(); err != nil {
			result = errors.Join(result, err)
		}
	}
	if d.PickupDate != nil && d.DeliveryDate != nil && d.DeliveryDate.Before(*d.PickupDate) {
		result = errors.Join(result, errs.NewValueIsInvalidErrorWithCause("deliveryDate",
			fmt.Errorf("requested delivery %s precedes pickup %s",
				d.DeliveryDate.Format(time.DateOnly), d.PickupDate.Format(time.DateOnly))))
	}
	for name, w := range map[string]*kernel.TimeWindow{
		"pickupWindow":   d.PickupWindow,
		"deliveryWindow": d.DeliveryWindow,
	} {
		if w != nil {
			if err := w.Validate(); err != nil {
				result = errors.Join(result, errs.NewValueIsInvalidErrorWithCause(name, err))
			}
		}
	}
	for name, p := range map[string]*kernel.GeoPoint{
		"pickupGeo":   d.PickupGeo,
		"deliveryGeo": d.DeliveryGeo,
	} {
		if p != nil {
			if err := p.Validate(); err != nil {
				result = errors.Join(result, errs.NewValueIsInvalidErrorWithCause(name, err))
			}
		}
	}
	result = errors.Join(result, d.Requirements.Validate())

	return result
}

// Request is the aggregate root of the quotation workflow. It owns the
// package line items and the workflow status; every transition goes through
// a method that consults the Status state machine, so invalid jumps are
// impossible regardless of the caller.
//
// Request invariants:
//   - the code matches TRS-YYYY-NNN and never changes after creation
//   - totals always equal the sum over the current package lines
//   - Confirm requires an approved offer reference
//   - details and packages are mutable only while the request is a Draft
type Request struct {
	id              kernel.UUID
	code            string
	title           string
	pickupAddress   kernel.Address
	deliveryAddress kernel.Address
	details         Details
	packages        []*Package
	status          Status

	requesterID kernel.UUID
	operatorID  *kernel.UUID
	approverID  *kernel.UUID

	approvedOfferID *kernel.UUID

	createdAt   time.Time
	sentAt      *time.Time
	evaluatedAt *time.Time
	approvedAt  *time.Time
	confirmedAt *time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time
	cancelledAt *time.Time

	guard guard.ConstructorGuard
}

// NewRequest creates a Draft request. The code must have been allocated by
// the persistence layer for the creation year.
func NewRequest(
	id kernel.UUID,
	code string,
	title string,
	requesterID kernel.UUID,
	pickupAddress kernel.Address,
	deliveryAddress kernel.Address,
	details Details,
	createdAt time.Time,
) (*Request, error) {
	r := &Request{
		status:    Draft,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setCode(code),
		r.setTitle(title),
		r.setRequesterID(requesterID),
		r.setPickupAddress(pickupAddress),
		r.setDeliveryAddress(deliveryAddress),
		r.setDetails(details),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRequestParams carries the full persisted state of a request.
type RestoreRequestParams struct {
	ID              kernel.UUID
	Code            string
	Title           string
	PickupAddress   kernel.Address
	DeliveryAddress kernel.Address
	Details         Details
	Packages        []*Package
	Status          Status
	RequesterID     kernel.UUID
	OperatorID      *kernel.UUID
	ApproverID      *kernel.UUID
	ApprovedOfferID *kernel.UUID
	CreatedAt       time.Time
	SentAt          *time.Time
	EvaluatedAt     *time.Time
	ApprovedAt      *time.Time
	ConfirmedAt     *time.Time
	PickedUpAt      *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
}

// RestoreRequest reconstructs a Request from persistence.
func RestoreRequest(p RestoreRequestParams) (*Request, error) {
	r := &Request{
		operatorID:      p.OperatorID,
		approverID:      p.ApproverID,
		approvedOfferID: p.ApprovedOfferID,
		createdAt:       p.CreatedAt,
		sentAt:          p.SentAt,
		evaluatedAt:     p.EvaluatedAt,
		approvedAt:      p.ApprovedAt,
		confirmedAt:     p.ConfirmedAt,
		pickedUpAt:      p.PickedUpAt,
		deliveredAt:     p.DeliveredAt,
		cancelledAt:     p.CancelledAt,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(p.ID),
		r.setCode(p.Code),
		r.setTitle(p.Title),
		r.setRequesterID(p.RequesterID),
		r.setPickupAddress(p.PickupAddress),
		r.setDeliveryAddress(p.DeliveryAddress),
		r.setDetails(p.Details),
		r.setStatus(p.Status),
		r.setPackages(p.Packages),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// IsEqual compares two requests by identity.
func (r *Request) IsEqual(other *Request) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// Validate ensures the Request was built through a constructor.
func (r *Request) Validate() error {
	if r == nil {
		return ErrRequestIsNotConstructed
	}
	return r.guard.Validate(ErrRequestIsNotConstructed)
}

func (r *Request) ID() kernel.UUID                 { return r.id }
func (r *Request) Code() string                    { return r.code }
func (r *Request) Title() string                   { return r.title }
func (r *Request) PickupAddress() kernel.Address   { return r.pickupAddress }
func (r *Request) DeliveryAddress() kernel.Address { return r.deliveryAddress }
func (r *Request) Details() Details                { return r.details }
func (r *Request) Status() Status                  { return r.status }
func (r *Request) RequesterID() kernel.UUID        { return r.requesterID }
func (r *Request) OperatorID() *kernel.UUID        { return r.operatorID }
func (r *Request) ApproverID() *kernel.UUID        { return r.approverID }
func (r *Request) ApprovedOfferID() *kernel.UUID   { return r.approvedOfferID }
func (r *Request) CreatedAt() time.Time            { return r.createdAt }
func (r *Request) SentAt() *time.Time              { return r.sentAt }
func (r *Request) EvaluatedAt() *time.Time         { return r.evaluatedAt }
func (r *Request) ApprovedAt() *time.Time          { return r.approvedAt }
func (r *Request) ConfirmedAt() *time.Time         { return r.confirmedAt }
func (r *Request) PickedUpAt() *time.Time          { return r.pickedUpAt }
func (r *Request) DeliveredAt() *time.Time         { return r.deliveredAt }
func (r *Request) CancelledAt() *time.Time         { return r.cancelledAt }

// Packages returns the current package lines. The slice must not be mutated
// by callers; use ReplacePackages.
func (r *Request) Packages() []*Package {
	return r.packages
}

// TotalPackages returns the total number of pieces across all lines.
func (r *Request) TotalPackages() int {
	total := 0
	for _, p := range r.packages {
		total += p.Quantity()
	}
	return total
}

// TotalWeightKg returns the total shipment weight in kilograms.
func (r *Request) TotalWeightKg() float64 {
	total := 0.0
	for _, p := range r.packages {
		total += p.LineWeightKg()
	}
	return total
}

// TotalVolumeM3 returns the total shipment volume in cubic meters.
func (r *Request) TotalVolumeM3() float64 {
	total := 0.0
	for _, p := range r.packages {
		total += p.LineVolumeM3()
	}
	return total
}

// UpdateDetails replaces the descriptive data. Only Draft requests can be
// edited.
func (r *Request) UpdateDetails(title string, details Details) error {
	if r.status != Draft {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s request cannot be edited", r.status))
	}
	if err := errors.Join(r.setTitle(title), r.setDetails(details)); err != nil {
		return err
	}
	return nil
}

// ReplacePackages swaps the full set of package lines. Only Draft requests
// can be edited; the totals follow the new lines immediately.
func (r *Request) ReplacePackages(packages []*Package) error {
	if r.status != Draft {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s request cannot change its packages", r.status))
	}
	return r.setPackages(packages)
}

// Send moves a Draft request to Sent. Invitation creation happens in the
// same transaction at the application layer.
func (r *Request) Send(at time.Time) error {
	newStatus, err := r.status.Send()
	if err != nil {
		return err
	}
	r.status = newStatus
	r.sentAt = &at
	return nil
}

// RegisterOfferReceipt records that an offer arrived. The first offer flips
// Sent to OffersReceived; later ones leave the status alone.
func (r *Request) RegisterOfferReceipt() error {
	newStatus, err := r.status.ReceiveOffer()
	if err != nil {
		return err
	}
	r.status = newStatus
	return nil
}

// BeginEvaluation moves OffersReceived to Evaluating and records the
// operator who started the comparison.
func (r *Request) BeginEvaluation(operatorID kernel.UUID, at time.Time) error {
	if err := operatorID.Validate(); err != nil {
		return err
	}
	newStatus, err := r.status.BeginEvaluation()
	if err != nil {
		return err
	}
	r.status = newStatus
	r.operatorID = &operatorID
	r.evaluatedAt = &at
	return nil
}

// Approve selects an offer. Re-approving a reopened request on a different
// offer is allowed; the previous selection is overwritten.
func (r *Request) Approve(offerID, approverID kernel.UUID, at time.Time) error {
	if err := errors.Join(offerID.Validate(), approverID.Validate()); err != nil {
		return err
	}
	newStatus, err := r.status.Approve()
	if err != nil {
		return err
	}
	r.status = newStatus
	r.approvedOfferID = &offerID
	r.approverID = &approverID
	r.approvedAt = &at
	return nil
}

// Confirm commits the approved offer to its carrier.
func (r *Request) Confirm(at time.Time) error {
	if r.approvedOfferID == nil {
		return ErrNoApprovedOffer
	}
	newStatus, err := r.status.Confirm()
	if err != nil {
		return err
	}
	r.status = newStatus
	r.confirmedAt = &at
	return nil
}

// Reopen returns a Confirmed, InTransit or Delivered request to Approved.
// The approved offer reference survives so the request can be re-confirmed
// as-is or re-approved on another offer.
func (r *Request) Reopen() error {
	newStatus, err := r.status.Reopen()
	if err != nil {
		return err
	}
	r.status = newStatus
	return nil
}

// MarkInTransit records the actual pickup.
func (r *Request) MarkInTransit(at time.Time) error {
	newStatus, err := r.status.MarkInTransit()
	if err != nil {
		return err
	}
	r.status = newStatus
	r.pickedUpAt = &at
	return nil
}

// MarkDelivered records the actual delivery.
func (r *Request) MarkDelivered(at time.Time) error {
	newStatus, err := r.status.MarkDelivered()
	if err != nil {
		return err
	}
	r.status = newStatus
	r.deliveredAt = &at
	return nil
}

// Cancel abandons the request from any non-terminal state.
func (r *Request) Cancel(at time.Time) error {
	newStatus, err := r.status.Cancel()
	if err != nil {
		return err
	}
	r.status = newStatus
	r.cancelledAt = &at
	return nil
}

func (r *Request) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Request) setCode(code string) error {
	if !codePattern.MatchString(code) {
		return errs.NewValueIsInvalidErrorWithCause("code",
			fmt.Errorf("%q does not match TRS-YYYY-NNN", code))
	}
	r.code = code
	return nil
}

func (r *Request) setTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	r.title = title
	return nil
}

func (r *Request) setRequesterID(requesterID kernel.UUID) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}
	r.requesterID = requesterID
	return nil
}

func (r *Request) setPickupAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	r.pickupAddress = address
	return nil
}

func (r *Request) setDeliveryAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	r.deliveryAddress = address
	return nil
}

func (r *Request) setDetails(details Details) error {
	if err := details.validate(); err != nil {
		return err
	}
	r.details = details
	return nil
}

func (r *Request) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	r.status = status
	return nil
}

func (r *Request) setPackages(packages []*Package) error {
	for _, p := range packages {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	r.packages = packages
	return nil
}
