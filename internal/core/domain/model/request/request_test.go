package request_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"
)

func mustAddress(t *testing.T, street, postalCode, city, province string) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress(street, postalCode, city, province, "IT")
	require.NoError(t, err)
	return a
}

func newDraftRequest(t *testing.T) *request.Request {
	t.Helper()
	r, err := request.NewRequest(
		kernel.NewUUID(),
		"TRS-2025-001",
		"Macchinari industriali Milano-Roma",
		kernel.NewUUID(),
		mustAddress(t, "Via Roma 1", "20121", "Milano", "MI"),
		mustAddress(t, "Via del Corso 10", "00186", "Roma", "RM"),
		request.Details{GoodsDescription: "Macchinari industriali"},
		time.Now(),
	)
	require.NoError(t, err)
	return r
}

func mustPackage(t *testing.T, quantity int, l, w, h, kg float64) *request.Package {
	t.Helper()
	p, err := request.NewPackage(kernel.NewUUID(), quantity, request.PackageTypePallet,
		l, w, h, kg, false, true, 0)
	require.NoError(t, err)
	return p
}

func TestNewRequest(t *testing.T) {
	r := newDraftRequest(t)

	assert.Equal(t, request.Draft, r.Status())
	assert.Equal(t, "TRS-2025-001", r.Code())
	assert.Zero(t, r.TotalPackages())
	assert.Nil(t, r.SentAt())
	assert.Nil(t, r.ApprovedOfferID())
}

func TestNewRequestValidation(t *testing.T) {
	pickup := mustAddress(t, "Via Roma 1", "20121", "Milano", "MI")
	delivery := mustAddress(t, "Via del Corso 10", "00186", "Roma", "RM")

	t.Run("bad code", func(t *testing.T) {
		_, err := request.NewRequest(kernel.NewUUID(), "REQ-1", "Title",
			kernel.NewUUID(), pickup, delivery, request.Details{}, time.Now())
		require.Error(t, err)
	})

	t.Run("empty title", func(t *testing.T) {
		_, err := request.NewRequest(kernel.NewUUID(), "TRS-2025-002", "  ",
			kernel.NewUUID(), pickup, delivery, request.Details{}, time.Now())
		require.Error(t, err)
	})

	t.Run("unconstructed address", func(t *testing.T) {
		_, err := request.NewRequest(kernel.NewUUID(), "TRS-2025-002", "Title",
			kernel.NewUUID(), kernel.Address{}, delivery, request.Details{}, time.Now())
		require.Error(t, err)
	})

	t.Run("hazardous without adr code", func(t *testing.T) {
		_, err := request.NewRequest(kernel.NewUUID(), "TRS-2025-002", "Title",
			kernel.NewUUID(), pickup, delivery,
			request.Details{Requirements: request.ServiceRequirements{Hazardous: true}},
			time.Now())
		require.Error(t, err)
	})

	t.Run("delivery before pickup", func(t *testing.T) {
		pickupDate := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
		deliveryDate := pickupDate.AddDate(0, 0, -1)
		_, err := request.NewRequest(kernel.NewUUID(), "TRS-2025-002", "Title",
			kernel.NewUUID(), pickup, delivery,
			request.Details{PickupDate: &pickupDate, DeliveryDate: &deliveryDate},
			time.Now())
		require.Error(t, err)
	})
}

func TestRequestTotalsFollowPackages(t *testing.T) {
	r := newDraftRequest(t)

	// the Milan-Rome shipment: 2 pallets 120x80x120 cm, 300 kg each
	require.NoError(t, r.ReplacePackages([]*request.Package{
		mustPackage(t, 2, 120, 80, 120, 300),
	}))

	assert.Equal(t, 2, r.TotalPackages())
	assert.InDelta(t, 600, r.TotalWeightKg(), 0.0001)
	assert.InDelta(t, 2.304, r.TotalVolumeM3(), 0.0001)

	// every mutation recomputes the totals
	require.NoError(t, r.ReplacePackages([]*request.Package{
		mustPackage(t, 1, 100, 100, 100, 50),
		mustPackage(t, 3, 50, 50, 50, 10),
	}))

	assert.Equal(t, 4, r.TotalPackages())
	assert.InDelta(t, 80, r.TotalWeightKg(), 0.0001)
	assert.InDelta(t, 1+3*0.125, r.TotalVolumeM3(), 0.0001)

	require.NoError(t, r.ReplacePackages(nil))
	assert.Zero(t, r.TotalPackages())
	assert.Zero(t, r.TotalWeightKg())
	assert.Zero(t, r.TotalVolumeM3())
}

func TestRequestEditOnlyInDraft(t *testing.T) {
	r := newDraftRequest(t)
	require.NoError(t, r.Send(time.Now()))

	err := r.ReplacePackages([]*request.Package{mustPackage(t, 1, 10, 10, 10, 1)})
	require.Error(t, err)

	err = r.UpdateDetails("New title", request.Details{})
	require.Error(t, err)
}

func TestRequestSend(t *testing.T) {
	r := newDraftRequest(t)
	sentAt := time.Now()

	require.NoError(t, r.Send(sentAt))
	assert.Equal(t, request.Sent, r.Status())
	require.NotNil(t, r.SentAt())
	assert.Equal(t, sentAt, *r.SentAt())

	require.Error(t, r.Send(time.Now()))
}

func TestRequestOfferReceipt(t *testing.T) {
	r := newDraftRequest(t)
	require.Error(t, r.RegisterOfferReceipt())

	require.NoError(t, r.Send(time.Now()))
	require.NoError(t, r.RegisterOfferReceipt())
	assert.Equal(t, request.OffersReceived, r.Status())

	require.NoError(t, r.RegisterOfferReceipt())
	assert.Equal(t, request.OffersReceived, r.Status())
}

func TestRequestApproveConfirmReopen(t *testing.T) {
	r := newDraftRequest(t)
	require.NoError(t, r.Send(time.Now()))
	require.NoError(t, r.RegisterOfferReceipt())

	offerID := kernel.NewUUID()
	approverID := kernel.NewUUID()

	require.ErrorIs(t, r.Confirm(time.Now()), request.ErrNoApprovedOffer)

	require.NoError(t, r.Approve(offerID, approverID, time.Now()))
	assert.Equal(t, request.Approved, r.Status())
	require.NotNil(t, r.ApprovedOfferID())
	assert.True(t, offerID.IsEqual(*r.ApprovedOfferID()))
	require.NotNil(t, r.ApproverID())

	require.NoError(t, r.Confirm(time.Now()))
	assert.Equal(t, request.Confirmed, r.Status())
	require.NotNil(t, r.ConfirmedAt())

	// reopen keeps the approved offer reference
	require.NoError(t, r.Reopen())
	assert.Equal(t, request.Approved, r.Status())
	require.NotNil(t, r.ApprovedOfferID())
	assert.True(t, offerID.IsEqual(*r.ApprovedOfferID()))

	// re-approve on another offer, then confirm again
	otherOfferID := kernel.NewUUID()
	require.NoError(t, r.Approve(otherOfferID, approverID, time.Now()))
	require.NoError(t, r.Confirm(time.Now()))
	assert.True(t, otherOfferID.IsEqual(*r.ApprovedOfferID()))
}

func TestRequestTransitLifecycle(t *testing.T) {
	r := newDraftRequest(t)
	require.NoError(t, r.Send(time.Now()))
	require.NoError(t, r.RegisterOfferReceipt())
	require.NoError(t, r.Approve(kernel.NewUUID(), kernel.NewUUID(), time.Now()))
	require.NoError(t, r.Confirm(time.Now()))

	pickedUp := time.Now()
	require.NoError(t, r.MarkInTransit(pickedUp))
	assert.Equal(t, request.InTransit, r.Status())
	require.NotNil(t, r.PickedUpAt())

	delivered := pickedUp.Add(24 * time.Hour)
	require.NoError(t, r.MarkDelivered(delivered))
	assert.Equal(t, request.Delivered, r.Status())
	require.NotNil(t, r.DeliveredAt())

	require.Error(t, r.Cancel(time.Now()))
}

func TestRequestCancel(t *testing.T) {
	r := newDraftRequest(t)
	require.NoError(t, r.Cancel(time.Now()))
	assert.Equal(t, request.Cancelled, r.Status())
	require.NotNil(t, r.CancelledAt())

	require.Error(t, r.Cancel(time.Now()))
}

func TestRestoreRequest(t *testing.T) {
	sentAt := time.Now().Add(-time.Hour)
	restored, err := request.RestoreRequest(request.RestoreRequestParams{
		ID:              kernel.NewUUID(),
		Code:            "TRS-2025-042",
		Title:           "Restored request",
		PickupAddress:   mustAddress(t, "Via Roma 1", "20121", "Milano", "MI"),
		DeliveryAddress: mustAddress(t, "Via del Corso 10", "00186", "Roma", "RM"),
		Packages:        []*request.Package{mustPackage(t, 2, 120, 80, 120, 300)},
		Status:          request.Sent,
		RequesterID:     kernel.NewUUID(),
		CreatedAt:       time.Now().Add(-2 * time.Hour),
		SentAt:          &sentAt,
	})

	require.NoError(t, err)
	assert.Equal(t, request.Sent, restored.Status())
	assert.Equal(t, 2, restored.TotalPackages())
	require.NoError(t, restored.Validate())
}

func TestRequestValidate(t *testing.T) {
	var zero request.Request
	require.ErrorIs(t, zero.Validate(), request.ErrRequestIsNotConstructed)

	var nilRequest *request.Request
	require.ErrorIs(t, nilRequest.Validate(), request.ErrRequestIsNotConstructed)
}

func TestFormatCode(t *testing.T) {
	assert.Equal(t, "TRS-2025-007", request.FormatCode(2025, 7))
	assert.Equal(t, "TRS-2026-123", request.FormatCode(2026, 123))
	assert.Equal(t, "TRS-2026-1234", request.FormatCode(2026, 1234))
}
