package request_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freight/internal/core/domain/model/request"
)

func TestStatusString(t *testing.T) {
	assert.Equal(t, "Draft", request.Draft.String())
	assert.Equal(t, "OffersReceived", request.OffersReceived.String())
	assert.Equal(t, "Unknown", request.Unknown.String())
	assert.Equal(t, "Unknown", request.Status(99).String())
}

func TestStatusFromString(t *testing.T) {
	status, err := request.StatusFromString("Evaluating")
	require.NoError(t, err)
	assert.Equal(t, request.Evaluating, status)

	_, err = request.StatusFromString("NotAStatus")
	require.Error(t, err)
}

func TestStatusValidate(t *testing.T) {
	require.NoError(t, request.Draft.Validate())
	require.NoError(t, request.Cancelled.Validate())
	require.Error(t, request.Unknown.Validate())
	require.Error(t, request.Status(99).Validate())
}

func TestStatusSend(t *testing.T) {
	next, err := request.Draft.Send()
	require.NoError(t, err)
	assert.Equal(t, request.Sent, next)

	for _, s := range []request.Status{
		request.Sent, request.OffersReceived, request.Evaluating,
		request.Approved, request.Confirmed, request.InTransit,
		request.Delivered, request.Cancelled,
	} {
		_, err := s.Send()
		assert.Error(t, err, s.String())
	}
}

func TestStatusReceiveOffer(t *testing.T) {
	next, err := request.Sent.ReceiveOffer()
	require.NoError(t, err)
	assert.Equal(t, request.OffersReceived, next)

	// later offers keep the current status
	next, err = request.OffersReceived.ReceiveOffer()
	require.NoError(t, err)
	assert.Equal(t, request.OffersReceived, next)

	next, err = request.Evaluating.ReceiveOffer()
	require.NoError(t, err)
	assert.Equal(t, request.Evaluating, next)

	// an updated quote after approval does not move the request backwards
	next, err = request.Approved.ReceiveOffer()
	require.NoError(t, err)
	assert.Equal(t, request.Approved, next)

	for _, s := range []request.Status{
		request.Draft, request.Confirmed,
		request.Delivered, request.Cancelled,
	} {
		_, err := s.ReceiveOffer()
		assert.Error(t, err, s.String())
	}
}

func TestStatusBeginEvaluation(t *testing.T) {
	next, err := request.OffersReceived.BeginEvaluation()
	require.NoError(t, err)
	assert.Equal(t, request.Evaluating, next)

	_, err = request.Sent.BeginEvaluation()
	require.Error(t, err)
}

func TestStatusApprove(t *testing.T) {
	for _, s := range []request.Status{request.OffersReceived, request.Evaluating, request.Approved} {
		next, err := s.Approve()
		require.NoError(t, err, s.String())
		assert.Equal(t, request.Approved, next)
	}

	for _, s := range []request.Status{request.Draft, request.Sent, request.Confirmed, request.Cancelled} {
		_, err := s.Approve()
		assert.Error(t, err, s.String())
	}
}

func TestStatusConfirmAndReopen(t *testing.T) {
	next, err := request.Approved.Confirm()
	require.NoError(t, err)
	assert.Equal(t, request.Confirmed, next)

	_, err = request.Evaluating.Confirm()
	require.Error(t, err)

	for _, s := range []request.Status{request.Confirmed, request.InTransit, request.Delivered} {
		next, err := s.Reopen()
		require.NoError(t, err, s.String())
		assert.Equal(t, request.Approved, next)
	}

	_, err = request.Approved.Reopen()
	require.Error(t, err)
	_, err = request.Cancelled.Reopen()
	require.Error(t, err)
}

func TestStatusTransitFlow(t *testing.T) {
	next, err := request.Confirmed.MarkInTransit()
	require.NoError(t, err)
	assert.Equal(t, request.InTransit, next)

	next, err = next.MarkDelivered()
	require.NoError(t, err)
	assert.Equal(t, request.Delivered, next)

	_, err = request.Approved.MarkInTransit()
	require.Error(t, err)
	_, err = request.Confirmed.MarkDelivered()
	require.Error(t, err)
}

func TestStatusCancel(t *testing.T) {
	for _, s := range []request.Status{
		request.Draft, request.Sent, request.OffersReceived,
		request.Evaluating, request.Approved, request.Confirmed, request.InTransit,
	} {
		next, err := s.Cancel()
		require.NoError(t, err, s.String())
		assert.Equal(t, request.Cancelled, next)
	}

	_, err := request.Delivered.Cancel()
	require.Error(t, err)
	_, err = request.Cancelled.Cancel()
	require.Error(t, err)
	_, err = request.Unknown.Cancel()
	require.Error(t, err)
}

func TestStatusAllowsOfferSubmission(t *testing.T) {
	assert.True(t, request.Sent.AllowsOfferSubmission())
	assert.True(t, request.OffersReceived.AllowsOfferSubmission())
	assert.True(t, request.Evaluating.AllowsOfferSubmission())
	assert.True(t, request.Approved.AllowsOfferSubmission())
	assert.False(t, request.Draft.AllowsOfferSubmission())
	assert.False(t, request.Confirmed.AllowsOfferSubmission())
	assert.False(t, request.Cancelled.AllowsOfferSubmission())
}
