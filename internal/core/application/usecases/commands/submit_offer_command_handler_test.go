package commands_test

import (
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/invitation"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/offer"
	"freight/internal/core/domain/model/request"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	italianVAT   = int64(2200)
	validityDays = 15
)

func newSentRequest(t *testing.T) *request.Request {
	t.Helper()
	r, err := request.NewRequest(
		kernel.NewUUID(),
		request.FormatCode(2025, 1),
		"Pallet shipment Milan to Rome",
		kernel.NewUUID(),
		testAddress(t, "Via Tortona 31", "20144", "Milano", "MI"),
		testAddress(t, "Via Appia Nuova 10", "00183", "Roma", "RM"),
		request.Details{},
		time.Now(),
	)
	require.NoError(t, err)
	require.NoError(t, r.Send(time.Now()))
	return r
}

func newSentInvitation(t *testing.T, requestID kernel.UUID) *invitation.Invitation {
	t.Helper()
	inv, err := invitation.NewInvitation(kernel.NewUUID(), requestID, kernel.NewUUID(), time.Now())
	require.NoError(t, err)
	inv.MarkSent(time.Now())
	return inv
}

func baseOnlyPrices(t *testing.T, cents int64) offer.PriceBreakdown {
	t.Helper()
	base, err := kernel.NewMoneyFromCents(cents)
	require.NoError(t, err)
	prices, err := offer.NewBaseOnlyPriceBreakdown(base)
	require.NoError(t, err)
	return prices
}

func submissionTerms() commands.OfferTerms {
	pickup := time.Now().AddDate(0, 0, 3)
	return commands.OfferTerms{
		PickupDate:   pickup,
		DeliveryDate: pickup.AddDate(0, 0, 2),
		VehicleType:  "tautliner",
	}
}

func newSubmitOfferHandler(t *testing.T, factory commands.UoWFactory) commands.SubmitOfferCommandHandler {
	t.Helper()
	calculator, err := services.NewRateCalculator(italianVAT)
	require.NoError(t, err)
	return commands.NewSubmitOfferCommandHandler(factory, calculator, validityDays)
}

func TestSubmitOfferCommandHandler_Handle_FirstSubmission(t *testing.T) {
	ctx := t.Context()

	r := newSentRequest(t)
	inv := newSentInvitation(t, r.ID())
	cmd, err := commands.NewSubmitOfferCommand(inv.Token(), baseOnlyPrices(t, 85000), submissionTerms())
	require.NoError(t, err)

	requestRepo := new(MockRequestRepository)
	invitationRepo := new(MockInvitationRepository)
	offerRepo := new(MockOfferRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RequestRepository").Return(requestRepo)
	uow.On("InvitationRepository").Return(invitationRepo)
	uow.On("OfferRepository").Return(offerRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	invitationRepo.On("GetByToken", mock.Anything, inv.Token()).Return(inv, nil).Once()
	requestRepo.On("Get", mock.Anything, r.ID()).Return(r, nil).Once()
	offerRepo.On("GetByInvitation", mock.Anything, inv.ID()).
		Return(nil, errs.NewObjectNotFoundError("invitationId", inv.ID())).Once()
	offerRepo.On("Add", mock.Anything, mock.AnythingOfType("*offer.Offer")).Return(nil).Once()
	requestRepo.On("Update", mock.Anything, r).Return(nil).Once()
	invitationRepo.On("Update", mock.Anything, inv).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newSubmitOfferHandler(t, factory)
	require.NoError(t, h.Handle(ctx, cmd))

	added := offerRepo.Calls[1].Arguments.Get(1).(*offer.Offer)
	require.Equal(t, int64(103700), added.Total().Cents())
	require.Equal(t, inv.ID(), added.InvitationID())
	require.Equal(t, request.OffersReceived, r.Status())
	require.True(t, inv.Responded())

	offerRepo.AssertExpectations(t)
	invitationRepo.AssertExpectations(t)
	requestRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSubmitOfferCommandHandler_Handle_ResubmissionUpdatesInPlace(t *testing.T) {
	ctx := t.Context()

	r := newSentRequest(t)
	require.NoError(t, r.RegisterOfferReceipt())
	inv := newSentInvitation(t, r.ID())
	inv.MarkResponded(time.Now())

	existing, err := offer.NewQuotedOffer(
		kernel.NewUUID(), r.ID(), inv.ID(), inv.CarrierID(),
		baseOnlyPrices(t, 85000), italianVAT,
		offer.Terms{
			PickupDate:   time.Now().AddDate(0, 0, 3),
			DeliveryDate: time.Now().AddDate(0, 0, 5),
			ExpiresAt:    time.Now().AddDate(0, 0, validityDays),
		},
		time.Now(),
	)
	require.NoError(t, err)

	cmd, err := commands.NewSubmitOfferCommand(inv.Token(), baseOnlyPrices(t, 78000), submissionTerms())
	require.NoError(t, err)

	requestRepo := new(MockRequestRepository)
	invitationRepo := new(MockInvitationRepository)
	offerRepo := new(MockOfferRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RequestRepository").Return(requestRepo)
	uow.On("InvitationRepository").Return(invitationRepo)
	uow.On("OfferRepository").Return(offerRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	invitationRepo.On("GetByToken", mock.Anything, inv.Token()).Return(inv, nil).Once()
	requestRepo.On("Get", mock.Anything, r.ID()).Return(r, nil).Once()
	offerRepo.On("GetByInvitation", mock.Anything, inv.ID()).Return(existing, nil).Once()
	offerRepo.On("Update", mock.Anything, existing).Return(nil).Once()
	requestRepo.On("Update", mock.Anything, r).Return(nil).Once()
	invitationRepo.On("Update", mock.Anything, inv).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newSubmitOfferHandler(t, factory)
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, int64(95160), existing.Total().Cents())
	require.Equal(t, request.OffersReceived, r.Status())

	offerRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSubmitOfferCommandHandler_Handle_AcceptedWhileApproved(t *testing.T) {
	ctx := t.Context()

	r := newSentRequest(t)
	require.NoError(t, r.RegisterOfferReceipt())
	require.NoError(t, r.Approve(kernel.NewUUID(), kernel.NewUUID(), time.Now()))
	inv := newSentInvitation(t, r.ID())

	cmd, err := commands.NewSubmitOfferCommand(inv.Token(), baseOnlyPrices(t, 72000), submissionTerms())
	require.NoError(t, err)

	requestRepo := new(MockRequestRepository)
	invitationRepo := new(MockInvitationRepository)
	offerRepo := new(MockOfferRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RequestRepository").Return(requestRepo)
	uow.On("InvitationRepository").Return(invitationRepo)
	uow.On("OfferRepository").Return(offerRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	invitationRepo.On("GetByToken", mock.Anything, inv.Token()).Return(inv, nil).Once()
	requestRepo.On("Get", mock.Anything, r.ID()).Return(r, nil).Once()
	offerRepo.On("GetByInvitation", mock.Anything, inv.ID()).
		Return(nil, errs.NewObjectNotFoundError("invitationId", inv.ID())).Once()
	offerRepo.On("Add", mock.Anything, mock.AnythingOfType("*offer.Offer")).Return(nil).Once()
	requestRepo.On("Update", mock.Anything, r).Return(nil).Once()
	invitationRepo.On("Update", mock.Anything, inv).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newSubmitOfferHandler(t, factory)
	require.NoError(t, h.Handle(ctx, cmd))

	// a late quote is recorded without moving the request backwards
	require.Equal(t, request.Approved, r.Status())

	offerRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSubmitOfferCommandHandler_Handle_OffersClosed(t *testing.T) {
	ctx := t.Context()

	r := newSentRequest(t)
	require.NoError(t, r.Cancel(time.Now()))
	inv := newSentInvitation(t, r.ID())

	cmd, err := commands.NewSubmitOfferCommand(inv.Token(), baseOnlyPrices(t, 85000), submissionTerms())
	require.NoError(t, err)

	requestRepo := new(MockRequestRepository)
	invitationRepo := new(MockInvitationRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RequestRepository").Return(requestRepo)
	uow.On("InvitationRepository").Return(invitationRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	invitationRepo.On("GetByToken", mock.Anything, inv.Token()).Return(inv, nil).Once()
	requestRepo.On("Get", mock.Anything, r.ID()).Return(r, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newSubmitOfferHandler(t, factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrOffersClosed)
	uow.AssertExpectations(t)
}

func TestSubmitOfferCommandHandler_Handle_UnknownToken(t *testing.T) {
	ctx := t.Context()

	token := kernel.NewAccessToken()
	cmd, err := commands.NewSubmitOfferCommand(token, baseOnlyPrices(t, 85000), submissionTerms())
	require.NoError(t, err)

	invitationRepo := new(MockInvitationRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("InvitationRepository").Return(invitationRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	invitationRepo.On("GetByToken", mock.Anything, token).
		Return(nil, errs.NewObjectNotFoundError("token", token.String())).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newSubmitOfferHandler(t, factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}
