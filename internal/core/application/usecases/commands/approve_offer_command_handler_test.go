package commands_test

import (
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/offer"
	"freight/internal/core/domain/model/request"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestApproveOfferCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	r := newSentRequest(t)
	require.NoError(t, r.RegisterOfferReceipt())
	winner := quotedOffer(t, r.ID(), 78000)
	approverID := kernel.NewUUID()

	cmd, err := commands.NewApproveOfferCommand(r.ID(), winner.ID(), approverID)
	require.NoError(t, err)

	requestRepo := new(MockRequestRepository)
	offerRepo := new(MockOfferRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RequestRepository").Return(requestRepo)
	uow.On("OfferRepository").Return(offerRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	offerRepo.On("Get", mock.Anything, winner.ID()).Return(winner, nil).Once()
	requestRepo.On("Get", mock.Anything, r.ID()).Return(r, nil).Once()
	requestRepo.On("Update", mock.Anything, r).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApproveOfferCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, request.Approved, r.Status())
	require.NotNil(t, r.ApprovedOfferID())
	require.True(t, r.ApprovedOfferID().IsEqual(winner.ID()))
	require.True(t, r.ApproverID().IsEqual(approverID))

	offerRepo.AssertExpectations(t)
	requestRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestApproveOfferCommandHandler_Handle_OfferFromAnotherRequest(t *testing.T) {
	ctx := t.Context()

	r := newSentRequest(t)
	stranger := quotedOffer(t, kernel.NewUUID(), 78000)

	cmd, err := commands.NewApproveOfferCommand(r.ID(), stranger.ID(), kernel.NewUUID())
	require.NoError(t, err)

	offerRepo := new(MockOfferRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OfferRepository").Return(offerRepo)
	uow.On("Rollback", ctx).Return(nil).Once()
	offerRepo.On("Get", mock.Anything, stranger.ID()).Return(stranger, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApproveOfferCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrOfferBelongsToAnotherRequest)
	uow.AssertExpectations(t)
}

func TestApproveOfferCommandHandler_Handle_ExpiredOffer(t *testing.T) {
	ctx := t.Context()

	r := newSentRequest(t)
	expired, err := offer.NewQuotedOffer(
		kernel.NewUUID(), r.ID(), kernel.NewUUID(), kernel.NewUUID(),
		baseOnlyPrices(t, 78000), italianVAT,
		offer.Terms{
			PickupDate:   time.Now().AddDate(0, 0, -10),
			DeliveryDate: time.Now().AddDate(0, 0, -8),
			ExpiresAt:    time.Now().AddDate(0, 0, -1),
		},
		time.Now().AddDate(0, 0, -20),
	)
	require.NoError(t, err)

	cmd, err := commands.NewApproveOfferCommand(r.ID(), expired.ID(), kernel.NewUUID())
	require.NoError(t, err)

	offerRepo := new(MockOfferRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OfferRepository").Return(offerRepo)
	uow.On("Rollback", ctx).Return(nil).Once()
	offerRepo.On("Get", mock.Anything, expired.ID()).Return(expired, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApproveOfferCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrOfferExpired)
	uow.AssertExpectations(t)
}
