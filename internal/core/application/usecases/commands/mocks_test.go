package commands_test

import (
	"context"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/carrier"
	"freight/internal/core/domain/model/invitation"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/offer"
	"freight/internal/core/domain/model/request"
	"freight/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockRequestRepository struct{ mock.Mock }

func (m *MockRequestRepository) Add(ctx context.Context, aggregate *request.Request) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockRequestRepository) Update(ctx context.Context, aggregate *request.Request) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.Request, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*request.Request); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockRequestRepository) GetByCode(ctx context.Context, code string) (*request.Request, error) {
	args := m.Called(ctx, code)
	if r, ok := args.Get(0).(*request.Request); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockRequestRepository) NextCodeSequence(ctx context.Context, year int) (int, error) {
	args := m.Called(ctx, year)
	return args.Int(0), args.Error(1)
}

type MockCarrierRepository struct{ mock.Mock }

func (m *MockCarrierRepository) Add(ctx context.Context, aggregate *carrier.Carrier) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockCarrierRepository) Update(ctx context.Context, aggregate *carrier.Carrier) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockCarrierRepository) Get(ctx context.Context, id kernel.UUID) (*carrier.Carrier, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*carrier.Carrier); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockCarrierRepository) GetByEmail(ctx context.Context, email string) (*carrier.Carrier, error) {
	args := m.Called(ctx, email)
	if c, ok := args.Get(0).(*carrier.Carrier); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockCarrierRepository) GetAllActive(ctx context.Context) ([]*carrier.Carrier, error) {
	args := m.Called(ctx)
	if cs, ok := args.Get(0).([]*carrier.Carrier); ok {
		return cs, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockInvitationRepository struct{ mock.Mock }

func (m *MockInvitationRepository) Add(ctx context.Context, aggregate *invitation.Invitation) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockInvitationRepository) Update(ctx context.Context, aggregate *invitation.Invitation) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockInvitationRepository) Get(ctx context.Context, id kernel.UUID) (*invitation.Invitation, error) {
	args := m.Called(ctx, id)
	if inv, ok := args.Get(0).(*invitation.Invitation); ok {
		return inv, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockInvitationRepository) GetByToken(ctx context.Context, token kernel.AccessToken) (*invitation.Invitation, error) {
	args := m.Called(ctx, token)
	if inv, ok := args.Get(0).(*invitation.Invitation); ok {
		return inv, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockInvitationRepository) GetAllByRequest(ctx context.Context, requestID kernel.UUID) ([]*invitation.Invitation, error) {
	args := m.Called(ctx, requestID)
	if invs, ok := args.Get(0).([]*invitation.Invitation); ok {
		return invs, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockInvitationRepository) GetAllAwaitingReminder(ctx context.Context, cutoff time.Time) ([]*invitation.Invitation, error) {
	args := m.Called(ctx, cutoff)
	if invs, ok := args.Get(0).([]*invitation.Invitation); ok {
		return invs, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockOfferRepository struct{ mock.Mock }

func (m *MockOfferRepository) Add(ctx context.Context, aggregate *offer.Offer) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockOfferRepository) Update(ctx context.Context, aggregate *offer.Offer) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockOfferRepository) Get(ctx context.Context, id kernel.UUID) (*offer.Offer, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*offer.Offer); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockOfferRepository) GetByInvitation(ctx context.Context, invitationID kernel.UUID) (*offer.Offer, error) {
	args := m.Called(ctx, invitationID)
	if o, ok := args.Get(0).(*offer.Offer); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockOfferRepository) GetAllByRequest(ctx context.Context, requestID kernel.UUID) ([]*offer.Offer, error) {
	args := m.Called(ctx, requestID)
	if os, ok := args.Get(0).([]*offer.Offer); ok {
		return os, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *MockOfferRepository) GetConfirmedByRequest(ctx context.Context, requestID kernel.UUID) (*offer.Offer, error) {
	args := m.Called(ctx, requestID)
	if o, ok := args.Get(0).(*offer.Offer); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockRequestUoW struct{ mock.Mock }

func (m *MockRequestUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockRequestUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockRequestUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockRequestUoW) RequestRepository() ports.RequestRepository {
	args := m.Called()
	return args.Get(0).(ports.RequestRepository)
}

type MockRequestUoWFactory struct{ mock.Mock }

func (m *MockRequestUoWFactory) Create() commands.RequestUoW {
	args := m.Called()
	return args.Get(0).(commands.RequestUoW)
}

type MockOfferUoW struct{ mock.Mock }

func (m *MockOfferUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOfferUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOfferUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOfferUoW) OfferRepository() ports.OfferRepository {
	args := m.Called()
	return args.Get(0).(ports.OfferRepository)
}

type MockOfferUoWFactory struct{ mock.Mock }

func (m *MockOfferUoWFactory) Create() commands.OfferUoW {
	args := m.Called()
	return args.Get(0).(commands.OfferUoW)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) RequestRepository() ports.RequestRepository {
	args := m.Called()
	return args.Get(0).(ports.RequestRepository)
}
func (m *MockUoW) CarrierRepository() ports.CarrierRepository {
	args := m.Called()
	return args.Get(0).(ports.CarrierRepository)
}
func (m *MockUoW) InvitationRepository() ports.InvitationRepository {
	args := m.Called()
	return args.Get(0).(ports.InvitationRepository)
}
func (m *MockUoW) OfferRepository() ports.OfferRepository {
	args := m.Called()
	return args.Get(0).(ports.OfferRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) SendInvitation(ctx context.Context, notice ports.InvitationNotice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}
func (m *MockNotifier) SendConfirmation(ctx context.Context, notice ports.ConfirmationNotice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}
func (m *MockNotifier) SendCancellation(ctx context.Context, notice ports.CancellationNotice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}
func (m *MockNotifier) SendReminder(ctx context.Context, notice ports.ReminderNotice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}
