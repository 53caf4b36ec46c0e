package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/carrierrepo"
	"freight/internal/adapters/out/postgres/invitationrepo"
	"freight/internal/adapters/out/postgres/offerrepo"
	"freight/internal/adapters/out/postgres/requestrepo"
	"freight/internal/core/domain/model/carrier"
	"freight/internal/core/domain/model/invitation"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/offer"
	"freight/internal/core/domain/model/request"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&requestrepo.RequestDTO{},
		&requestrepo.PackageDTO{},
		&requestrepo.CodeSequenceDTO{},
		&carrierrepo.CarrierDTO{},
		&invitationrepo.InvitationDTO{},
		&offerrepo.OfferDTO{},
		&offerrepo.EvaluationParameterDTO{},
		&offerrepo.TrackingEventDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE requests, packages, request_code_sequences, carriers, invitations, offers, evaluation_parameters, tracking_events").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up the PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.RequestRepository())
	suite.NotNil(uow1.CarrierRepository())
	suite.NotNil(uow1.InvitationRepository())
	suite.NotNil(uow1.OfferRepository())
	suite.NotNil(uow2.RequestRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SingleRepositoryTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testRequest := suite.createTestRequest()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.RequestRepository().Add(ctx, testRequest)
	suite.Require().NoError(err)

	retrieved, err := uow.RequestRepository().Get(ctx, testRequest.ID())
	suite.Require().NoError(err)
	suite.Equal(testRequest.ID(), retrieved.ID())
	suite.Equal(testRequest.Code(), retrieved.Code())

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrieved, err = newUow.RequestRepository().Get(ctx, testRequest.ID())
	suite.Require().NoError(err)
	suite.Equal(testRequest.ID(), retrieved.ID())
	suite.Len(retrieved.Packages(), 2)
	suite.InDelta(600.0, retrieved.TotalWeightKg(), 0.001)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_QuotationWorkflow() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	testRequest := suite.createTestRequest()
	err = uow.RequestRepository().Add(ctx, testRequest)
	suite.Require().NoError(err)

	testCarrier := suite.createTestCarrier("Rossi Trasporti", "offerte@rossitrasporti.it")
	err = uow.CarrierRepository().Add(ctx, testCarrier)
	suite.Require().NoError(err)

	err = testRequest.Send(time.Now())
	suite.Require().NoError(err)
	err = uow.RequestRepository().Update(ctx, testRequest)
	suite.Require().NoError(err)

	testInvitation, err := invitation.NewInvitation(
		kernel.NewUUID(), testRequest.ID(), testCarrier.ID(), time.Now())
	suite.Require().NoError(err)
	testInvitation.MarkSent(time.Now())
	err = uow.InvitationRepository().Add(ctx, testInvitation)
	suite.Require().NoError(err)

	testOffer := suite.createTestOffer(testRequest, testInvitation)
	err = uow.OfferRepository().Add(ctx, testOffer)
	suite.Require().NoError(err)

	err = testRequest.RegisterOfferReceipt()
	suite.Require().NoError(err)
	err = uow.RequestRepository().Update(ctx, testRequest)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()

	retrievedRequest, err := newUow.RequestRepository().Get(ctx, testRequest.ID())
	suite.Require().NoError(err)
	suite.Equal(request.OffersReceived, retrievedRequest.Status())

	retrievedInvitation, err := newUow.InvitationRepository().GetByToken(ctx, testInvitation.Token())
	suite.Require().NoError(err)
	suite.Equal(testInvitation.ID(), retrievedInvitation.ID())
	suite.True(retrievedInvitation.Sent())

	retrievedOffer, err := newUow.OfferRepository().GetByInvitation(ctx, testInvitation.ID())
	suite.Require().NoError(err)
	suite.Equal(testOffer.ID(), retrievedOffer.ID())
	suite.Equal(int64(103700), retrievedOffer.Total().Cents())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_DuplicateOfferForInvitation() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testRequest := suite.createTestRequest()
	suite.Require().NoError(testRequest.Send(time.Now()))
	suite.Require().NoError(uow.RequestRepository().Add(ctx, testRequest))

	testCarrier := suite.createTestCarrier("Bianchi Logistica", "preventivi@bianchilogistica.it")
	suite.Require().NoError(uow.CarrierRepository().Add(ctx, testCarrier))

	testInvitation, err := invitation.NewInvitation(
		kernel.NewUUID(), testRequest.ID(), testCarrier.ID(), time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.InvitationRepository().Add(ctx, testInvitation))

	first := suite.createTestOffer(testRequest, testInvitation)
	suite.Require().NoError(uow.OfferRepository().Add(ctx, first))

	second := suite.createTestOffer(testRequest, testInvitation)
	err = uow.OfferRepository().Add(ctx, second)
	suite.Require().Error(err, "A second offer for the same invitation should hit the unique index")
	suite.Require().ErrorIs(err, offerrepo.ErrDuplicateOffer)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testRequest := suite.createTestRequest()
	testCarrier := suite.createTestCarrier("Rossi Trasporti", "offerte@rossitrasporti.it")

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.RequestRepository().Add(ctx, testRequest)
	suite.Require().NoError(err)

	err = uow.CarrierRepository().Add(ctx, testCarrier)
	suite.Require().NoError(err)

	_, err = uow.RequestRepository().Get(ctx, testRequest.ID())
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()

	_, err = newUow.RequestRepository().Get(ctx, testRequest.ID())
	suite.Require().Error(err, "Request should not exist after rollback")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = newUow.CarrierRepository().Get(ctx, testCarrier.ID())
	suite.Require().Error(err, "Carrier should not exist after rollback")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CodeSequenceAllocation() {
	ctx := context.Background()
	uow := suite.factory.Create()

	first, err := uow.RequestRepository().NextCodeSequence(ctx, 2026)
	suite.Require().NoError(err)
	suite.Equal(1, first)

	second, err := uow.RequestRepository().NextCodeSequence(ctx, 2026)
	suite.Require().NoError(err)
	suite.Equal(2, second)

	otherYear, err := uow.RequestRepository().NextCodeSequence(ctx, 2027)
	suite.Require().NoError(err)
	suite.Equal(1, otherYear, "Each year starts its own sequence")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConfirmationDisplacement() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testRequest := suite.createTestRequest()
	suite.Require().NoError(testRequest.Send(time.Now()))
	suite.Require().NoError(uow.RequestRepository().Add(ctx, testRequest))

	carrierA := suite.createTestCarrier("Rossi Trasporti", "offerte@rossitrasporti.it")
	carrierB := suite.createTestCarrier("Bianchi Logistica", "preventivi@bianchilogistica.it")
	suite.Require().NoError(uow.CarrierRepository().Add(ctx, carrierA))
	suite.Require().NoError(uow.CarrierRepository().Add(ctx, carrierB))

	invitationA, err := invitation.NewInvitation(kernel.NewUUID(), testRequest.ID(), carrierA.ID(), time.Now())
	suite.Require().NoError(err)
	invitationB, err := invitation.NewInvitation(kernel.NewUUID(), testRequest.ID(), carrierB.ID(), time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.InvitationRepository().Add(ctx, invitationA))
	suite.Require().NoError(uow.InvitationRepository().Add(ctx, invitationB))

	offerA := suite.createTestOffer(testRequest, invitationA)
	offerB := suite.createTestOffer(testRequest, invitationB)
	suite.Require().NoError(uow.OfferRepository().Add(ctx, offerA))
	suite.Require().NoError(uow.OfferRepository().Add(ctx, offerB))

	// Confirm offer A, then displace it with offer B.
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	offerA.Confirm(time.Now())
	suite.Require().NoError(uow.OfferRepository().Update(ctx, offerA))

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	prior, err := uow.OfferRepository().GetConfirmedByRequest(ctx, testRequest.ID())
	suite.Require().NoError(err)
	suite.Equal(offerA.ID(), prior.ID())

	prior.Unconfirm()
	event, err := offer.NewTrackingEvent(
		kernel.NewUUID(), offer.TrackingEventCancelled, "superseded by another offer", time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(prior.RecordTrackingEvent(event))
	suite.Require().NoError(uow.OfferRepository().Update(ctx, prior))

	offerB.Confirm(time.Now())
	suite.Require().NoError(uow.OfferRepository().Update(ctx, offerB))

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	confirmed, err := newUow.OfferRepository().GetConfirmedByRequest(ctx, testRequest.ID())
	suite.Require().NoError(err)
	suite.Equal(offerB.ID(), confirmed.ID())

	displaced, err := newUow.OfferRepository().Get(ctx, offerA.ID())
	suite.Require().NoError(err)
	suite.False(displaced.Confirmed())
	suite.Require().Len(displaced.TrackingEvents(), 1)
	suite.Equal(offer.TrackingEventCancelled, displaced.TrackingEvents()[0].EventType())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_EvaluationParameterReplacement() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testRequest := suite.createTestRequest()
	suite.Require().NoError(testRequest.Send(time.Now()))
	suite.Require().NoError(uow.RequestRepository().Add(ctx, testRequest))

	testCarrier := suite.createTestCarrier("Rossi Trasporti", "offerte@rossitrasporti.it")
	suite.Require().NoError(uow.CarrierRepository().Add(ctx, testCarrier))

	testInvitation, err := invitation.NewInvitation(
		kernel.NewUUID(), testRequest.ID(), testCarrier.ID(), time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.InvitationRepository().Add(ctx, testInvitation))

	testOffer := suite.createTestOffer(testRequest, testInvitation)
	suite.Require().NoError(uow.OfferRepository().Add(ctx, testOffer))

	firstSet := suite.evaluationParameters("Affidabilità", "Puntualità")
	suite.Require().NoError(testOffer.ReplaceEvaluationParameters(firstSet))
	suite.Require().NoError(uow.OfferRepository().Update(ctx, testOffer))

	secondSet := suite.evaluationParameters("Copertura assicurativa")
	suite.Require().NoError(testOffer.ReplaceEvaluationParameters(secondSet))
	suite.Require().NoError(uow.OfferRepository().Update(ctx, testOffer))

	newUow := suite.factory.Create()
	retrieved, err := newUow.OfferRepository().Get(ctx, testOffer.ID())
	suite.Require().NoError(err)
	suite.Require().Len(retrieved.EvaluationParameters(), 1)
	suite.Equal("Copertura assicurativa", retrieved.EvaluationParameters()[0].Label())

	var orphaned int64
	err = suite.db.Model(&offerrepo.EvaluationParameterDTO{}).Count(&orphaned).Error
	suite.Require().NoError(err)
	suite.Equal(int64(1), orphaned, "Old parameter rows should be gone")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ReminderQuery() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testRequest := suite.createTestRequest()
	suite.Require().NoError(testRequest.Send(time.Now()))
	suite.Require().NoError(uow.RequestRepository().Add(ctx, testRequest))

	testCarrier := suite.createTestCarrier("Rossi Trasporti", "offerte@rossitrasporti.it")
	suite.Require().NoError(uow.CarrierRepository().Add(ctx, testCarrier))

	stale, err := invitation.NewInvitation(kernel.NewUUID(), testRequest.ID(), testCarrier.ID(), time.Now())
	suite.Require().NoError(err)
	stale.MarkSent(time.Now().Add(-72 * time.Hour))
	suite.Require().NoError(uow.InvitationRepository().Add(ctx, stale))

	fresh, err := invitation.NewInvitation(kernel.NewUUID(), testRequest.ID(), testCarrier.ID(), time.Now())
	suite.Require().NoError(err)
	fresh.MarkSent(time.Now())
	suite.Require().NoError(uow.InvitationRepository().Add(ctx, fresh))

	answered, err := invitation.NewInvitation(kernel.NewUUID(), testRequest.ID(), testCarrier.ID(), time.Now())
	suite.Require().NoError(err)
	answered.MarkSent(time.Now().Add(-72 * time.Hour))
	answered.MarkResponded(time.Now())
	suite.Require().NoError(uow.InvitationRepository().Add(ctx, answered))

	cutoff := time.Now().Add(-48 * time.Hour)
	awaiting, err := uow.InvitationRepository().GetAllAwaitingReminder(ctx, cutoff)
	suite.Require().NoError(err)
	suite.Require().Len(awaiting, 1)
	suite.Equal(stale.ID(), awaiting[0].ID())

	awaiting[0].RecordReminder(time.Now())
	suite.Require().NoError(uow.InvitationRepository().Update(ctx, awaiting[0]))

	awaiting, err = uow.InvitationRepository().GetAllAwaitingReminder(ctx, cutoff)
	suite.Require().NoError(err)
	suite.Empty(awaiting, "A fresh reminder should push the invitation past the cutoff")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testCarrier := suite.createTestCarrier("Rossi Trasporti", "offerte@rossitrasporti.it")

	err := uow.CarrierRepository().Add(ctx, testCarrier)
	suite.Require().NoError(err)

	retrieved, err := uow.CarrierRepository().GetByEmail(ctx, "offerte@rossitrasporti.it")
	suite.Require().NoError(err)
	suite.Equal(testCarrier.ID(), retrieved.ID())

	newUow := suite.factory.Create()
	retrieved, err = newUow.CarrierRepository().Get(ctx, testCarrier.ID())
	suite.Require().NoError(err)
	suite.Equal(testCarrier.ID(), retrieved.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestRequest() *request.Request {
	pickup, err := kernel.NewAddress("Via Roma 1", "20121", "Milano", "MI", "IT")
	suite.Require().NoError(err)
	delivery, err := kernel.NewAddress("Via Appia 10", "00179", "Roma", "RM", "IT")
	suite.Require().NoError(err)

	testRequest, err := request.NewRequest(
		kernel.NewUUID(),
		request.FormatCode(2026, 12),
		"Bancali Milano Roma",
		kernel.NewUUID(),
		pickup,
		delivery,
		request.Details{GoodsDescription: "Bancali di componenti"},
		time.Now(),
	)
	suite.Require().NoError(err)

	packages := []*request.Package{
		suite.createTestPackage(2, 120, 80, 100, 150, 0),
		suite.createTestPackage(1, 120, 80, 120, 300, 1),
	}
	suite.Require().NoError(testRequest.ReplacePackages(packages))

	return testRequest
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestPackage(
	quantity int, lengthCm, widthCm, heightCm, weightKg float64, sortOrder int,
) *request.Package {
	p, err := request.NewPackage(
		kernel.NewUUID(), quantity, request.PackageTypePallet,
		lengthCm, widthCm, heightCm, weightKg,
		false, true, sortOrder)
	suite.Require().NoError(err)
	return p
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestCarrier(name, email string) *carrier.Carrier {
	c, err := carrier.NewCarrier(kernel.NewUUID(), name, email, "+39 02 1234567")
	suite.Require().NoError(err)
	return c
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestOffer(
	testRequest *request.Request, testInvitation *invitation.Invitation,
) *offer.Offer {
	base, err := kernel.NewMoneyFromCents(85000)
	suite.Require().NoError(err)
	prices, err := offer.NewBaseOnlyPriceBreakdown(base)
	suite.Require().NoError(err)

	testOffer, err := offer.NewQuotedOffer(
		kernel.NewUUID(), testRequest.ID(), testInvitation.ID(), testInvitation.CarrierID(),
		prices, 2200,
		offer.Terms{
			PickupDate:   time.Now().AddDate(0, 0, 3),
			DeliveryDate: time.Now().AddDate(0, 0, 5),
			VehicleType:  "Motrice centinata",
			ExpiresAt:    time.Now().AddDate(0, 0, 15),
		},
		time.Now(),
	)
	suite.Require().NoError(err)
	return testOffer
}

func (suite *UnitOfWorkIntegrationTestSuite) evaluationParameters(labels ...string) []*offer.EvaluationParameter {
	parameters := make([]*offer.EvaluationParameter, 0, len(labels))
	for i, label := range labels {
		p, err := offer.NewEvaluationParameter(kernel.NewUUID(), label, "alta", i)
		suite.Require().NoError(err)
		parameters = append(parameters, p)
	}
	return parameters
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
