package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/smtp"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"

	"gorm.io/gorm"
)

// Road travel assumptions behind the distance widget.
const (
	roadFactor      = 1.3
	averageSpeedKmh = 70.0
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	notifier       ports.Notifier
	rateCalculator *services.RateCalculator
	estimator      *services.DistanceEstimator
	logger         *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) (*CompositionRoot, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	sender := smtp.NewSender(smtp.Config{
		Host:     config.SMTPHost,
		Port:     config.SMTPPort,
		Username: config.SMTPUsername,
		Password: config.SMTPPassword,
		From:     config.SMTPFrom,
	}, logger)

	notifier, err := smtp.NewEmailNotifier(sender)
	if err != nil {
		return nil, fmt.Errorf("build notifier: %w", err)
	}

	basisPoints, err := services.BasisPointsFromRate(config.TaxRate)
	if err != nil {
		return nil, fmt.Errorf("parse tax rate: %w", err)
	}
	rateCalculator, err := services.NewRateCalculator(basisPoints)
	if err != nil {
		return nil, fmt.Errorf("build rate calculator: %w", err)
	}

	estimator, err := services.NewDistanceEstimator(roadFactor, averageSpeedKmh)
	if err != nil {
		return nil, fmt.Errorf("build distance estimator: %w", err)
	}

	return &CompositionRoot{
		config:         config,
		gormDB:         gormDB,
		uowFactory:     *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:       notifier,
		rateCalculator: rateCalculator,
		estimator:      estimator,
		logger:         logger,
	}, nil
}

func (c *CompositionRoot) Logger() *slog.Logger { return c.logger }

func (c *CompositionRoot) requestUoWFactory() commands.RequestUoWFactory {
	return FuncRequestUoWFactory(func() commands.RequestUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) offerUoWFactory() commands.OfferUoWFactory {
	return FuncOfferUoWFactory(func() commands.OfferUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateRequestCommandHandler() commands.CreateRequestCommandHandler {
	return commands.NewCreateRequestCommandHandler(c.requestUoWFactory())
}

func (c *CompositionRoot) CreateUpdateRequestCommandHandler() commands.UpdateRequestCommandHandler {
	return commands.NewUpdateRequestCommandHandler(c.requestUoWFactory())
}

func (c *CompositionRoot) CreateUpdatePackagesCommandHandler() commands.UpdatePackagesCommandHandler {
	return commands.NewUpdatePackagesCommandHandler(c.requestUoWFactory())
}

func (c *CompositionRoot) CreateSendRequestCommandHandler() commands.SendRequestCommandHandler {
	return commands.NewSendRequestCommandHandler(
		c.fullUoWFactory(), c.notifier, c.config.PublicBaseURL, c.logger)
}

func (c *CompositionRoot) CreateSubmitOfferCommandHandler() commands.SubmitOfferCommandHandler {
	return commands.NewSubmitOfferCommandHandler(
		c.fullUoWFactory(), c.rateCalculator, c.config.OfferValidityDays)
}

func (c *CompositionRoot) CreateAddOfferCommandHandler() commands.AddOfferCommandHandler {
	return commands.NewAddOfferCommandHandler(c.fullUoWFactory(), c.config.OfferValidityDays)
}

func (c *CompositionRoot) CreateBeginEvaluationCommandHandler() commands.BeginEvaluationCommandHandler {
	return commands.NewBeginEvaluationCommandHandler(c.requestUoWFactory())
}

func (c *CompositionRoot) CreateApproveOfferCommandHandler() commands.ApproveOfferCommandHandler {
	return commands.NewApproveOfferCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateConfirmRequestCommandHandler() commands.ConfirmRequestCommandHandler {
	return commands.NewConfirmRequestCommandHandler(c.fullUoWFactory(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateReopenRequestCommandHandler() commands.ReopenRequestCommandHandler {
	return commands.NewReopenRequestCommandHandler(c.requestUoWFactory())
}

func (c *CompositionRoot) CreateRecordTransitCommandHandler() commands.RecordTransitCommandHandler {
	return commands.NewRecordTransitCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateCancelRequestCommandHandler() commands.CancelRequestCommandHandler {
	return commands.NewCancelRequestCommandHandler(c.fullUoWFactory(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateSaveEvaluationParametersCommandHandler() commands.SaveEvaluationParametersCommandHandler {
	return commands.NewSaveEvaluationParametersCommandHandler(c.offerUoWFactory())
}

func (c *CompositionRoot) CreateSendInvitationRemindersCommandHandler() commands.SendInvitationRemindersCommandHandler {
	reminderAfter := time.Duration(c.config.ReminderAfterDays) * 24 * time.Hour
	return commands.NewSendInvitationRemindersCommandHandler(
		c.fullUoWFactory(), c.notifier, c.config.PublicBaseURL, reminderAfter, c.logger)
}

func (c *CompositionRoot) CreateListRequestsQueryHandler() queries.ListRequestsQueryHandler {
	return queries.NewListRequestsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRequestQueryHandler() queries.GetRequestQueryHandler {
	return queries.NewGetRequestQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCompareOffersQueryHandler() queries.CompareOffersQueryHandler {
	return queries.NewCompareOffersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTrackingEventsQueryHandler() queries.GetTrackingEventsQueryHandler {
	return queries.NewGetTrackingEventsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetEvaluationParametersQueryHandler() queries.GetEvaluationParametersQueryHandler {
	return queries.NewGetEvaluationParametersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetResponsePageQueryHandler() queries.GetResponsePageQueryHandler {
	return queries.NewGetResponsePageQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateEstimateRouteQueryHandler() queries.EstimateRouteQueryHandler {
	return queries.NewEstimateRouteQueryHandler(c.estimator)
}

func (c *CompositionRoot) CreateListExpiredApprovalsQueryHandler() queries.ListExpiredApprovalsQueryHandler {
	return queries.NewListExpiredApprovalsQueryHandler(c.gormDB)
}

type FuncRequestUoWFactory func() commands.RequestUoW

func (f FuncRequestUoWFactory) Create() commands.RequestUoW {
	return f()
}

type FuncOfferUoWFactory func() commands.OfferUoW

func (f FuncOfferUoWFactory) Create() commands.OfferUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
