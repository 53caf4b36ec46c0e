package main

import (
	"fmt"
	nethttp "net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"freight/cmd"
	httpadapter "freight/internal/adapters/in/http"
	"freight/internal/adapters/out/postgres/carrierrepo"
	"freight/internal/adapters/out/postgres/invitationrepo"
	"freight/internal/adapters/out/postgres/offerrepo"
	"freight/internal/adapters/out/postgres/requestrepo"
	"freight/internal/jobs"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)

	root, err := cmd.NewCompositionRoot(configs, gormDB)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	jobManager := jobs.NewJobManager(
		root.CreateSendInvitationRemindersCommandHandler(),
		root.CreateListExpiredApprovalsQueryHandler(),
		root.Logger(),
	)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(root, configs)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	return cmd.Config{
		HTTPPort:   envOr("HTTP_PORT", "8080"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  envOr("DB_SSLMODE", "disable"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     envIntOr("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     envOr("SMTP_FROM", "trasporti@localhost"),

		PublicBaseURL:     envOr("PUBLIC_BASE_URL", "http://localhost:8080"),
		TaxRate:           envFloatOr("TAX_RATE", 0.22),
		OfferValidityDays: envIntOr("OFFER_VALIDITY_DAYS", 15),
		ReminderAfterDays: envIntOr("REMINDER_AFTER_DAYS", 3),
		JWTSecret:         os.Getenv("JWT_SECRET"),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func envFloatOr(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&requestrepo.RequestDTO{},
		&requestrepo.PackageDTO{},
		&requestrepo.CodeSequenceDTO{},
		&carrierrepo.CarrierDTO{},
		&invitationrepo.InvitationDTO{},
		&offerrepo.OfferDTO{},
		&offerrepo.EvaluationParameterDTO{},
		&offerrepo.TrackingEventDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(root *cmd.CompositionRoot, configs cmd.Config) {
	if configs.JWTSecret == "" {
		log.Fatalf("JWT_SECRET is required")
	}

	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateRequest:            root.CreateCreateRequestCommandHandler(),
		UpdateRequest:            root.CreateUpdateRequestCommandHandler(),
		UpdatePackages:           root.CreateUpdatePackagesCommandHandler(),
		SendRequest:              root.CreateSendRequestCommandHandler(),
		SubmitOffer:              root.CreateSubmitOfferCommandHandler(),
		AddOffer:                 root.CreateAddOfferCommandHandler(),
		BeginEvaluation:          root.CreateBeginEvaluationCommandHandler(),
		ApproveOffer:             root.CreateApproveOfferCommandHandler(),
		ConfirmRequest:           root.CreateConfirmRequestCommandHandler(),
		ReopenRequest:            root.CreateReopenRequestCommandHandler(),
		RecordTransit:            root.CreateRecordTransitCommandHandler(),
		CancelRequest:            root.CreateCancelRequestCommandHandler(),
		SaveEvaluationParameters: root.CreateSaveEvaluationParametersCommandHandler(),
		SendReminders:            root.CreateSendInvitationRemindersCommandHandler(),

		ListRequests:            root.CreateListRequestsQueryHandler(),
		GetRequest:              root.CreateGetRequestQueryHandler(),
		CompareOffers:           root.CreateCompareOffersQueryHandler(),
		GetTrackingEvents:       root.CreateGetTrackingEventsQueryHandler(),
		GetEvaluationParameters: root.CreateGetEvaluationParametersQueryHandler(),
		GetResponsePage:         root.CreateGetResponsePageQueryHandler(),
		EstimateRoute:           root.CreateEstimateRouteQueryHandler(),
	})

	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(nethttp.StatusOK, "Healthy")
	})
	server.RegisterRoutes(e, configs.JWTSecret)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
