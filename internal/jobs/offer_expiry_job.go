package jobs

import (
	"context"
	"log/slog"
	"time"

	"freight/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// expirySchedule fires at the top of every hour.
const expirySchedule = "0 0 * * * *"

// OfferExpiryJob watches for requests stuck in the approved state whose
// selected offer has lapsed. It only raises the alarm; re-approving another
// offer is a staff decision.
type OfferExpiryJob struct {
	handler queries.ListExpiredApprovalsQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOfferExpiryJob creates the hourly expiry sweep.
func NewOfferExpiryJob(handler queries.ListExpiredApprovalsQueryHandler, logger *slog.Logger) *OfferExpiryJob {
	return &OfferExpiryJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "offer_expiry_job"),
	}
}

// Start schedules the expiry sweep.
func (j *OfferExpiryJob) Start() error {
	_, err := j.cron.AddFunc(expirySchedule, func() {
		ctx := context.Background()

		query, queryErr := queries.NewListExpiredApprovalsQuery(time.Now())
		if queryErr != nil {
			j.logger.ErrorContext(ctx, "Offer expiry job misconfigured", "error", queryErr)
			return
		}

		expired, err := j.handler.Handle(ctx, query)
		if err != nil {
			j.logger.ErrorContext(ctx, "Offer expiry job failed", "error", err)
			return
		}

		for _, approval := range expired {
			j.logger.WarnContext(ctx, "Approved offer expired before confirmation",
				"request_id", approval.RequestID.String(),
				"request_code", approval.RequestCode,
				"carrier", approval.CarrierName,
				"expired_at", approval.ExpiresAt,
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Offer expiry job started (hourly)")
	return nil
}

// Stop stops the expiry sweep.
func (j *OfferExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Offer expiry job stopped")
}
