package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var (
	ErrListExpiredApprovalsQueryIsNotConstructed = errors.New(
		"ListExpiredApprovalsQuery must be created via NewListExpiredApprovalsQuery constructor",
	)
)

// ListExpiredApprovalsQuery finds requests stuck in the approved state whose
// selected offer has expired before confirmation.
type ListExpiredApprovalsQuery struct {
	asOf time.Time

	guard guard.ConstructorGuard
}

func NewListExpiredApprovalsQuery(asOf time.Time) (ListExpiredApprovalsQuery, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}

	return ListExpiredApprovalsQuery{
		asOf:  asOf,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q ListExpiredApprovalsQuery) AsOf() time.Time { return q.asOf }

// Validate ensures the query was created through the constructor.
func (q ListExpiredApprovalsQuery) Validate() error {
	return q.guard.Validate(ErrListExpiredApprovalsQueryIsNotConstructed)
}

// ExpiredApproval is one request whose approved offer lapsed.
type ExpiredApproval struct {
	RequestID   kernel.UUID
	RequestCode string
	CarrierName string
	ExpiresAt   time.Time
}
