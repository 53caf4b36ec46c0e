package queries

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListExpiredApprovalsQueryHandler backs the expiry sweep job.
type ListExpiredApprovalsQueryHandler struct {
	db *gorm.DB
}

// NewListExpiredApprovalsQueryHandler creates a handler for expired approval queries.
func NewListExpiredApprovalsQueryHandler(db *gorm.DB) ListExpiredApprovalsQueryHandler {
	return ListExpiredApprovalsQueryHandler{db: db}
}

// Handle executes the sweep query.
func (h ListExpiredApprovalsQueryHandler) Handle(
	ctx context.Context,
	query ListExpiredApprovalsQuery,
) ([]ExpiredApproval, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	expired := make([]ExpiredApproval, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT r.id, r.code, c.company_name, o.expires_at
		FROM requests r
		JOIN offers o ON o.id = r.approved_offer_id
		JOIN carriers c ON c.id = o.carrier_id
		WHERE r.status = ?
		  AND o.expires_at < ?
		  AND r.deleted_at IS NULL
		  AND o.deleted_at IS NULL
		ORDER BY o.expires_at
	`, int(request.Approved), query.AsOf()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row ExpiredApproval
		var requestID uuid.UUID

		if err = rows.Scan(&requestID, &row.RequestCode, &row.CarrierName, &row.ExpiresAt); err != nil {
			return nil, err
		}
		if row.RequestID, err = kernel.UUIDFromBytes(requestID[:]); err != nil {
			return nil, err
		}

		expired = append(expired, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return expired, nil
}
