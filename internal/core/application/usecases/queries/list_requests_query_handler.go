package queries

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListRequestsQueryHandler retrieves pages of transport requests for the
// staff list view, with offer counts and computed weight per row.
//
// Example:
//
//	handler := NewListRequestsQueryHandler(db)
//	query, _ := NewListRequestsQuery("OffersReceived", "", 1, 20)
//
//	page, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to list requests: %v", err)
//	    return err
//	}
type ListRequestsQueryHandler struct {
	db *gorm.DB
}

// NewListRequestsQueryHandler creates a handler for request list queries.
func NewListRequestsQueryHandler(db *gorm.DB) ListRequestsQueryHandler {
	return ListRequestsQueryHandler{db: db}
}

// Handle executes the list query. Results are sorted newest first.
func (h ListRequestsQueryHandler) Handle(
	ctx context.Context,
	query ListRequestsQuery,
) (ListRequestsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListRequestsQueryResponse{}, err
	}

	where := "r.deleted_at IS NULL"
	args := make([]any, 0, 3)
	if query.Status() != nil {
		where += " AND r.status = ?"
		args = append(args, int(*query.Status()))
	}
	if query.Search() != "" {
		where += " AND (r.code ILIKE ? OR r.title ILIKE ?)"
		pattern := "%" + query.Search() + "%"
		args = append(args, pattern, pattern)
	}

	var total int64
	if err := h.db.WithContext(ctx).Raw(
		"SELECT COUNT(*) FROM requests r WHERE "+where, args...,
	).Scan(&total).Error; err != nil {
		return ListRequestsQueryResponse{}, err
	}

	response := ListRequestsQueryResponse{
		Items:    make([]RequestSummary, 0),
		Total:    total,
		Page:     query.Page(),
		PageSize: query.PageSize(),
	}

	offset := (query.Page() - 1) * query.PageSize()
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			r.id,
			r.code,
			r.title,
			r.status,
			r.pickup_city,
			r.delivery_city,
			(SELECT COUNT(*) FROM offers o
				WHERE o.request_id = r.id AND o.deleted_at IS NULL),
			COALESCE((SELECT SUM(p.quantity * p.weight_kg) FROM packages p
				WHERE p.request_id = r.id AND p.deleted_at IS NULL), 0),
			r.created_at
		FROM requests r
		WHERE `+where+`
		ORDER BY r.created_at DESC
		LIMIT ? OFFSET ?
	`, append(args, query.PageSize(), offset)...).Rows()
	if err != nil {
		return ListRequestsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var summary RequestSummary
		var id uuid.UUID
		var status int
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&summary.Code,
			&summary.Title,
			&status,
			&summary.PickupCity,
			&summary.DeliveryCity,
			&summary.OffersCount,
			&summary.TotalWeightKg,
			&createdAt,
		)
		if err != nil {
			return ListRequestsQueryResponse{}, err
		}

		requestID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return ListRequestsQueryResponse{}, idErr
		}
		summary.ID = requestID
		summary.Status = request.Status(status).String()
		summary.CreatedAt = createdAt
		response.Items = append(response.Items, summary)
	}

	if err = rows.Err(); err != nil {
		return ListRequestsQueryResponse{}, err
	}

	return response, nil
}
