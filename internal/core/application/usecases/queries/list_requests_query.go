package queries

import (
	"errors"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

var (
	ErrListRequestsQueryIsNotConstructed = errors.New(
		"ListRequestsQuery must be created via NewListRequestsQuery constructor",
	)
)

// ListRequestsQuery retrieves a page of transport requests, optionally
// filtered by status and by a search term matched against code and title.
//
// Example:
//
//	query, err := NewListRequestsQuery("Sent", "milano", 1, 20)
//	if err != nil {
//	    return err
//	}
//
//	page, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list requests: %w", err)
//	}
//
//	fmt.Printf("%d of %d requests\n", len(page.Items), page.Total)
type ListRequestsQuery struct {
	status   *request.Status
	search   string
	page     int
	pageSize int

	guard guard.ConstructorGuard
}

// NewListRequestsQuery creates a list query. An empty status means no status
// filter; page starts at 1; a zero pageSize falls back to the default.
func NewListRequestsQuery(status, search string, page, pageSize int) (ListRequestsQuery, error) {
	q := ListRequestsQuery{
		search: strings.TrimSpace(search),
		guard:  guard.NewConstructorGuard(),
	}

	if status != "" {
		parsed, err := request.StatusFromString(status)
		if err != nil {
			return ListRequestsQuery{}, errs.NewValueIsInvalidErrorWithCause("status", err)
		}
		q.status = &parsed
	}

	if page < 1 {
		page = 1
	}
	q.page = page

	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if pageSize < 1 || pageSize > maxPageSize {
		return ListRequestsQuery{}, errs.NewValueIsOutOfRangeError("pageSize", pageSize, 1, maxPageSize)
	}
	q.pageSize = pageSize

	return q, nil
}

func (q ListRequestsQuery) Status() *request.Status { return q.status }
func (q ListRequestsQuery) Search() string          { return q.search }
func (q ListRequestsQuery) Page() int               { return q.page }
func (q ListRequestsQuery) PageSize() int           { return q.pageSize }

// Validate ensures the query was created through the constructor.
func (q ListRequestsQuery) Validate() error {
	return q.guard.Validate(ErrListRequestsQueryIsNotConstructed)
}

// ListRequestsQueryResponse is one page of the request list.
type ListRequestsQueryResponse struct {
	Items    []RequestSummary
	Total    int64
	Page     int
	PageSize int
}

// RequestSummary is one row of the request list.
type RequestSummary struct {
	ID            kernel.UUID
	Code          string
	Title         string
	Status        string
	PickupCity    string
	DeliveryCity  string
	OffersCount   int
	TotalWeightKg float64
	CreatedAt     time.Time
}
