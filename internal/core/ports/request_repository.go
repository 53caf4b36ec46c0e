// Package ports defines the contracts between the application core and the
// infrastructure adapters: repositories, the unit of work and the notifier.
package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"
)

// RequestRepository defines the persistence contract for request aggregates,
// including their package line items.
type RequestRepository interface {
	// Add persists a new request aggregate with its packages.
	Add(ctx context.Context, aggregate *request.Request) error

	// Update persists changes to an existing request, replacing its package
	// lines with the aggregate's current set.
	Update(ctx context.Context, aggregate *request.Request) error

	// Get retrieves a request by id with all its packages.
	Get(ctx context.Context, id kernel.UUID) (*request.Request, error)

	// GetByCode retrieves a request by its human-readable TRS-YYYY-NNN code.
	GetByCode(ctx context.Context, code string) (*request.Request, error)

	// NextCodeSequence allocates the next per-year sequence number used to
	// build the request code. Allocation happens inside the current
	// transaction so concurrent creations never share a code.
	NextCodeSequence(ctx context.Context, year int) (int, error)
}
