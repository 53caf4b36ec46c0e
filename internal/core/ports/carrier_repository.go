package ports

import (
	"context"

	"freight/internal/core/domain/model/carrier"
	"freight/internal/core/domain/model/kernel"
)

// CarrierRepository defines the persistence contract for carrier aggregates.
type CarrierRepository interface {
	// Add persists a new carrier.
	Add(ctx context.Context, aggregate *carrier.Carrier) error

	// Update persists changes to an existing carrier.
	Update(ctx context.Context, aggregate *carrier.Carrier) error

	// Get retrieves a carrier by id.
	Get(ctx context.Context, id kernel.UUID) (*carrier.Carrier, error)

	// GetByEmail retrieves a carrier by its email address, active or not.
	// Returns an ObjectNotFoundError when no carrier carries the address.
	GetByEmail(ctx context.Context, email string) (*carrier.Carrier, error)

	// GetAllActive retrieves the selectable carrier list.
	GetAllActive(ctx context.Context) ([]*carrier.Carrier, error)
}
