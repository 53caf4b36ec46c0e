package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"
	"freight/internal/pkg/guard"
)

var ErrUpdatePackagesCommandIsNotConstructed = errors.New(
	"UpdatePackagesCommand must be created via NewUpdatePackagesCommand constructor",
)

// PackageLine describes one package line item of an update. The handler
// mints fresh identifiers; line identity does not survive an update.
type PackageLine struct {
	Quantity    int
	PackageType request.PackageType
	LengthCm    float64
	WidthCm     float64
	HeightCm    float64
	WeightKg    float64
	Fragile     bool
	Stackable   bool
}

// UpdatePackagesCommand replaces the full set of package lines of a Draft
// request.
type UpdatePackagesCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	lines     []PackageLine

	guard guard.ConstructorGuard
}

// NewUpdatePackagesCommand creates a command to replace a request's package
// lines. An empty set is valid and clears the request.
func NewUpdatePackagesCommand(requestID kernel.UUID, lines []PackageLine) (UpdatePackagesCommand, error) {
	cmd := UpdatePackagesCommand{
		lines: lines,
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setRequestID(requestID); err != nil {
		return UpdatePackagesCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdatePackagesCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePackagesCommandIsNotConstructed)
}

func (c UpdatePackagesCommand) RequestID() kernel.UUID { return c.requestID }
func (c UpdatePackagesCommand) Lines() []PackageLine   { return c.lines }

func (c *UpdatePackagesCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}
	c.requestID = requestID
	return nil
}
