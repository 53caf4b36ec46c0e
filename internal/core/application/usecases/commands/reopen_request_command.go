package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrReopenRequestCommandIsNotConstructed = errors.New(
	"ReopenRequestCommand must be created via NewReopenRequestCommand constructor",
)

// ReopenRequestCommand returns a confirmed or closed request to Approved so
// the selection can be revisited.
type ReopenRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID

	guard guard.ConstructorGuard
}

func NewReopenRequestCommand(requestID kernel.UUID) (ReopenRequestCommand, error) {
	cmd := ReopenRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setRequestID(requestID); err != nil {
		return ReopenRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReopenRequestCommand) Validate() error {
	return c.guard.Validate(ErrReopenRequestCommandIsNotConstructed)
}

func (c ReopenRequestCommand) RequestID() kernel.UUID { return c.requestID }

func (c *ReopenRequestCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}
	c.requestID = requestID
	return nil
}
