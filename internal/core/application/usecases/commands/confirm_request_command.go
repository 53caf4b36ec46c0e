package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrConfirmRequestCommandIsNotConstructed = errors.New(
	"ConfirmRequestCommand must be created via NewConfirmRequestCommand constructor",
)

// ConfirmRequestCommand commits the approved offer to its carrier.
type ConfirmRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID

	guard guard.ConstructorGuard
}

func NewConfirmRequestCommand(requestID kernel.UUID) (ConfirmRequestCommand, error) {
	cmd := ConfirmRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setRequestID(requestID); err != nil {
		return ConfirmRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmRequestCommand) Validate() error {
	return c.guard.Validate(ErrConfirmRequestCommandIsNotConstructed)
}

func (c ConfirmRequestCommand) RequestID() kernel.UUID { return c.requestID }

func (c *ConfirmRequestCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}
	c.requestID = requestID
	return nil
}
