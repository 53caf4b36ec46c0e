package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrCancelRequestCommandIsNotConstructed = errors.New(
	"CancelRequestCommand must be created via NewCancelRequestCommand constructor",
)

// CancelRequestCommand abandons a request from any non-terminal state.
type CancelRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	reason    string

	guard guard.ConstructorGuard
}

// NewCancelRequestCommand creates a cancellation command. The reason is
// optional and lands on the confirmed offer's tracking timeline, if any.
func NewCancelRequestCommand(requestID kernel.UUID, reason string) (CancelRequestCommand, error) {
	cmd := CancelRequestCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := cmd.setRequestID(requestID); err != nil {
		return CancelRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelRequestCommand) Validate() error {
	return c.guard.Validate(ErrCancelRequestCommandIsNotConstructed)
}

func (c CancelRequestCommand) RequestID() kernel.UUID { return c.requestID }
func (c CancelRequestCommand) Reason() string         { return c.reason }

func (c *CancelRequestCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}
	c.requestID = requestID
	return nil
}
