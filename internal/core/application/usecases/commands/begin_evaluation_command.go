package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrBeginEvaluationCommandIsNotConstructed = errors.New(
	"BeginEvaluationCommand must be created via NewBeginEvaluationCommand constructor",
)

// BeginEvaluationCommand starts the offer comparison on a request that has
// received at least one offer.
type BeginEvaluationCommand struct { //nolint:recvcheck //using for validation
	requestID  kernel.UUID
	operatorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewBeginEvaluationCommand(requestID, operatorID kernel.UUID) (BeginEvaluationCommand, error) {
	cmd := BeginEvaluationCommand{
		guard: guard.NewConstructorGuard(),
	}

	err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setOperatorID(operatorID),
	)
	if err != nil {
		return BeginEvaluationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BeginEvaluationCommand) Validate() error {
	return c.guard.Validate(ErrBeginEvaluationCommandIsNotConstructed)
}

func (c BeginEvaluationCommand) RequestID() kernel.UUID  { return c.requestID }
func (c BeginEvaluationCommand) OperatorID() kernel.UUID { return c.operatorID }

func (c *BeginEvaluationCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}
	c.requestID = requestID
	return nil
}

func (c *BeginEvaluationCommand) setOperatorID(operatorID kernel.UUID) error {
	if err := operatorID.Validate(); err != nil {
		return err
	}
	c.operatorID = operatorID
	return nil
}
