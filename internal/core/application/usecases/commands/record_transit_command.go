package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var (
	ErrMarkInTransitCommandIsNotConstructed = errors.New(
		"MarkInTransitCommand must be created via NewMarkInTransitCommand constructor",
	)
	ErrMarkDeliveredCommandIsNotConstructed = errors.New(
		"MarkDeliveredCommand must be created via NewMarkDeliveredCommand constructor",
	)
)

// MarkInTransitCommand records the actual pickup of a confirmed request.
type MarkInTransitCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	note      string

	guard guard.ConstructorGuard
}

func NewMarkInTransitCommand(requestID kernel.UUID, note string) (MarkInTransitCommand, error) {
	cmd := MarkInTransitCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := requestID.Validate(); err != nil {
		return MarkInTransitCommand{}, err
	}
	cmd.requestID = requestID

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkInTransitCommand) Validate() error {
	return c.guard.Validate(ErrMarkInTransitCommandIsNotConstructed)
}

func (c MarkInTransitCommand) RequestID() kernel.UUID { return c.requestID }
func (c MarkInTransitCommand) Note() string           { return c.note }

// MarkDeliveredCommand records the delivery of an in-transit request.
type MarkDeliveredCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	note      string

	guard guard.ConstructorGuard
}

func NewMarkDeliveredCommand(requestID kernel.UUID, note string) (MarkDeliveredCommand, error) {
	cmd := MarkDeliveredCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := requestID.Validate(); err != nil {
		return MarkDeliveredCommand{}, err
	}
	cmd.requestID = requestID

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveredCommandIsNotConstructed)
}

func (c MarkDeliveredCommand) RequestID() kernel.UUID { return c.requestID }
func (c MarkDeliveredCommand) Note() string           { return c.note }
