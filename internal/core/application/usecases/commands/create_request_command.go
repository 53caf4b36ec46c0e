package commands

import (
	"errors"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"
	"freight/internal/pkg/guard"
)

var (
	ErrCreateRequestCommandIsNotConstructed = errors.New(
		"CreateRequestCommand must be created via NewCreateRequestCommand constructor",
	)
	ErrTitleIsRequired = errors.New("title is required")
)

// CreateRequestCommand represents a request to open a new transport request
// in Draft status. The human-readable code is allocated by the handler
// inside the creation transaction.
type CreateRequestCommand struct { //nolint:recvcheck //using for validation
	requestID       kernel.UUID
	title           string
	requesterID     kernel.UUID
	pickupAddress   kernel.Address
	deliveryAddress kernel.Address
	details         request.Details

	guard guard.ConstructorGuard
}

// NewCreateRequestCommand creates a command to open a transport request.
func NewCreateRequestCommand(
	requestID kernel.UUID,
	title string,
	requesterID kernel.UUID,
	pickupAddress kernel.Address,
	deliveryAddress kernel.Address,
	details request.Details,
) (CreateRequestCommand, error) {
	cmd := CreateRequestCommand{
		details: details,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setTitle(title),
		cmd.setRequesterID(requesterID),
		cmd.setPickupAddress(pickupAddress),
		cmd.setDeliveryAddress(deliveryAddress),
	); err != nil {
		return CreateRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateRequestCommandIsNotConstructed)
}

func (c CreateRequestCommand) RequestID() kernel.UUID          { return c.requestID }
func (c CreateRequestCommand) Title() string                   { return c.title }
func (c CreateRequestCommand) RequesterID() kernel.UUID        { return c.requesterID }
func (c CreateRequestCommand) PickupAddress() kernel.Address   { return c.pickupAddress }
func (c CreateRequestCommand) DeliveryAddress() kernel.Address { return c.deliveryAddress }
func (c CreateRequestCommand) Details() request.Details        { return c.details }

func (c *CreateRequestCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}
	c.requestID = requestID
	return nil
}

func (c *CreateRequestCommand) setTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleIsRequired
	}
	c.title = title
	return nil
}

func (c *CreateRequestCommand) setRequesterID(requesterID kernel.UUID) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}
	c.requesterID = requesterID
	return nil
}

func (c *CreateRequestCommand) setPickupAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	c.pickupAddress = address
	return nil
}

func (c *CreateRequestCommand) setDeliveryAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	c.deliveryAddress = address
	return nil
}
