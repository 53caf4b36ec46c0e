package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrApproveOfferCommandIsNotConstructed = errors.New(
	"ApproveOfferCommand must be created via NewApproveOfferCommand constructor",
)

// ApproveOfferCommand selects one offer as the winner of the comparison.
type ApproveOfferCommand struct { //nolint:recvcheck //using for validation
	requestID  kernel.UUID
	offerID    kernel.UUID
	approverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewApproveOfferCommand(requestID, offerID, approverID kernel.UUID) (ApproveOfferCommand, error) {
	cmd := ApproveOfferCommand{
		guard: guard.NewConstructorGuard(),
	}

	err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setOfferID(offerID),
		cmd.setApproverID(approverID),
	)
	if err != nil {
		return ApproveOfferCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveOfferCommand) Validate() error {
	return c.guard.Validate(ErrApproveOfferCommandIsNotConstructed)
}

func (c ApproveOfferCommand) RequestID() kernel.UUID  { return c.requestID }
func (c ApproveOfferCommand) OfferID() kernel.UUID    { return c.offerID }
func (c ApproveOfferCommand) ApproverID() kernel.UUID { return c.approverID }

func (c *ApproveOfferCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}
	c.requestID = requestID
	return nil
}

func (c *ApproveOfferCommand) setOfferID(offerID kernel.UUID) error {
	if err := offerID.Validate(); err != nil {
		return err
	}
	c.offerID = offerID
	return nil
}

func (c *ApproveOfferCommand) setApproverID(approverID kernel.UUID) error {
	if err := approverID.Validate(); err != nil {
		return err
	}
	c.approverID = approverID
	return nil
}
