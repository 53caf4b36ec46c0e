package commands

import (
	"errors"
	"net/mail"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	ErrSendRequestCommandIsNotConstructed = errors.New(
		"SendRequestCommand must be created via NewSendRequestCommand constructor",
	)
	ErrNoRecipients = errors.New("at least one carrier or ad-hoc recipient is required")
)

// MaxAdHocRecipients bounds the free-form recipients one send may add,
// matching the three extra recipient slots of the invitation form.
const MaxAdHocRecipients = 3

// AdHocRecipient is a recipient that is not yet a registered carrier.
// Sending creates an inactive carrier record for it.
type AdHocRecipient struct {
	CompanyName string
	Email       string
}

// SendRequestCommand dispatches a request to a set of carriers, minting one
// tokenized invitation per recipient.
type SendRequestCommand struct { //nolint:recvcheck //using for validation
	requestID  kernel.UUID
	carrierIDs []kernel.UUID
	adHoc      []AdHocRecipient

	guard guard.ConstructorGuard
}

// NewSendRequestCommand creates a command to send a request for quotation.
func NewSendRequestCommand(
	requestID kernel.UUID,
	carrierIDs []kernel.UUID,
	adHoc []AdHocRecipient,
) (SendRequestCommand, error) {
	cmd := SendRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setCarrierIDs(carrierIDs),
		cmd.setAdHoc(adHoc),
	)
	if err != nil {
		return SendRequestCommand{}, err
	}

	if len(cmd.carrierIDs) == 0 && len(cmd.adHoc) == 0 {
		return SendRequestCommand{}, ErrNoRecipients
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SendRequestCommand) Validate() error {
	return c.guard.Validate(ErrSendRequestCommandIsNotConstructed)
}

func (c SendRequestCommand) RequestID() kernel.UUID    { return c.requestID }
func (c SendRequestCommand) CarrierIDs() []kernel.UUID { return c.carrierIDs }
func (c SendRequestCommand) AdHoc() []AdHocRecipient   { return c.adHoc }

func (c *SendRequestCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}
	c.requestID = requestID
	return nil
}

func (c *SendRequestCommand) setCarrierIDs(carrierIDs []kernel.UUID) error {
	for _, id := range carrierIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	c.carrierIDs = carrierIDs
	return nil
}

func (c *SendRequestCommand) setAdHoc(adHoc []AdHocRecipient) error {
	if len(adHoc) > MaxAdHocRecipients {
		return errs.NewValueIsOutOfRangeError("adHocRecipients", len(adHoc), 0, MaxAdHocRecipients)
	}

	for i, r := range adHoc {
		if strings.TrimSpace(r.CompanyName) == "" {
			return errs.NewValueIsRequiredError("adHocCompanyName")
		}
		if _, err := mail.ParseAddress(strings.TrimSpace(r.Email)); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("adHocEmail", err)
		}
		adHoc[i].CompanyName = strings.TrimSpace(r.CompanyName)
		adHoc[i].Email = strings.TrimSpace(r.Email)
	}

	c.adHoc = adHoc
	return nil
}
