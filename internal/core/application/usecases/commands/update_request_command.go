package commands

import (
	"errors"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/request"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrUpdateRequestCommandIsNotConstructed = errors.New(
	"UpdateRequestCommand must be created via NewUpdateRequestCommand constructor",
)

// UpdateRequestCommand edits the header of a Draft request.
type UpdateRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	title     string
	details   request.Details

	guard guard.ConstructorGuard
}

func NewUpdateRequestCommand(
	requestID kernel.UUID,
	title string,
	details request.Details,
) (UpdateRequestCommand, error) {
	cmd := UpdateRequestCommand{
		details: details,
		guard:   guard.NewConstructorGuard(),
	}

	if err := requestID.Validate(); err != nil {
		return UpdateRequestCommand{}, err
	}
	cmd.requestID = requestID

	if strings.TrimSpace(title) == "" {
		return UpdateRequestCommand{}, errs.NewValueIsRequiredError("title")
	}
	cmd.title = title

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateRequestCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRequestCommandIsNotConstructed)
}

func (c UpdateRequestCommand) RequestID() kernel.UUID   { return c.requestID }
func (c UpdateRequestCommand) Title() string            { return c.title }
func (c UpdateRequestCommand) Details() request.Details { return c.details }
