package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/request"
	"freight/internal/pkg/errs"
)

// errorResponse is the JSON body of every non-2xx reply.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps application errors to HTTP statuses. Unknown tokens reply
// 404 with no further detail so the public endpoint leaks nothing.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, commands.ErrOffersClosed),
		errors.Is(err, commands.ErrOfferExpired),
		errors.Is(err, commands.ErrOfferBelongsToAnotherRequest),
		errors.Is(err, request.ErrNoApprovedOffer):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrTitleIsRequired),
		errors.Is(err, commands.ErrNoRecipients):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, errorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
