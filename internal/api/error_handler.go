package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/horizonbank/banking-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. The
// presentation layer displays the message verbatim.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Surfaces normalised vendor messages as-is (already human readable).
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Vendor failures carry a display-ready message.
	if ve, ok := domain.AsVendorError(err); ok {
		return http.StatusBadGateway, ve.Message
	}

	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, "The email address is already associated with an existing account."
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, domain.MsgNoSuchUser
	case errors.Is(err, domain.ErrBankNotFound):
		return http.StatusNotFound, "bank account not found"
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrSessionExpired):
		return http.StatusUnauthorized, "not signed in"
	case errors.Is(err, domain.ErrNoFundingSource):
		return http.StatusBadGateway, "could not create a funding source for this account"
	case errors.Is(err, domain.ErrMissingUserID):
		return http.StatusBadRequest, "Invalid userId. Cannot create bank account."
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "An unexpected error occurred."
}
