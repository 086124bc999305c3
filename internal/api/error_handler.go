package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pairchat/chat-service/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes and the fixed
//     user-facing message table.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
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

	// Known domain errors → deterministic HTTP codes and fixed messages.
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return http.StatusBadRequest, "please fill in all fields"
	case errors.Is(err, domain.ErrWeakPassword):
		return http.StatusBadRequest, "password is too weak, use at least 6 characters"
	case errors.Is(err, domain.ErrEmailInUse):
		return http.StatusConflict, "this email is already registered, log in or use a different email"
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, "no account found with this email"
	case errors.Is(err, domain.ErrWrongPassword):
		return http.StatusUnauthorized, "incorrect password"
	case errors.Is(err, domain.ErrAccountDisabled):
		return http.StatusForbidden, "this account has been disabled"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "too many attempts, try again later"
	case errors.Is(err, domain.ErrSelfPairing):
		return http.StatusUnprocessableEntity, "you cannot chat with yourself"
	case errors.Is(err, domain.ErrUnknownPasscode):
		return http.StatusNotFound, "invalid passcode"
	case errors.Is(err, domain.ErrInvalidSession):
		return http.StatusUnauthorized, "invalid chat session"
	case errors.Is(err, domain.ErrRoomForbidden):
		return http.StatusForbidden, "you are not a participant of this room"
	case errors.Is(err, domain.ErrEmptyMessage):
		return http.StatusBadRequest, "message text is empty"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
