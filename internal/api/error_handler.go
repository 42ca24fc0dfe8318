package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/api/metrics"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
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

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCode):
		return http.StatusUnauthorized, "invalid access code"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrCredentialNotFound):
		return http.StatusNotFound, "credential not found"
	case errors.Is(err, domain.ErrPromptNotFound):
		return http.StatusNotFound, "prompt not found"
	case errors.Is(err, domain.ErrConversationNotFound):
		return http.StatusNotFound, "conversation not found"
	case errors.Is(err, domain.ErrAlreadyGranted):
		return http.StatusConflict, "admin grant already active"
	case errors.Is(err, domain.ErrNotActive):
		return http.StatusConflict, "no active admin grant"
	case errors.Is(err, domain.ErrCredentialExists):
		return http.StatusConflict, "credential already exists"
	case errors.Is(err, domain.ErrCannotRevokeSuperAdmin):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrExtraction):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrAuditWrite):
		// A privileged operation aborted because its event could not be
		// recorded.
		metrics.AuditWriteErrorsTotal.WithLabelValues("privileged").Inc()
		return http.StatusServiceUnavailable, "audit log unavailable"
	case errors.Is(err, domain.ErrProvider):
		return http.StatusBadGateway, "chat provider error"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
