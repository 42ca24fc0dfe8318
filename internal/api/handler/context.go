package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/api/middleware"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
)

// ctxSession extracts the session injected by the Auth middleware and
// performs a fast-fail check before any service call: presence proves the
// middleware ran, and a session without a code is structurally broken.
func ctxSession(c echo.Context) (*domain.Session, error) {
	session, _ := c.Get(middleware.SessionKey).(*domain.Session)
	if session == nil || session.Code == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return session, nil
}
