package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
)

// NavHandler resolves the page set for the session role. Resolution is pure
// and recomputed on every call from the role cached at login.
type NavHandler struct{}

func NewNavHandler() *NavHandler {
	return &NavHandler{}
}

type navigationResponse struct {
	Role  string          `json:"role"`
	Pages []domain.PageID `json:"pages"`
}

// Navigation returns the pages visible to the current session.
//
// @Summary      Resolve visible pages for the session role
// @Tags         navigation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  navigationResponse
// @Router       /v1/navigation [get]
func (h *NavHandler) Navigation(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, navigationResponse{
		Role:  string(session.CurrentRole()),
		Pages: domain.ResolvePages(session.CurrentRole()),
	})
}
