package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/ports"
)

// AdminHandler exposes the admin-code directory and the aggregate usage
// statistics. Route-level RBAC guarantees grant/revoke/directory calls come
// from super_admin sessions and stats from admin or above.
type AdminHandler struct {
	adminService ports.AdminService
	statsService ports.StatsService
}

func NewAdminHandler(adminService ports.AdminService, statsService ports.StatsService) *AdminHandler {
	return &AdminHandler{adminService: adminService, statsService: statsService}
}

type grantRequest struct {
	Code  string `json:"code" validate:"required,alphanum,len=5"`
	Level string `json:"level" validate:"required,oneof=admin super_admin"`
}

// Grant activates an admin grant for a code.
//
// @Summary      Grant an admin code
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      grantRequest  true  "Code and level"
// @Success      201   {object}  domain.AdminGrant
// @Failure      409   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /v1/admin/codes [post]
func (h *AdminHandler) Grant(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req grantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	grant, err := h.adminService.Grant(c.Request().Context(), req.Code, domain.AdminLevel(req.Level), session.Code)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, grant)
}

// Revoke soft-deletes the active grant for a code.
//
// @Summary      Revoke an admin code
// @Tags         admin
// @Security     BearerAuth
// @Param        code  path  string  true  "Access code"
// @Success      204
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/codes/{code} [delete]
func (h *AdminHandler) Revoke(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.adminService.Revoke(c.Request().Context(), c.Param("code"), session.Code); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListGrants returns the admin-code directory.
//
// @Summary      List admin grants
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        include_revoked  query  bool  false  "Include revoked grants"
// @Success      200  {array}  domain.AdminGrant
// @Router       /v1/admin/codes [get]
func (h *AdminHandler) ListGrants(c echo.Context) error {
	includeRevoked := c.QueryParam("include_revoked") == "true"

	grants, err := h.adminService.ListGrants(c.Request().Context(), includeRevoked)
	if err != nil {
		return err
	}
	if grants == nil {
		grants = []*domain.AdminGrant{}
	}
	return c.JSON(http.StatusOK, grants)
}

// Stats returns the aggregate usage snapshot.
//
// @Summary      System usage statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.SystemStats
// @Router       /v1/admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.statsService.SystemStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
