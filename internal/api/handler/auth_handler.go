package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/api/metrics"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Code string `json:"code" validate:"required,alphanum,len=5"`
}

type consentRequest struct {
	Code    string `json:"code" validate:"required,alphanum,len=5"`
	Consent *bool  `json:"consent" validate:"required"`
}

type consentUpdateRequest struct {
	Consent *bool `json:"consent" validate:"required"`
}

type sessionResponse struct {
	NeedsConsent bool   `json:"needs_consent,omitempty"`
	Token        string `json:"token,omitempty"`
	Code         string `json:"code,omitempty"`
	Role         string `json:"role,omitempty"`
}

func toSessionResponse(res *ports.LoginResult) sessionResponse {
	if res.NeedsConsent {
		return sessionResponse{NeedsConsent: true}
	}
	return sessionResponse{
		Token: res.Token,
		Code:  res.Session.Code,
		Role:  string(res.Session.Role),
	}
}

// Login authenticates an access code and issues a session token.
//
// @Summary      Login with an access code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Access code"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid code format")
	}

	res, err := h.authService.Authenticate(c.Request().Context(), req.Code)
	if err != nil {
		return err
	}

	if !res.NeedsConsent {
		metrics.LoginsTotal.WithLabelValues(string(res.Session.Role)).Inc()
	}
	return c.JSON(http.StatusOK, toSessionResponse(res))
}

// CompleteConsent records a first-login consent decision and issues a session.
//
// @Summary      Complete the first-login consent flow
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      consentRequest  true  "Code and consent decision"
// @Success      201   {object}  sessionResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/auth/consent [post]
func (h *AuthHandler) CompleteConsent(c echo.Context) error {
	var req consentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	res, err := h.authService.CompleteConsent(c.Request().Context(), req.Code, *req.Consent)
	if err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues(string(res.Session.Role)).Inc()
	return c.JSON(http.StatusCreated, toSessionResponse(res))
}

// UpdateConsent overwrites the consent decision of the authenticated session.
//
// @Summary      Update the data-use consent decision
// @Tags         auth
// @Accept       json
// @Security     BearerAuth
// @Param        body  body      consentUpdateRequest  true  "Consent decision"
// @Success      204
// @Failure      503   {object}  errorResponse
// @Router       /v1/auth/consent [put]
func (h *AuthHandler) UpdateConsent(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req consentUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.authService.UpdateConsent(c.Request().Context(), session, *req.Consent); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Logout destroys the session and records the logout event.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      503   {object}  errorResponse
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), session); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
