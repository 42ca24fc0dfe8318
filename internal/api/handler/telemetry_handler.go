package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/ports"
)

// TelemetryHandler accepts fire-and-forget usage events from the client.
type TelemetryHandler struct {
	telemetry ports.TelemetryRecorder
}

func NewTelemetryHandler(telemetry ports.TelemetryRecorder) *TelemetryHandler {
	return &TelemetryHandler{telemetry: telemetry}
}

type pageVisitRequest struct {
	Page string `json:"page" validate:"required"`
}

// PageVisit records a page visit for the session. Always 202: recording is
// asynchronous and a lost page visit is acceptable.
//
// @Summary      Record a page visit
// @Tags         telemetry
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      pageVisitRequest  true  "Visited page"
// @Success      202   {object}  acceptedResponse
// @Router       /v1/telemetry/page-visit [post]
func (h *TelemetryHandler) PageVisit(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req pageVisitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	h.telemetry.Enqueue(ports.TelemetryEvent{
		ActorCode: session.Code,
		Action:    domain.ActionPageVisit,
		Payload:   map[string]any{"page_name": req.Page},
	})
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "event accepted"})
}
