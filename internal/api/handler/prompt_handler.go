package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/ports"
)

type PromptHandler struct {
	promptService ports.PromptService
}

func NewPromptHandler(promptService ports.PromptService) *PromptHandler {
	return &PromptHandler{promptService: promptService}
}

type documentRequest struct {
	Filename string `json:"filename" validate:"required"`
	// Data is the raw file, base64-encoded in the JSON payload.
	Data []byte `json:"data" validate:"required"`
}

type createPromptRequest struct {
	Content   string            `json:"content" validate:"required,min=1"`
	Documents []documentRequest `json:"documents" validate:"dive"`
}

// Create authors a new prompt, extracting any attached documents to text.
//
// @Summary      Create a prompt
// @Tags         prompts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPromptRequest  true  "Prompt content and attachments"
// @Success      201   {object}  domain.Prompt
// @Failure      422   {object}  errorResponse
// @Router       /v1/prompts [post]
func (h *PromptHandler) Create(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req createPromptRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	in := ports.CreatePromptInput{
		OwnerCode: session.Code,
		Content:   req.Content,
	}
	for _, d := range req.Documents {
		in.Documents = append(in.Documents, ports.DocumentInput{Filename: d.Filename, Data: d.Data})
	}

	prompt, err := h.promptService.CreatePrompt(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, prompt)
}

// List returns the session's prompts, newest first.
//
// @Summary      List prompts
// @Tags         prompts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Prompt
// @Router       /v1/prompts [get]
func (h *PromptHandler) List(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	prompts, err := h.promptService.ListPrompts(c.Request().Context(), session.Code)
	if err != nil {
		return err
	}
	if prompts == nil {
		prompts = []*domain.Prompt{}
	}
	return c.JSON(http.StatusOK, prompts)
}

// Get returns one prompt owned by the session.
//
// @Summary      Get a prompt
// @Tags         prompts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Prompt id (P001, ...)"
// @Success      200  {object}  domain.Prompt
// @Failure      404  {object}  errorResponse
// @Router       /v1/prompts/{id} [get]
func (h *PromptHandler) Get(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	prompt, err := h.promptService.GetPrompt(c.Request().Context(), c.Param("id"), session.Code)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, prompt)
}
