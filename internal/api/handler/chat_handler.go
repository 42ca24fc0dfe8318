package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/ports"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/tokens"
)

type ChatHandler struct {
	chatService ports.ChatService
}

func NewChatHandler(chatService ports.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type startConversationRequest struct {
	PromptID string `json:"prompt_id" validate:"required"`
	Message  string `json:"message" validate:"required,min=1"`
}

type continueConversationRequest struct {
	Message string `json:"message" validate:"required,min=1"`
}

type chatTurnResponse struct {
	Conversation *domain.Conversation `json:"conversation"`
	Reply        string               `json:"reply"`
	Usage        tokens.Usage         `json:"usage"`
}

// Start begins a conversation from a prompt and returns the first reply.
//
// @Summary      Start a conversation
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      startConversationRequest  true  "Prompt and first message"
// @Success      201   {object}  chatTurnResponse
// @Failure      404   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /v1/conversations [post]
func (h *ChatHandler) Start(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req startConversationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	res, err := h.chatService.StartConversation(c.Request().Context(), ports.StartConversationInput{
		OwnerCode: session.Code,
		PromptID:  req.PromptID,
		Message:   req.Message,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, chatTurnResponse{Conversation: res.Conversation, Reply: res.Reply, Usage: res.Usage})
}

// Continue appends a turn to an existing conversation.
//
// @Summary      Continue a conversation
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                       true  "Conversation id (C001, ...)"
// @Param        body  body      continueConversationRequest  true  "Next message"
// @Success      200   {object}  chatTurnResponse
// @Failure      404   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /v1/conversations/{id}/messages [post]
func (h *ChatHandler) Continue(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req continueConversationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	res, err := h.chatService.ContinueConversation(c.Request().Context(), session.Code, c.Param("id"), req.Message)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, chatTurnResponse{Conversation: res.Conversation, Reply: res.Reply, Usage: res.Usage})
}

// List returns the session's conversations, most recently updated first.
//
// @Summary      List conversations
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Conversation
// @Router       /v1/conversations [get]
func (h *ChatHandler) List(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	convos, err := h.chatService.ListConversations(c.Request().Context(), session.Code)
	if err != nil {
		return err
	}
	if convos == nil {
		convos = []*domain.Conversation{}
	}
	return c.JSON(http.StatusOK, convos)
}
