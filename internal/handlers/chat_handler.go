package handlers

import (
	"net/http"

	"github.com/anonto42/recipebook/backend/internal/models"
	"github.com/anonto42/recipebook/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ChatHandler handles one-to-one messaging
type ChatHandler struct {
	messaging *services.MessagingService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(messaging *services.MessagingService) *ChatHandler {
	return &ChatHandler{messaging: messaging}
}

// RegisterChatRoutes registers chat routes
func (h *ChatHandler) RegisterChatRoutes(g *echo.Group) {
	g.GET("/chats", h.GetChats)
	g.POST("/chats", h.OpenChat)
	g.GET("/chats/:id/messages", h.GetMessages)
	g.POST("/chats/:id/messages", h.SendMessage)
	g.GET("/chats/:id/stream", h.StreamMessages)
}

func (h *ChatHandler) GetChats(c echo.Context) error {
	chats, err := h.messaging.ListChats(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, echo.Map{"chats": chats})
}

// OpenChat finds or creates the chat with another user
func (h *ChatHandler) OpenChat(c echo.Context) error {
	var req models.OpenChatRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	chat, err := h.messaging.OpenChat(c.Request().Context(), getUserIDFromContext(c), req.UserID)
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, chat)
}

func (h *ChatHandler) GetMessages(c echo.Context) error {
	messages, err := h.messaging.Messages(c.Request().Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, echo.Map{"messages": messages})
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req models.SendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	msg, err := h.messaging.Send(c.Request().Context(), getUserIDFromContext(c), c.Param("id"), req.Text)
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusCreated, msg)
}

func (h *ChatHandler) StreamMessages(c echo.Context) error {
	events, err := h.messaging.Stream(c.Request().Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return streamEvents(c, events)
}
