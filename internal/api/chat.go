package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Pratham9108106876/farm/internal/core/services/assistant"
	apperrors "github.com/Pratham9108106876/farm/internal/pkg/errors"
	"github.com/labstack/echo/v4"
)

// Assistant answers one chat turn.
type Assistant interface {
	Chat(ctx context.Context, req assistant.Request) (string, error)
}

// ChatHandler serves the farming assistant endpoint.
type ChatHandler struct {
	assistant Assistant
	logger    *slog.Logger
}

// NewChatHandler creates the handler.
func NewChatHandler(a Assistant, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		assistant: a,
		logger:    logger,
	}
}

type chatResponse struct {
	Text string `json:"text"`
}

// Chat relays one turn to the assistant.
func (h *ChatHandler) Chat(c echo.Context) error {
	var req assistant.Request
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("Invalid request body")
	}

	text, err := h.assistant.Chat(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, chatResponse{Text: text})
}
