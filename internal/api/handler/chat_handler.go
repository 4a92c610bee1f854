package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aistudybuddy/study-buddy-api/internal/core/domain"
	"github.com/aistudybuddy/study-buddy-api/internal/core/ports"
)

type ChatHandler struct {
	chatService ports.ChatService
}

func NewChatHandler(chatService ports.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type chatRequest struct {
	Message string `json:"message" validate:"required"`
}

type chatResponse struct {
	Response string               `json:"response"`
	Model    string               `json:"model"`
	Tokens   domain.TokenEstimate `json:"tokens"`
}

// Chat answers a study question. Anonymous callers get an answer without
// history; authenticated callers also get the exchange recorded.
//
// @Summary      Ask the study buddy
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body      chatRequest  true  "User message"
// @Success      200   {object}  chatResponse
// @Failure      400   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/chat [post]
func (h *ChatHandler) Chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.chatService.Chat(c.Request().Context(), ports.ChatInput{
		UserID:  ctxUserID(c),
		Message: req.Message,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmptyMessage) {
			return err
		}
		// Provider failures must not leak upstream details.
		return echo.NewHTTPError(http.StatusBadGateway, "ai service unavailable")
	}

	return c.JSON(http.StatusOK, chatResponse{
		Response: result.Response,
		Model:    result.Model,
		Tokens:   result.Tokens,
	})
}
