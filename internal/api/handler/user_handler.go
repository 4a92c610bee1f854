package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/aistudybuddy/study-buddy-api/internal/core/domain"
	"github.com/aistudybuddy/study-buddy-api/internal/core/ports"
)

// UserHandler serves the signed-in user's chat history and stats.
type UserHandler struct {
	chatService  ports.ChatService
	statsService ports.UserStatsService
}

func NewUserHandler(chatService ports.ChatService, statsService ports.UserStatsService) *UserHandler {
	return &UserHandler{chatService: chatService, statsService: statsService}
}

type chatHistoryResponse struct {
	History []domain.ChatRecord `json:"history"`
	Total   int64               `json:"total"`
	Page    int                 `json:"page"`
	Limit   int                 `json:"limit"`
}

// ChatHistory lists the caller's chat history, newest first.
//
// @Summary      Own chat history
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Page size (default 50, max 100)"
// @Success      200    {object}  chatHistoryResponse
// @Failure      401    {object}  map[string]string
// @Router       /api/user/chat-history [get]
func (h *UserHandler) ChatHistory(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.chatService.History(c.Request().Context(), ports.ChatFilter{
		UserID: identity.ID,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, chatHistoryResponse{
		History: result.History,
		Total:   result.Total,
		Page:    result.Page,
		Limit:   result.Limit,
	})
}

// DeleteChatEntry removes one of the caller's own chat entries.
//
// @Summary      Delete a chat entry
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Param        id   query     string  true  "Chat entry id"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/user/chat-history [delete]
func (h *UserHandler) DeleteChatEntry(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	entryID := c.QueryParam("id")
	if entryID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}

	if err := h.chatService.DeleteEntry(c.Request().Context(), identity.ID, identity.Role, entryID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Stats returns the caller's aggregate stats.
//
// @Summary      Own stats
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.UserStatsView
// @Failure      401  {object}  map[string]string
// @Router       /api/user/stats [get]
func (h *UserHandler) Stats(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	view, err := h.statsService.Get(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// UpdateStats applies a partial stats update. Unknown fields are dropped;
// an update that names only unknown fields is a 400.
//
// @Summary      Update own stats
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      map[string]any  true  "Fields to update"
// @Success      200   {object}  map[string]bool
// @Failure      400   {object}  map[string]string
// @Router       /api/user/stats [put]
func (h *UserHandler) UpdateStats(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var fields map[string]any
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.statsService.Update(c.Request().Context(), identity.ID, fields); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
