package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/aistudybuddy/study-buddy-api/internal/core/ports"
)

// AdminHandler serves the admin dashboard: platform stats and cross-user
// chat history. All routes sit behind the admin role gate.
type AdminHandler struct {
	adminService ports.AdminService
	chatService  ports.ChatService
}

func NewAdminHandler(adminService ports.AdminService, chatService ports.ChatService) *AdminHandler {
	return &AdminHandler{adminService: adminService, chatService: chatService}
}

// Stats returns the platform dashboard snapshot.
//
// @Summary      Platform stats
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.AdminStats
// @Failure      403  {object}  map[string]string
// @Router       /api/admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.adminService.DashboardStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// ChatHistory lists chat history across all users, optionally filtered to
// one user, with joined user name and email.
//
// @Summary      All chat history
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  query     string  false  "Filter by user id"
// @Param        page     query     int     false  "Page number (1-based)"
// @Param        limit    query     int     false  "Page size (default 50, max 100)"
// @Success      200      {object}  chatHistoryResponse
// @Failure      403      {object}  map[string]string
// @Router       /api/admin/chat-history [get]
func (h *AdminHandler) ChatHistory(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.chatService.History(c.Request().Context(), ports.ChatFilter{
		UserID: c.QueryParam("user_id"),
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

// DeleteChatEntry removes any user's chat entry.
//
// @Summary      Delete any chat entry
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   query     string  true  "Chat entry id"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/chat-history [delete]
func (h *AdminHandler) DeleteChatEntry(c echo.Context) error {
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
