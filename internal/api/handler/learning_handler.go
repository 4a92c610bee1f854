package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aistudybuddy/study-buddy-api/internal/core/domain"
	"github.com/aistudybuddy/study-buddy-api/internal/core/ports"
)

// LearningHandler exposes the learning-state store. Routes sit behind
// OptionalAuth: anonymous callers share the guest partition.
type LearningHandler struct {
	learningService ports.LearningService
}

func NewLearningHandler(learningService ports.LearningService) *LearningHandler {
	return &LearningHandler{learningService: learningService}
}

type addTopicRequest struct {
	Topic string `json:"topic" validate:"required"`
}

type recordAnswerRequest struct {
	Correct *bool `json:"correct" validate:"required"`
}

type addMessageRequest struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

type sessionsResponse struct {
	Sessions []domain.StudySession `json:"sessions"`
}

// RecordActivity applies the daily streak transition.
//
// @Summary      Record activity
// @Tags         learning
// @Produce      json
// @Success      200  {object}  domain.LearningStats
// @Router       /api/learning/activity [post]
func (h *LearningHandler) RecordActivity(c echo.Context) error {
	stats, err := h.learningService.RecordActivity(c.Request().Context(), ctxUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// AddTopic marks a topic as studied.
//
// @Summary      Add a studied topic
// @Tags         learning
// @Accept       json
// @Produce      json
// @Param        body  body      addTopicRequest  true  "Topic"
// @Success      200   {object}  domain.LearningStats
// @Failure      400   {object}  map[string]string
// @Router       /api/learning/topics [post]
func (h *LearningHandler) AddTopic(c echo.Context) error {
	var req addTopicRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	stats, err := h.learningService.AddTopic(c.Request().Context(), ctxUserID(c), req.Topic)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// RecordAnswer counts a quiz answer toward accuracy.
//
// @Summary      Record a quiz answer
// @Tags         learning
// @Accept       json
// @Produce      json
// @Param        body  body      recordAnswerRequest  true  "Answer outcome"
// @Success      200   {object}  domain.LearningStats
// @Failure      400   {object}  map[string]string
// @Router       /api/learning/answers [post]
func (h *LearningHandler) RecordAnswer(c echo.Context) error {
	var req recordAnswerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	stats, err := h.learningService.RecordAnswer(c.Request().Context(), ctxUserID(c), *req.Correct)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Dashboard returns the derived learning dashboard.
//
// @Summary      Learning dashboard
// @Tags         learning
// @Produce      json
// @Success      200  {object}  ports.DashboardData
// @Router       /api/learning/dashboard [get]
func (h *LearningHandler) Dashboard(c echo.Context) error {
	data, err := h.learningService.Dashboard(c.Request().Context(), ctxUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, data)
}

// ListSessions lists study sessions holding at least one message.
//
// @Summary      List study sessions
// @Tags         learning
// @Produce      json
// @Success      200  {object}  sessionsResponse
// @Router       /api/learning/sessions [get]
func (h *LearningHandler) ListSessions(c echo.Context) error {
	sessions, err := h.learningService.ListSessions(c.Request().Context(), ctxUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionsResponse{Sessions: sessions})
}

// CreateSession opens a fresh study session.
//
// @Summary      Create a study session
// @Tags         learning
// @Produce      json
// @Success      201  {object}  domain.StudySession
// @Router       /api/learning/sessions [post]
func (h *LearningHandler) CreateSession(c echo.Context) error {
	session, err := h.learningService.CreateSession(c.Request().Context(), ctxUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, session)
}

// AddMessage appends a message to a session.
//
// @Summary      Append a session message
// @Tags         learning
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "Session id"
// @Param        body  body      addMessageRequest  true  "Message"
// @Success      200   {object}  domain.StudySession
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/learning/sessions/{id}/messages [post]
func (h *LearningHandler) AddMessage(c echo.Context) error {
	var req addMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.learningService.AddMessage(c.Request().Context(), ctxUserID(c), c.Param("id"), req.Role, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, session)
}

// DeleteSession removes a session.
//
// @Summary      Delete a study session
// @Tags         learning
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  map[string]string
// @Router       /api/learning/sessions/{id} [delete]
func (h *LearningHandler) DeleteSession(c echo.Context) error {
	if err := h.learningService.DeleteSession(c.Request().Context(), ctxUserID(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
