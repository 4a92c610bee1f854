package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aistudybuddy/study-buddy-api/internal/core/domain"
	"github.com/aistudybuddy/study-buddy-api/internal/core/ports"
)

type CourseHandler struct {
	courseService ports.CourseService
}

func NewCourseHandler(courseService ports.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

type createCourseRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty" validate:"required,oneof=Beginner Intermediate Advanced"`
	Icon        string `json:"icon"`
	Category    string `json:"category" validate:"required"`
}

type updateCourseRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Difficulty  *string `json:"difficulty" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	Icon        *string `json:"icon"`
	Category    *string `json:"category"`
}

type coursesResponse struct {
	Courses []domain.Course `json:"courses"`
	Total   int             `json:"total"`
}

// List returns the course catalog, newest first.
//
// @Summary      List courses
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        category    query     string  false  "Filter by category"
// @Param        difficulty  query     string  false  "Filter by difficulty"
// @Success      200         {object}  coursesResponse
// @Router       /api/admin/courses [get]
func (h *CourseHandler) List(c echo.Context) error {
	courses, err := h.courseService.List(c.Request().Context(), ports.CourseFilter{
		Category:   c.QueryParam("category"),
		Difficulty: c.QueryParam("difficulty"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, coursesResponse{Courses: courses, Total: len(courses)})
}

// Create adds a course to the catalog.
//
// @Summary      Create a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCourseRequest  true  "Course details"
// @Success      201   {object}  domain.Course
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/admin/courses [post]
func (h *CourseHandler) Create(c echo.Context) error {
	var req createCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	course, err := h.courseService.Create(c.Request().Context(), ports.CreateCourseInput{
		Name:        req.Name,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		Icon:        req.Icon,
		Category:    req.Category,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, course)
}

// Update applies a partial patch to a course.
//
// @Summary      Update a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    query     string               true  "Course id"
// @Param        body  body      updateCourseRequest  true  "Fields to update"
// @Success      200   {object}  domain.Course
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/admin/courses [put]
func (h *CourseHandler) Update(c echo.Context) error {
	id := c.QueryParam("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}

	var req updateCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	course, err := h.courseService.Update(c.Request().Context(), id, ports.UpdateCourseInput{
		Name:        req.Name,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		Icon:        req.Icon,
		Category:    req.Category,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, course)
}

// Delete removes a course.
//
// @Summary      Delete a course
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        id   query     string  true  "Course id"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/courses [delete]
func (h *CourseHandler) Delete(c echo.Context) error {
	id := c.QueryParam("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required")
	}

	if err := h.courseService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
