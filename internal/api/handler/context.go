package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aistudybuddy/study-buddy-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware. The
// user id doubles as the proof the middleware ran; routes behind Auth fail
// with 401 rather than panicking if it is missing.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	id, _ := c.Get("user_id").(string)
	if id == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	name, _ := c.Get("name").(string)
	email, _ := c.Get("email").(string)
	role, _ := c.Get("role").(string)

	return &domain.Identity{ID: id, Name: name, Email: email, Role: role}, nil
}

// ctxUserID is the optional-auth variant: an empty id means anonymous.
func ctxUserID(c echo.Context) string {
	id, _ := c.Get("user_id").(string)
	return id
}
