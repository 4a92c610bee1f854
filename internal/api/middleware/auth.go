package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/aistudybuddy/study-buddy-api/internal/core/domain"
	"github.com/aistudybuddy/study-buddy-api/internal/core/ports"
)

// TokenVerifier is the slice of the auth service the middleware needs.
type TokenVerifier interface {
	VerifyToken(token string) (*domain.Identity, error)
}

// Auth is the single authorization gate for protected routes: it validates
// the bearer token and injects the identity into the request context.
// A missing header and a bad token are reported separately, but neither
// distinguishes why verification failed.
func Auth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			identity, err := verifier.VerifyToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			setIdentity(c, identity)
			return next(c)
		}
	}
}

// OptionalAuth injects the identity when a valid bearer token is present and
// lets anonymous requests through untouched. Invalid tokens read as
// anonymous, never as an error.
func OptionalAuth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token, ok := bearerToken(c); ok {
				if identity, err := verifier.VerifyToken(token); err == nil {
					setIdentity(c, identity)
				}
			}
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

func setIdentity(c echo.Context, identity *domain.Identity) {
	c.Set("user_id", identity.ID)
	c.Set("name", identity.Name)
	c.Set("email", identity.Email)
	c.Set("role", identity.Role)
}

var _ TokenVerifier = (ports.AuthService)(nil)
