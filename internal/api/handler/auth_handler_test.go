package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/aistudybuddy/study-buddy-api/internal/core/domain"
)

type stubAuthService struct {
	signupFn      func(ctx context.Context, name, email, password string) (*domain.User, string, error)
	loginFn       func(ctx context.Context, email, password string) (*domain.User, string, error)
	currentUserFn func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubAuthService) Signup(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	return s.signupFn(ctx, name, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) VerifyToken(string) (*domain.Identity, error) {
	return nil, domain.ErrInvalidToken
}

func (s *stubAuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	if s.currentUserFn != nil {
		return s.currentUserFn(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, name, email, password string) (*domain.User, string, error) {
			if name != "Alice" || email != "alice@example.com" {
				t.Fatalf("unexpected args: %s %s", name, email)
			}
			return &domain.User{ID: "user_1", Name: name, Email: email, Role: domain.RoleUser}, "signed-token", nil
		},
	}
	handler := NewAuthHandler(stub, zerolog.Nop())

	body := strings.NewReader(`{"name":"Alice","email":"alice@example.com","password":"hunter22"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "signed-token" {
		t.Fatalf("token missing from response: %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["email"] != "alice@example.com" {
		t.Fatalf("unexpected user payload: %+v", resp)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password hash must never serialize")
	}
}

func TestAuthHandler_Signup_ValidationFailure(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{}, zerolog.Nop())

	// Password below the minimum length.
	body := strings.NewReader(`{"name":"Alice","email":"alice@example.com","password":"ab"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Signup(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Signup_Duplicate(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, name, email, password string) (*domain.User, string, error) {
			return nil, "", domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub, zerolog.Nop())

	body := strings.NewReader(`{"name":"Alice","email":"alice@example.com","password":"hunter22"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Signup(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists to bubble to the error handler, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*domain.User, string, error) {
			return nil, "", domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, zerolog.Nop())

	body := strings.NewReader(`{"email":"alice@example.com","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{}, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Session_Anonymous(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{}, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Session(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"authenticated":false`) {
		t.Fatalf("anonymous session must read unauthenticated: %s", rec.Body.String())
	}
}

func TestAuthHandler_Session_Authenticated(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		currentUserFn: func(ctx context.Context, userID string) (*domain.User, error) {
			return &domain.User{ID: userID, Name: "Alice", Email: "alice@example.com"}, nil
		},
	}
	handler := NewAuthHandler(stub, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "user_1")

	if err := handler.Session(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"authenticated":true`) {
		t.Fatalf("expected authenticated session: %s", rec.Body.String())
	}
}
