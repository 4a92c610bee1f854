package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/aistudybuddy/study-buddy-api/internal/core/domain"
)

// stubAuthRepo is an in-memory AuthRepository.
type stubAuthRepo struct {
	users   map[string]*domain.User // keyed by email
	nextID  int
	failAll bool
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.failAll {
		return nil, errors.New("db down")
	}
	if _, ok := r.users[user.Email]; ok {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	created := *user
	created.ID = "user_" + strconv.Itoa(r.nextID)
	r.users[user.Email] = &created
	return &created, nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if user, ok := r.users[email]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// stubStatsRepo records calls and can be told to fail Init.
type stubStatsRepo struct {
	initCalls     []string
	questionCalls []string
	failInit      bool
	failQuestions bool
}

func (r *stubStatsRepo) Init(_ context.Context, userID string) error {
	r.initCalls = append(r.initCalls, userID)
	if r.failInit {
		return errors.New("stats down")
	}
	return nil
}

func (r *stubStatsRepo) Find(_ context.Context, _ string) (*domain.UserStats, error) {
	return nil, domain.ErrStatsNotFound
}

func (r *stubStatsRepo) Update(_ context.Context, _ string, _ map[string]any) error {
	return nil
}

func (r *stubStatsRepo) RecordQuestion(_ context.Context, userID string) error {
	r.questionCalls = append(r.questionCalls, userID)
	if r.failQuestions {
		return errors.New("stats down")
	}
	return nil
}

func newAuthServiceForTest(repo *stubAuthRepo, stats *stubStatsRepo) *AuthService {
	return NewAuthService(repo, stats, "test-secret", time.Hour, zerolog.Nop())
}

func TestAuthService_SignupAndLogin(t *testing.T) {
	repo := newStubAuthRepo()
	stats := &stubStatsRepo{}
	svc := newAuthServiceForTest(repo, stats)

	user, token, err := svc.Signup(context.Background(), "Alice", "Alice@Example.com", "hunter22")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email not lowercased: %q", user.Email)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role %q, got %q", domain.RoleUser, user.Role)
	}
	if user.PasswordHash == "hunter22" || user.PasswordHash == "" {
		t.Fatalf("password stored unhashed")
	}
	if token == "" {
		t.Fatalf("expected a session token on signup")
	}
	if len(stats.initCalls) != 1 || stats.initCalls[0] != user.ID {
		t.Fatalf("stats not initialized for %q: %v", user.ID, stats.initCalls)
	}

	// Login with original casing still works.
	logged, token, err := svc.Login(context.Background(), "ALICE@example.COM", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.ID != user.ID {
		t.Fatalf("login returned wrong user: %q", logged.ID)
	}

	identity, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if identity.ID != user.ID || identity.Email != user.Email || identity.Role != domain.RoleUser {
		t.Fatalf("identity mismatch: %+v", identity)
	}
}

func TestAuthService_SignupDuplicateEmail(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newAuthServiceForTest(repo, &stubStatsRepo{})

	if _, _, err := svc.Signup(context.Background(), "Alice", "alice@example.com", "hunter22"); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	_, _, err := svc.Signup(context.Background(), "Alice Again", "ALICE@example.com", "other")
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_SignupSurvivesStatsFailure(t *testing.T) {
	repo := newStubAuthRepo()
	stats := &stubStatsRepo{failInit: true}
	svc := newAuthServiceForTest(repo, stats)

	_, token, err := svc.Signup(context.Background(), "Alice", "alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("signup should survive stats failure: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token despite stats failure")
	}
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newAuthServiceForTest(repo, &stubStatsRepo{})

	if _, _, err := svc.Signup(context.Background(), "Alice", "alice@example.com", "hunter22"); err != nil {
		t.Fatalf("signup: %v", err)
	}
	_, _, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_LoginUnknownEmailMasked(t *testing.T) {
	svc := newAuthServiceForTest(newStubAuthRepo(), &stubStatsRepo{})

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email must read as invalid credentials, got %v", err)
	}
}

func TestAuthService_VerifyTokenRejectsGarbage(t *testing.T) {
	svc := newAuthServiceForTest(newStubAuthRepo(), &stubStatsRepo{})

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := svc.VerifyToken(token); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestAuthService_VerifyTokenRejectsForeignSecret(t *testing.T) {
	repo := newStubAuthRepo()
	issuer := NewAuthService(repo, &stubStatsRepo{}, "other-secret", time.Hour, zerolog.Nop())
	verifier := newAuthServiceForTest(repo, &stubStatsRepo{})

	_, token, err := issuer.Signup(context.Background(), "Alice", "alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, err := verifier.VerifyToken(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("foreign-secret token must be rejected, got %v", err)
	}
}
