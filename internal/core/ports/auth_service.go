package ports

import (
	"context"

	"github.com/aistudybuddy/study-buddy-api/internal/core/domain"
)

type AuthService interface {
	// Signup registers a new account and returns it with a fresh session token.
	Signup(ctx context.Context, name, email, password string) (*domain.User, string, error)
	// Login checks credentials and returns the user with a session token.
	// Unknown email and wrong password are indistinguishable to the caller.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	// VerifyToken checks signature and expiry in one step; any failure means
	// no identity.
	VerifyToken(token string) (*domain.Identity, error)
	// CurrentUser resolves a verified identity back to the stored account.
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}
