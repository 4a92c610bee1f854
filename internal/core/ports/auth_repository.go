package ports

import (
	"context"

	"github.com/aistudybuddy/study-buddy-api/internal/core/domain"
)

// AuthRepository defines the interface for user persistence.
type AuthRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// StatsRepository defines the interface for the per-user aggregate stats
// document. A missing record reads as zeroes, so Init failures at signup are
// recoverable.
type StatsRepository interface {
	Init(ctx context.Context, userID string) error
	Find(ctx context.Context, userID string) (*domain.UserStats, error)
	Update(ctx context.Context, userID string, fields map[string]any) error
	RecordQuestion(ctx context.Context, userID string) error
}
