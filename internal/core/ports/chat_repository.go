package ports

import (
	"context"

	"github.com/aistudybuddy/study-buddy-api/internal/core/domain"
)

// ChatFilter narrows history listings. Empty UserID means all users
// (admin listings only).
type ChatFilter struct {
	UserID string
	Page   int
	Limit  int
}

// ChatRepository defines the interface for chat history persistence.
type ChatRepository interface {
	Insert(ctx context.Context, record *domain.ChatRecord) error
	FindByID(ctx context.Context, id string) (*domain.ChatRecord, error)
	// List returns one page of records, newest first, with the total count
	// matching the filter. Admin listings include joined user name/email.
	List(ctx context.Context, filter ChatFilter) ([]domain.ChatRecord, int64, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id string) error
}
