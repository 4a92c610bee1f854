package ports

import (
	"context"

	"github.com/aistudybuddy/study-buddy-api/internal/core/domain"
)

type ChatInput struct {
	UserID  string
	Message string
}

type ChatResult struct {
	Response string
	Model    string
	Tokens   domain.TokenEstimate
}

type ChatHistoryPage struct {
	History []domain.ChatRecord
	Total   int64
	Page    int
	Limit   int
}

type ChatService interface {
	// Chat completes the message and, for authenticated users, records the
	// exchange best-effort: storage errors never fail the returned response.
	Chat(ctx context.Context, in ChatInput) (*ChatResult, error)
	History(ctx context.Context, filter ChatFilter) (*ChatHistoryPage, error)
	// DeleteEntry removes one record. Non-admin callers may only delete
	// their own entries.
	DeleteEntry(ctx context.Context, callerID, role, entryID string) error
}
