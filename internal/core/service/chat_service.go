package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aistudybuddy/study-buddy-api/internal/api/metrics"
	"github.com/aistudybuddy/study-buddy-api/internal/core/domain"
	"github.com/aistudybuddy/study-buddy-api/internal/core/ports"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 100
)

type chatService struct {
	completer ports.Completer
	chats     ports.ChatRepository
	stats     ports.StatsRepository
	log       zerolog.Logger
}

// NewChatService returns a ChatService backed by the given completer and
// history store.
func NewChatService(completer ports.Completer, chats ports.ChatRepository, stats ports.StatsRepository, log zerolog.Logger) ports.ChatService {
	return &chatService{completer: completer, chats: chats, stats: stats, log: log}
}

// Chat runs one conversational turn: complete first, then record the
// exchange. The history and stats writes are best-effort — a storage failure
// is logged and never surfaces to the caller of the turn.
func (s *chatService) Chat(ctx context.Context, in ports.ChatInput) (*ports.ChatResult, error) {
	if strings.TrimSpace(in.Message) == "" {
		return nil, domain.ErrEmptyMessage
	}

	res, err := s.completer.Complete(ctx, in.Message)
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	if in.UserID != "" {
		s.recordExchange(ctx, in, res)
	}

	return &ports.ChatResult{Response: res.Text, Model: res.Model, Tokens: res.Tokens}, nil
}

func (s *chatService) recordExchange(ctx context.Context, in ports.ChatInput, res *ports.CompletionResult) {
	record := &domain.ChatRecord{
		UserID:            in.UserID,
		UserMessage:       in.Message,
		AssistantResponse: res.Text,
		Tokens:            res.Tokens,
		CreatedAt:         time.Now().UTC(),
	}

	if err := s.chats.Insert(ctx, record); err != nil {
		metrics.ChatSavesTotal.WithLabelValues("error").Inc()
		s.log.Warn().Err(err).Str("user_id", in.UserID).Msg("failed to save chat history")
		return
	}
	metrics.ChatSavesTotal.WithLabelValues("ok").Inc()

	if err := s.stats.RecordQuestion(ctx, in.UserID); err != nil {
		s.log.Warn().Err(err).Str("user_id", in.UserID).Msg("failed to update user stats")
	}
}

func (s *chatService) History(ctx context.Context, filter ports.ChatFilter) (*ports.ChatHistoryPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultHistoryLimit
	}
	if filter.Limit > maxHistoryLimit {
		filter.Limit = maxHistoryLimit
	}

	records, total, err := s.chats.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list chat history: %w", err)
	}

	return &ports.ChatHistoryPage{History: records, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *chatService) DeleteEntry(ctx context.Context, callerID, role, entryID string) error {
	record, err := s.chats.FindByID(ctx, entryID)
	if err != nil {
		return err
	}

	if role != domain.RoleAdmin && record.UserID != callerID {
		return domain.ErrForbidden
	}

	if err := s.chats.Delete(ctx, entryID); err != nil {
		return fmt.Errorf("delete chat entry: %w", err)
	}

	s.log.Info().Str("entry_id", entryID).Str("caller_id", callerID).Msg("chat entry deleted")
	return nil
}
