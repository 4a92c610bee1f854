package service

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aistudybuddy/study-buddy-api/internal/core/domain"
	"github.com/aistudybuddy/study-buddy-api/internal/core/ports"
)

const guestPartition = "guest"

// learningKey derives the storage partition for an identity. The mapping is
// injective for non-empty ids; an empty id selects the shared guest
// partition. Callers pass the id on every operation, so the key is derived
// fresh per call and an identity switch redirects persistence immediately.
func learningKey(kind, userID string) string {
	if userID == "" {
		userID = guestPartition
	}
	return "learning:" + kind + ":" + userID
}

type learningService struct {
	store ports.KVStore
	log   zerolog.Logger
	now   func() time.Time
}

// NewLearningService returns a LearningService persisting through the given
// key/value port.
func NewLearningService(store ports.KVStore, log zerolog.Logger) ports.LearningService {
	return &learningService{store: store, log: log, now: time.Now}
}

// --- Stats ---

func (s *learningService) loadStats(ctx context.Context, userID string) (*domain.LearningStats, error) {
	raw, err := s.store.Get(ctx, learningKey("stats", userID))
	if err != nil {
		if errors.Is(err, ports.ErrKeyNotFound) {
			return &domain.LearningStats{}, nil
		}
		return nil, fmt.Errorf("load learning stats: %w", err)
	}

	var stats domain.LearningStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("decode learning stats: %w", err)
	}
	return &stats, nil
}

func (s *learningService) saveStats(ctx context.Context, userID string, stats *domain.LearningStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encode learning stats: %w", err)
	}
	if err := s.store.Set(ctx, learningKey("stats", userID), raw); err != nil {
		return fmt.Errorf("save learning stats: %w", err)
	}
	return nil
}

func (s *learningService) RecordActivity(ctx context.Context, userID string) (*domain.LearningStats, error) {
	stats, err := s.loadStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats.RecordActivity(s.now())

	if err := s.saveStats(ctx, userID, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *learningService) AddTopic(ctx context.Context, userID, topic string) (*domain.LearningStats, error) {
	stats, err := s.loadStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Streak first, so every mutating call counts the day exactly once.
	stats.RecordActivity(s.now())
	stats.AddTopic(topic)

	if err := s.saveStats(ctx, userID, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *learningService) RecordAnswer(ctx context.Context, userID string, correct bool) (*domain.LearningStats, error) {
	stats, err := s.loadStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	stats.RecordActivity(now)
	stats.RecordAnswer(correct, now)

	if err := s.saveStats(ctx, userID, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *learningService) Dashboard(ctx context.Context, userID string) (*ports.DashboardData, error) {
	stats, err := s.loadStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ports.DashboardData{
		QuestionsAsked: stats.QuestionsAsked,
		StreakDays:     stats.StreakDays,
		TopicsLearned:  stats.TopicsLearned,
		AvgAccuracy:    stats.AvgAccuracy(),
		TotalCorrect:   stats.TotalCorrect,
		TotalAttempts:  stats.TotalAttempts,
		LastActiveDate: stats.LastActiveDate,
		DailyProgress:  stats.DailyProgress,
	}, nil
}

// --- Sessions ---

func (s *learningService) loadSessions(ctx context.Context, userID string) ([]domain.StudySession, error) {
	raw, err := s.store.Get(ctx, learningKey("sessions", userID))
	if err != nil {
		if errors.Is(err, ports.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	var sessions []domain.StudySession
	if err := json.Unmarshal(raw, &sessions); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}
	return sessions, nil
}

func (s *learningService) saveSessions(ctx context.Context, userID string, sessions []domain.StudySession) error {
	raw, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("encode sessions: %w", err)
	}
	if err := s.store.Set(ctx, learningKey("sessions", userID), raw); err != nil {
		return fmt.Errorf("save sessions: %w", err)
	}
	return nil
}

func (s *learningService) CreateSession(ctx context.Context, userID string) (*domain.StudySession, error) {
	sessions, err := s.loadSessions(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	session := domain.StudySession{
		ID:        newSessionID(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Newest first; the tail holds the oldest sessions and gets evicted.
	sessions = append([]domain.StudySession{session}, sessions...)
	if len(sessions) > domain.MaxSessions {
		sessions = sessions[:domain.MaxSessions]
	}

	if err := s.saveSessions(ctx, userID, sessions); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *learningService) AddMessage(ctx context.Context, userID, sessionID, role, content string) (*domain.StudySession, error) {
	sessions, err := s.loadSessions(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range sessions {
		if sessions[i].ID == sessionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.ErrSessionNotFound
	}

	now := s.now().UTC()
	session := &sessions[idx]
	session.Messages = append(session.Messages, domain.SessionMessage{
		ID:        newSessionID(),
		Role:      role,
		Content:   content,
		Timestamp: now,
	})
	session.UpdatedAt = now
	if session.Title == "" && role == domain.MessageRoleUser {
		session.Title = domain.SessionTitle(content)
	}

	if err := s.saveSessions(ctx, userID, sessions); err != nil {
		return nil, err
	}

	// A user message is a question asked: bump the stats partition too.
	// Best-effort — the session write stays authoritative.
	if role == domain.MessageRoleUser {
		if err := s.recordQuestion(ctx, userID); err != nil {
			s.log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to record question stat")
		}
	}

	saved := sessions[idx]
	return &saved, nil
}

func (s *learningService) recordQuestion(ctx context.Context, userID string) error {
	stats, err := s.loadStats(ctx, userID)
	if err != nil {
		return err
	}
	stats.RecordActivity(s.now())
	stats.QuestionsAsked++
	return s.saveStats(ctx, userID, stats)
}

func (s *learningService) DeleteSession(ctx context.Context, userID, sessionID string) error {
	sessions, err := s.loadSessions(ctx, userID)
	if err != nil {
		return err
	}

	kept := sessions[:0]
	found := false
	for _, session := range sessions {
		if session.ID == sessionID {
			found = true
			continue
		}
		kept = append(kept, session)
	}
	if !found {
		return domain.ErrSessionNotFound
	}

	return s.saveSessions(ctx, userID, kept)
}

func (s *learningService) ListSessions(ctx context.Context, userID string) ([]domain.StudySession, error) {
	sessions, err := s.loadSessions(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Empty sessions may exist transiently between creation and the first
	// message; they are never listed.
	listed := make([]domain.StudySession, 0, len(sessions))
	for _, session := range sessions {
		if len(session.Messages) > 0 {
			listed = append(listed, session)
		}
	}
	return listed, nil
}

// newSessionID returns a random 16-hex-char identifier.
func newSessionID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%016x", time.Now().UnixNano())
	}
	return fmt.Sprintf("%x", b)
}
