package ports

import (
	"context"

	"github.com/aistudybuddy/study-buddy-api/internal/core/domain"
)

// DashboardData is the learning dashboard view, all fields derived from the
// stored stats partition of the calling identity.
type DashboardData struct {
	QuestionsAsked int                    `json:"questions_asked"`
	StreakDays     int                    `json:"streak_days"`
	TopicsLearned  []string               `json:"topics_learned"`
	AvgAccuracy    int                    `json:"avg_accuracy"`
	TotalCorrect   int                    `json:"total_correct"`
	TotalAttempts  int                    `json:"total_attempts"`
	LastActiveDate string                 `json:"last_active_date,omitempty"`
	DailyProgress  []domain.DailyProgress `json:"daily_progress"`
}

// LearningService owns the per-identity learning state. An empty userID
// selects the shared guest partition; the partition key is derived on every
// call so identity switches take effect immediately.
type LearningService interface {
	RecordActivity(ctx context.Context, userID string) (*domain.LearningStats, error)
	AddTopic(ctx context.Context, userID, topic string) (*domain.LearningStats, error)
	RecordAnswer(ctx context.Context, userID string, correct bool) (*domain.LearningStats, error)
	Dashboard(ctx context.Context, userID string) (*DashboardData, error)

	CreateSession(ctx context.Context, userID string) (*domain.StudySession, error)
	AddMessage(ctx context.Context, userID, sessionID, role, content string) (*domain.StudySession, error)
	DeleteSession(ctx context.Context, userID, sessionID string) error
	// ListSessions returns only sessions holding at least one message.
	ListSessions(ctx context.Context, userID string) ([]domain.StudySession, error)
}
