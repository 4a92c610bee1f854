package ports

import (
	"context"
	"time"
)

// UserStatsView is the per-user aggregate returned to the dashboard. The
// question count is derived live from chat history, not from the stats
// document, so deleted history stays consistent with the count.
type UserStatsView struct {
	QuestionsAsked  int64      `json:"questions_asked"`
	Streak          int        `json:"streak"`
	CoursesEnrolled int        `json:"courses_enrolled"`
	TopicsLearned   []string   `json:"topics_learned"`
	AverageAccuracy float64    `json:"average_accuracy"`
	LastActiveDate  *time.Time `json:"last_active_date,omitempty"`
}

type UserStatsService interface {
	// Get returns the aggregate view, with zero values when no stats
	// document exists yet.
	Get(ctx context.Context, userID string) (*UserStatsView, error)
	// Update applies a whitelisted partial update to the stats document,
	// creating it when absent.
	Update(ctx context.Context, userID string, fields map[string]any) error
}
