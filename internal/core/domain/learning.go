package domain

import (
	"errors"
	"math"
	"time"
)

const (
	// MaxTopics caps topics_learned to the most recently added entries.
	MaxTopics = 20
	// MaxDailyProgress caps daily_progress to one entry per calendar date.
	MaxDailyProgress = 7
	// MaxSessions caps the retained study sessions, oldest evicted first.
	MaxSessions = 50

	maxTitleLen = 50
	dateLayout  = "2006-01-02"
)

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

var ErrSessionNotFound = errors.New("session not found")

// DailyProgress is one calendar day's accuracy bucket.
type DailyProgress struct {
	Day             string `json:"day"`
	Date            string `json:"date"`
	AccuracyPercent int    `json:"accuracy_percent"`
}

// LearningStats accumulates per-identity learning activity. All mutations go
// through the methods below so the streak and cap rules hold everywhere.
type LearningStats struct {
	QuestionsAsked int             `json:"questions_asked"`
	TopicsLearned  []string        `json:"topics_learned"`
	TotalCorrect   int             `json:"total_correct"`
	TotalAttempts  int             `json:"total_attempts"`
	StreakDays     int             `json:"streak_days"`
	LastActiveDate string          `json:"last_active_date,omitempty"`
	DailyProgress  []DailyProgress `json:"daily_progress"`
}

// RecordActivity advances the streak for the day of now. Consecutive-day
// activity extends the streak, a gap of two or more days resets it, and a
// repeat call on the same date is a no-op.
func (s *LearningStats) RecordActivity(now time.Time) {
	today := now.Format(dateLayout)
	switch s.LastActiveDate {
	case today:
		// already counted
	case now.AddDate(0, 0, -1).Format(dateLayout):
		s.StreakDays++
		s.LastActiveDate = today
	default:
		s.StreakDays = 1
		s.LastActiveDate = today
	}
}

// AddTopic appends a topic unless it is already present (case-sensitive
// exact match), truncating to the MaxTopics most recent.
func (s *LearningStats) AddTopic(topic string) {
	for _, t := range s.TopicsLearned {
		if t == topic {
			return
		}
	}
	s.TopicsLearned = append(s.TopicsLearned, topic)
	if len(s.TopicsLearned) > MaxTopics {
		s.TopicsLearned = s.TopicsLearned[len(s.TopicsLearned)-MaxTopics:]
	}
}

// RecordAnswer counts an attempt and upserts the day's accuracy bucket by
// exact date match. The bucket list keeps the MaxDailyProgress most recent
// dates, most recent last.
func (s *LearningStats) RecordAnswer(correct bool, now time.Time) {
	s.TotalAttempts++
	if correct {
		s.TotalCorrect++
	}

	entry := DailyProgress{
		Day:             now.Format("Mon"),
		Date:            now.Format(dateLayout),
		AccuracyPercent: s.AvgAccuracy(),
	}
	for i := range s.DailyProgress {
		if s.DailyProgress[i].Date == entry.Date {
			s.DailyProgress[i] = entry
			return
		}
	}
	s.DailyProgress = append(s.DailyProgress, entry)
	if len(s.DailyProgress) > MaxDailyProgress {
		s.DailyProgress = s.DailyProgress[len(s.DailyProgress)-MaxDailyProgress:]
	}
}

// AvgAccuracy derives the rounded overall accuracy percentage. Never stored;
// 0 when no answers have been recorded.
func (s *LearningStats) AvgAccuracy() int {
	if s.TotalAttempts == 0 {
		return 0
	}
	return int(math.Round(100 * float64(s.TotalCorrect) / float64(s.TotalAttempts)))
}

// SessionMessage is one turn inside a study session.
type SessionMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// StudySession groups the messages of one conversation thread.
type StudySession struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Messages  []SessionMessage `json:"messages"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// SessionTitle derives a session title from its first user message.
func SessionTitle(message string) string {
	runes := []rune(message)
	if len(runes) > maxTitleLen {
		return string(runes[:maxTitleLen])
	}
	return message
}
