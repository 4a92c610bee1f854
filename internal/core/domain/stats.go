package domain

import "time"

// UserStats is the server-side per-user aggregate kept in the document store.
// It is zero-initialized at signup; a missing record is treated as zeroes so
// the signup write pair never needs to be transactional.
type UserStats struct {
	ID              string    `json:"id" bson:"_id,omitempty"`
	UserID          string    `json:"user_id" bson:"user_id"`
	QuestionsAsked  int       `json:"questions_asked" bson:"questions_asked"`
	TopicsLearned   []string  `json:"topics_learned" bson:"topics_learned"`
	TotalAccuracy   float64   `json:"total_accuracy" bson:"total_accuracy"`
	AccuracyCount   int       `json:"accuracy_count" bson:"accuracy_count"`
	Streak          int       `json:"streak" bson:"streak"`
	CoursesEnrolled []string  `json:"courses_enrolled" bson:"courses_enrolled"`
	LastActiveDate  time.Time `json:"last_active_date" bson:"last_active_date"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"`
}
