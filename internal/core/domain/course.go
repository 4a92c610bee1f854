package domain

import (
	"errors"
	"time"
)

const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
)

var ErrCourseNotFound = errors.New("course not found")
var ErrEmptyUpdate = errors.New("no update data provided")

// Course is a catalog entry managed from the admin dashboard.
type Course struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	Name          string    `json:"name" bson:"name"`
	Description   string    `json:"description" bson:"description"`
	Difficulty    string    `json:"difficulty" bson:"difficulty"`
	Icon          string    `json:"icon" bson:"icon"`
	Category      string    `json:"category" bson:"category"`
	EnrolledCount int       `json:"enrolled_count" bson:"enrolled_count"`
	Rating        float64   `json:"rating" bson:"rating"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}
