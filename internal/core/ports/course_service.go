package ports

import (
	"context"

	"github.com/aistudybuddy/study-buddy-api/internal/core/domain"
)

type CreateCourseInput struct {
	Name        string
	Description string
	Difficulty  string
	Icon        string
	Category    string
}

// UpdateCourseInput carries a partial patch; nil fields are left untouched.
type UpdateCourseInput struct {
	Name        *string
	Description *string
	Difficulty  *string
	Icon        *string
	Category    *string
}

type CourseService interface {
	List(ctx context.Context, filter CourseFilter) ([]domain.Course, error)
	Create(ctx context.Context, in CreateCourseInput) (*domain.Course, error)
	Update(ctx context.Context, id string, in UpdateCourseInput) (*domain.Course, error)
	Delete(ctx context.Context, id string) error
}
