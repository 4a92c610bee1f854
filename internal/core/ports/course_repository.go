package ports

import (
	"context"

	"github.com/aistudybuddy/study-buddy-api/internal/core/domain"
)

// CourseFilter narrows catalog listings; empty fields match everything.
type CourseFilter struct {
	Category   string
	Difficulty string
}

// CourseRepository defines the interface for course catalog persistence.
type CourseRepository interface {
	Insert(ctx context.Context, course *domain.Course) (*domain.Course, error)
	FindByID(ctx context.Context, id string) (*domain.Course, error)
	List(ctx context.Context, filter CourseFilter) ([]domain.Course, error)
	Update(ctx context.Context, id string, fields map[string]any) (*domain.Course, error)
	Delete(ctx context.Context, id string) error
}
