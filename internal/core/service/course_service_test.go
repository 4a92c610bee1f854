package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/aistudybuddy/study-buddy-api/internal/core/domain"
	"github.com/aistudybuddy/study-buddy-api/internal/core/ports"
)

// stubCourseRepo is an in-memory CourseRepository.
type stubCourseRepo struct {
	courses map[string]*domain.Course
	nextID  int
}

func newStubCourseRepo() *stubCourseRepo {
	return &stubCourseRepo{courses: make(map[string]*domain.Course)}
}

func (r *stubCourseRepo) Insert(_ context.Context, course *domain.Course) (*domain.Course, error) {
	r.nextID++
	created := *course
	created.ID = "course_" + strconv.Itoa(r.nextID)
	r.courses[created.ID] = &created
	return &created, nil
}

func (r *stubCourseRepo) FindByID(_ context.Context, id string) (*domain.Course, error) {
	if course, ok := r.courses[id]; ok {
		return course, nil
	}
	return nil, domain.ErrCourseNotFound
}

func (r *stubCourseRepo) List(_ context.Context, filter ports.CourseFilter) ([]domain.Course, error) {
	var out []domain.Course
	for _, course := range r.courses {
		if filter.Category != "" && course.Category != filter.Category {
			continue
		}
		if filter.Difficulty != "" && course.Difficulty != filter.Difficulty {
			continue
		}
		out = append(out, *course)
	}
	return out, nil
}

func (r *stubCourseRepo) Update(_ context.Context, id string, fields map[string]any) (*domain.Course, error) {
	course, ok := r.courses[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	if name, ok := fields["name"].(string); ok {
		course.Name = name
	}
	if difficulty, ok := fields["difficulty"].(string); ok {
		course.Difficulty = difficulty
	}
	return course, nil
}

func (r *stubCourseRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.courses[id]; !ok {
		return domain.ErrCourseNotFound
	}
	delete(r.courses, id)
	return nil
}

func TestCourseService_CreateDefaultsIcon(t *testing.T) {
	svc := NewCourseService(newStubCourseRepo(), zerolog.Nop())

	course, err := svc.Create(context.Background(), ports.CreateCourseInput{
		Name:       "Algebra Basics",
		Difficulty: domain.DifficultyBeginner,
		Category:   "math",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if course.Icon != "📚" {
		t.Fatalf("expected default icon, got %q", course.Icon)
	}
	if course.EnrolledCount != 0 || course.Rating != 0 {
		t.Fatalf("new course must start at zero: %+v", course)
	}
	if course.CreatedAt.IsZero() || course.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not set")
	}
}

func TestCourseService_CreateKeepsGivenIcon(t *testing.T) {
	svc := NewCourseService(newStubCourseRepo(), zerolog.Nop())

	course, err := svc.Create(context.Background(), ports.CreateCourseInput{
		Name:       "Chemistry",
		Difficulty: domain.DifficultyAdvanced,
		Icon:       "🧪",
		Category:   "science",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if course.Icon != "🧪" {
		t.Fatalf("icon overridden: %q", course.Icon)
	}
}

func TestCourseService_UpdateEmptyPatch(t *testing.T) {
	svc := NewCourseService(newStubCourseRepo(), zerolog.Nop())

	_, err := svc.Update(context.Background(), "course_1", ports.UpdateCourseInput{})
	if !errors.Is(err, domain.ErrEmptyUpdate) {
		t.Fatalf("expected ErrEmptyUpdate, got %v", err)
	}
}

func TestCourseService_UpdateUnknownCourse(t *testing.T) {
	svc := NewCourseService(newStubCourseRepo(), zerolog.Nop())

	name := "Renamed"
	_, err := svc.Update(context.Background(), "missing", ports.UpdateCourseInput{Name: &name})
	if !errors.Is(err, domain.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestCourseService_ListFilters(t *testing.T) {
	repo := newStubCourseRepo()
	svc := NewCourseService(repo, zerolog.Nop())
	ctx := context.Background()

	for _, in := range []ports.CreateCourseInput{
		{Name: "Algebra", Difficulty: domain.DifficultyBeginner, Category: "math"},
		{Name: "Calculus", Difficulty: domain.DifficultyAdvanced, Category: "math"},
		{Name: "Biology", Difficulty: domain.DifficultyBeginner, Category: "science"},
	} {
		if _, err := svc.Create(ctx, in); err != nil {
			t.Fatalf("create %q: %v", in.Name, err)
		}
	}

	math, err := svc.List(ctx, ports.CourseFilter{Category: "math"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(math) != 2 {
		t.Fatalf("expected 2 math courses, got %d", len(math))
	}

	beginnerScience, err := svc.List(ctx, ports.CourseFilter{Category: "science", Difficulty: domain.DifficultyBeginner})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(beginnerScience) != 1 || beginnerScience[0].Name != "Biology" {
		t.Fatalf("unexpected filter result: %+v", beginnerScience)
	}
}
