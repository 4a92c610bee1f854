package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aistudybuddy/study-buddy-api/internal/core/domain"
	"github.com/aistudybuddy/study-buddy-api/internal/core/ports"
)

const defaultCourseIcon = "📚"

type courseService struct {
	repo ports.CourseRepository
	log  zerolog.Logger
}

func NewCourseService(repo ports.CourseRepository, log zerolog.Logger) ports.CourseService {
	return &courseService{repo: repo, log: log}
}

func (s *courseService) List(ctx context.Context, filter ports.CourseFilter) ([]domain.Course, error) {
	return s.repo.List(ctx, filter)
}

func (s *courseService) Create(ctx context.Context, in ports.CreateCourseInput) (*domain.Course, error) {
	icon := in.Icon
	if icon == "" {
		icon = defaultCourseIcon
	}

	now := time.Now().UTC()
	course := &domain.Course{
		Name:        in.Name,
		Description: in.Description,
		Difficulty:  in.Difficulty,
		Icon:        icon,
		Category:    in.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Insert(ctx, course)
	if err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}

	s.log.Info().Str("course_id", created.ID).Str("name", created.Name).Msg("course created")
	return created, nil
}

func (s *courseService) Update(ctx context.Context, id string, in ports.UpdateCourseInput) (*domain.Course, error) {
	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Difficulty != nil {
		fields["difficulty"] = *in.Difficulty
	}
	if in.Icon != nil {
		fields["icon"] = *in.Icon
	}
	if in.Category != nil {
		fields["category"] = *in.Category
	}
	if len(fields) == 0 {
		return nil, domain.ErrEmptyUpdate
	}
	fields["updated_at"] = time.Now().UTC()

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("course_id", id).Msg("course updated")
	return updated, nil
}

func (s *courseService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("course_id", id).Msg("course deleted")
	return nil
}
