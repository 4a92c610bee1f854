package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aistudybuddy/study-buddy-api/internal/core/domain"
	"github.com/aistudybuddy/study-buddy-api/internal/core/ports"
)

// statsUpdateFields is the whitelist of caller-settable stats fields.
var statsUpdateFields = map[string]struct{}{
	"questions_asked":  {},
	"topics_learned":   {},
	"total_accuracy":   {},
	"accuracy_count":   {},
	"streak":           {},
	"courses_enrolled": {},
	"last_active_date": {},
}

type userStatsService struct {
	stats ports.StatsRepository
	chats ports.ChatRepository
	log   zerolog.Logger
}

func NewUserStatsService(stats ports.StatsRepository, chats ports.ChatRepository, log zerolog.Logger) ports.UserStatsService {
	return &userStatsService{stats: stats, chats: chats, log: log}
}

func (s *userStatsService) Get(ctx context.Context, userID string) (*ports.UserStatsView, error) {
	questions, err := s.chats.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}

	stats, err := s.stats.Find(ctx, userID)
	if err != nil {
		// The signup-time stats write is allowed to fail; an absent
		// document reads as zeroes.
		if errors.Is(err, domain.ErrStatsNotFound) {
			return &ports.UserStatsView{QuestionsAsked: questions, TopicsLearned: []string{}}, nil
		}
		return nil, fmt.Errorf("find stats: %w", err)
	}

	var avg float64
	if stats.AccuracyCount > 0 {
		avg = stats.TotalAccuracy / float64(stats.AccuracyCount)
	}

	view := &ports.UserStatsView{
		QuestionsAsked:  questions,
		Streak:          stats.Streak,
		CoursesEnrolled: len(stats.CoursesEnrolled),
		TopicsLearned:   stats.TopicsLearned,
		AverageAccuracy: avg,
	}
	if !stats.LastActiveDate.IsZero() {
		t := stats.LastActiveDate
		view.LastActiveDate = &t
	}
	if view.TopicsLearned == nil {
		view.TopicsLearned = []string{}
	}
	return view, nil
}

func (s *userStatsService) Update(ctx context.Context, userID string, fields map[string]any) error {
	filtered := map[string]any{}
	for k, v := range fields {
		if _, ok := statsUpdateFields[k]; ok {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		return domain.ErrEmptyUpdate
	}

	if err := s.stats.Update(ctx, userID, filtered); err != nil {
		return fmt.Errorf("update stats: %w", err)
	}
	return nil
}
