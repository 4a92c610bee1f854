package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/aistudybuddy/study-buddy-api/internal/core/domain"
)

// findableStatsRepo returns a fixed stats document and records updates.
type findableStatsRepo struct {
	stubStatsRepo
	doc     *domain.UserStats
	updates []map[string]any
}

func (r *findableStatsRepo) Find(_ context.Context, _ string) (*domain.UserStats, error) {
	if r.doc == nil {
		return nil, domain.ErrStatsNotFound
	}
	return r.doc, nil
}

func (r *findableStatsRepo) Update(_ context.Context, _ string, fields map[string]any) error {
	r.updates = append(r.updates, fields)
	return nil
}

func TestUserStatsService_GetMissingDocumentReadsAsZeroes(t *testing.T) {
	repo := &findableStatsRepo{}
	svc := NewUserStatsService(repo, &stubChatRepo{}, zerolog.Nop())

	view, err := svc.Get(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.QuestionsAsked != 0 || view.Streak != 0 || view.AverageAccuracy != 0 {
		t.Fatalf("expected zero view, got %+v", view)
	}
	if view.TopicsLearned == nil {
		t.Fatalf("topics must serialize as [], not null")
	}
}

func TestUserStatsService_GetDerivesQuestionCountFromHistory(t *testing.T) {
	chats := &stubChatRepo{records: []domain.ChatRecord{
		{ID: "a", UserID: "user_1"},
		{ID: "b", UserID: "user_1"},
		{ID: "c", UserID: "someone_else"},
	}}
	active := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	repo := &findableStatsRepo{doc: &domain.UserStats{
		UserID:          "user_1",
		TotalAccuracy:   250,
		AccuracyCount:   3,
		Streak:          4,
		TopicsLearned:   []string{"algebra"},
		CoursesEnrolled: []string{"course_1", "course_2"},
		LastActiveDate:  active,
	}}
	svc := NewUserStatsService(repo, chats, zerolog.Nop())

	view, err := svc.Get(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.QuestionsAsked != 2 {
		t.Fatalf("question count must come from chat history, got %d", view.QuestionsAsked)
	}
	if view.Streak != 4 || view.CoursesEnrolled != 2 {
		t.Fatalf("unexpected view: %+v", view)
	}
	if want := 250.0 / 3; view.AverageAccuracy != want {
		t.Fatalf("average accuracy %v, want %v", view.AverageAccuracy, want)
	}
	if view.LastActiveDate == nil || !view.LastActiveDate.Equal(active) {
		t.Fatalf("last active date lost: %v", view.LastActiveDate)
	}
}

func TestUserStatsService_UpdateFiltersUnknownFields(t *testing.T) {
	repo := &findableStatsRepo{}
	svc := NewUserStatsService(repo, &stubChatRepo{}, zerolog.Nop())

	err := svc.Update(context.Background(), "user_1", map[string]any{
		"streak":  7,
		"role":    "admin",
		"user_id": "someone_else",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(repo.updates) != 1 {
		t.Fatalf("expected one update, got %d", len(repo.updates))
	}
	applied := repo.updates[0]
	if _, ok := applied["streak"]; !ok {
		t.Fatalf("whitelisted field dropped: %v", applied)
	}
	if _, ok := applied["role"]; ok {
		t.Fatalf("unknown field passed through: %v", applied)
	}
	if _, ok := applied["user_id"]; ok {
		t.Fatalf("identity field must never be settable: %v", applied)
	}
}

func TestUserStatsService_UpdateAllUnknownFields(t *testing.T) {
	repo := &findableStatsRepo{}
	svc := NewUserStatsService(repo, &stubChatRepo{}, zerolog.Nop())

	err := svc.Update(context.Background(), "user_1", map[string]any{"role": "admin"})
	if !errors.Is(err, domain.ErrEmptyUpdate) {
		t.Fatalf("expected ErrEmptyUpdate, got %v", err)
	}
}
