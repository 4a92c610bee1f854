package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/aistudybuddy/study-buddy-api/internal/core/ports"
)

const topUsersLimit = 10

type adminService struct {
	repo ports.AdminStatsRepository
	log  zerolog.Logger
}

func NewAdminService(repo ports.AdminStatsRepository, log zerolog.Logger) ports.AdminService {
	return &adminService{repo: repo, log: log}
}

// DashboardStats assembles the admin dashboard counters. Time windows are
// UTC calendar boundaries: today's midnight, Monday of the current week, and
// the first of the current month.
func (s *adminService) DashboardStats(ctx context.Context) (*ports.AdminStats, error) {
	now := time.Now().UTC()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekStart := todayStart.AddDate(0, 0, -mondayOffset(todayStart.Weekday()))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	totalUsers, err := s.repo.CountUsers(ctx, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	totalCourses, err := s.repo.CountCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("count courses: %w", err)
	}
	totalChats, err := s.repo.CountChats(ctx, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("count chats: %w", err)
	}

	chatsToday, err := s.repo.CountChats(ctx, todayStart)
	if err != nil {
		return nil, fmt.Errorf("count chats today: %w", err)
	}
	chatsThisWeek, err := s.repo.CountChats(ctx, weekStart)
	if err != nil {
		return nil, fmt.Errorf("count chats this week: %w", err)
	}
	chatsThisMonth, err := s.repo.CountChats(ctx, monthStart)
	if err != nil {
		return nil, fmt.Errorf("count chats this month: %w", err)
	}

	newUsersToday, err := s.repo.CountUsers(ctx, todayStart)
	if err != nil {
		return nil, fmt.Errorf("count new users today: %w", err)
	}
	newUsersThisWeek, err := s.repo.CountUsers(ctx, weekStart)
	if err != nil {
		return nil, fmt.Errorf("count new users this week: %w", err)
	}

	topUsers, err := s.repo.TopUsers(ctx, topUsersLimit)
	if err != nil {
		s.log.Warn().Err(err).Msg("top users aggregation failed")
		topUsers = nil
	}

	var avg float64
	if totalUsers > 0 {
		avg = math.Round(float64(totalChats)/float64(totalUsers)*100) / 100
	}

	return &ports.AdminStats{
		TotalUsers:          totalUsers,
		TotalCourses:        totalCourses,
		TotalChats:          totalChats,
		ChatsToday:          chatsToday,
		ChatsThisWeek:       chatsThisWeek,
		ChatsThisMonth:      chatsThisMonth,
		NewUsersToday:       newUsersToday,
		NewUsersThisWeek:    newUsersThisWeek,
		AverageChatsPerUser: avg,
		TopUsers:            topUsers,
	}, nil
}

// mondayOffset returns how many days back the week's Monday lies.
func mondayOffset(d time.Weekday) int {
	if d == time.Sunday {
		return 6
	}
	return int(d) - 1
}
