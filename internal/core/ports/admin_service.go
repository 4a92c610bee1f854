package ports

import (
	"context"
	"time"
)

// TopUser is one row of the most-active-users leaderboard.
type TopUser struct {
	ID    string `json:"id"`
	Count int64  `json:"count"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// AdminStats is the admin dashboard snapshot.
type AdminStats struct {
	TotalUsers          int64     `json:"total_users"`
	TotalCourses        int64     `json:"total_courses"`
	TotalChats          int64     `json:"total_chats"`
	ChatsToday          int64     `json:"chats_today"`
	ChatsThisWeek       int64     `json:"chats_this_week"`
	ChatsThisMonth      int64     `json:"chats_this_month"`
	NewUsersToday       int64     `json:"new_users_today"`
	NewUsersThisWeek    int64     `json:"new_users_this_week"`
	AverageChatsPerUser float64   `json:"average_chats_per_user"`
	TopUsers            []TopUser `json:"top_users"`
}

// AdminStatsRepository answers the counting queries behind the dashboard.
// A zero since time means "all time".
type AdminStatsRepository interface {
	CountUsers(ctx context.Context, since time.Time) (int64, error)
	CountCourses(ctx context.Context) (int64, error)
	CountChats(ctx context.Context, since time.Time) (int64, error)
	TopUsers(ctx context.Context, limit int) ([]TopUser, error)
}

type AdminService interface {
	DashboardStats(ctx context.Context) (*AdminStats, error)
}
