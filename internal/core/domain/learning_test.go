package domain

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestSessionTitle(t *testing.T) {
	if got := SessionTitle("short question"); got != "short question" {
		t.Fatalf("short titles pass through, got %q", got)
	}

	long := strings.Repeat("word ", 20)
	title := SessionTitle(long)
	if utf8.RuneCountInString(title) != 50 {
		t.Fatalf("expected 50 runes, got %d", utf8.RuneCountInString(title))
	}

	// Truncation must not split a multi-byte rune.
	accented := strings.Repeat("é", 60)
	title = SessionTitle(accented)
	if !utf8.ValidString(title) {
		t.Fatalf("truncation produced invalid UTF-8")
	}
	if utf8.RuneCountInString(title) != 50 {
		t.Fatalf("expected 50 runes, got %d", utf8.RuneCountInString(title))
	}
}

func TestRecordActivity_MonthBoundary(t *testing.T) {
	stats := &LearningStats{}
	stats.RecordActivity(time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC))
	stats.RecordActivity(time.Date(2024, 3, 1, 1, 0, 0, 0, time.UTC))
	if stats.StreakDays != 2 {
		t.Fatalf("month boundary must count as consecutive, got %d", stats.StreakDays)
	}
}

func TestRecordAnswer_UpsertsSameDay(t *testing.T) {
	stats := &LearningStats{}
	day := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	stats.RecordAnswer(true, day)
	stats.RecordAnswer(false, day.Add(3*time.Hour))

	if len(stats.DailyProgress) != 1 {
		t.Fatalf("same-day answers must share one bucket, got %d", len(stats.DailyProgress))
	}
	if stats.DailyProgress[0].AccuracyPercent != 50 {
		t.Fatalf("bucket must reflect the running accuracy, got %d", stats.DailyProgress[0].AccuracyPercent)
	}
}

func TestAvgAccuracy_Rounding(t *testing.T) {
	stats := &LearningStats{TotalCorrect: 1, TotalAttempts: 3}
	if got := stats.AvgAccuracy(); got != 33 {
		t.Fatalf("1/3 rounds to 33, got %d", got)
	}
	stats = &LearningStats{TotalCorrect: 2, TotalAttempts: 3}
	if got := stats.AvgAccuracy(); got != 67 {
		t.Fatalf("2/3 rounds to 67, got %d", got)
	}
	stats = &LearningStats{}
	if got := stats.AvgAccuracy(); got != 0 {
		t.Fatalf("no attempts must read 0, got %d", got)
	}
}
