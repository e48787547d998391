package service

import (
	"testing"
	"time"
)

func TestWeekStartOfISOMonday(t *testing.T) {
	cases := []struct {
		day  string
		want string
	}{
		{"2025-01-06", "2025-01-06"}, // 周一是自身
		{"2025-01-08", "2025-01-06"}, // 周三
		{"2025-01-11", "2025-01-06"}, // 周六
		{"2025-01-12", "2025-01-06"}, // 周日回退 6 天而非前进 1 天
		{"2025-01-13", "2025-01-13"}, // 下一个周一
	}

	for _, tc := range cases {
		day, err := time.ParseInLocation(DateFormat, tc.day, time.Local)
		if err != nil {
			t.Fatalf("failed to parse %s: %v", tc.day, err)
		}
		got := WeekStartOf(day).Format(DateFormat)
		if got != tc.want {
			t.Fatalf("WeekStartOf(%s) = %s, want %s", tc.day, got, tc.want)
		}
	}
}

func TestAddDaysRollsOverBoundaries(t *testing.T) {
	got, err := AddDays("2024-12-30", 7)
	if err != nil {
		t.Fatalf("AddDays returned error: %v", err)
	}
	if got != "2025-01-06" {
		t.Fatalf("expected 2025-01-06, got %s", got)
	}

	got, err = AddDays("2025-01-06", -7)
	if err != nil {
		t.Fatalf("AddDays returned error: %v", err)
	}
	if got != "2024-12-30" {
		t.Fatalf("expected 2024-12-30, got %s", got)
	}
}

func TestMonthNavigationRollover(t *testing.T) {
	if year, month := NextMonth(2024, 12); year != 2025 || month != 1 {
		t.Fatalf("NextMonth(2024,12) = %d,%d", year, month)
	}
	if year, month := PrevMonth(2025, 1); year != 2024 || month != 12 {
		t.Fatalf("PrevMonth(2025,1) = %d,%d", year, month)
	}
	if year, month := NextMonth(2025, 6); year != 2025 || month != 7 {
		t.Fatalf("NextMonth(2025,6) = %d,%d", year, month)
	}
}

func TestDaysInMonth(t *testing.T) {
	if days := DaysInMonth(2025, 2); days != 28 {
		t.Fatalf("expected 28, got %d", days)
	}
	if days := DaysInMonth(2024, 2); days != 29 {
		t.Fatalf("expected 29, got %d", days)
	}
	if days := DaysInMonth(2025, 12); days != 31 {
		t.Fatalf("expected 31, got %d", days)
	}
}
