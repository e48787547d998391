package service

import (
	"testing"

	"github.com/focuslog/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupHabitTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func TestHabitServiceCreateAndList(t *testing.T) {
	gdb, cleanup := setupHabitTestDB(t)
	defer cleanup()

	svc := NewHabitService(gdb)

	habit, err := svc.Create(HabitInput{Name: "晨跑", Description: "每天 5 公里"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if habit.ID == 0 {
		t.Fatal("expected habit to have ID")
	}

	habits, err := svc.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(habits) != 1 {
		t.Fatalf("expected 1 habit, got %d", len(habits))
	}

	// 空名称直接拒绝，不产生写入
	if _, err := svc.Create(HabitInput{Name: "   "}); err == nil {
		t.Fatal("expected error for empty habit name")
	}
}

func TestHabitServiceWeeklyProgressDefaultsFalse(t *testing.T) {
	gdb, cleanup := setupHabitTestDB(t)
	defer cleanup()

	svc := NewHabitService(gdb)
	habit, err := svc.Create(HabitInput{Name: "Exercise"})
	if err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}

	week, err := svc.WeeklyProgress(habit.ID, "2025-01-06")
	if err != nil {
		t.Fatalf("WeeklyProgress returned error: %v", err)
	}

	if len(week) != 7 {
		t.Fatalf("expected 7 days, got %d", len(week))
	}
	if week[0].Date != "2025-01-06" || week[6].Date != "2025-01-12" {
		t.Fatalf("unexpected week range: %s .. %s", week[0].Date, week[6].Date)
	}
	for _, day := range week {
		if day.Done {
			t.Fatalf("expected %s to default to false", day.Date)
		}
	}
}

func TestHabitServiceToggleAndPercentage(t *testing.T) {
	gdb, cleanup := setupHabitTestDB(t)
	defer cleanup()

	svc := NewHabitService(gdb)
	habit, err := svc.Create(HabitInput{Name: "Exercise"})
	if err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}

	done, err := svc.ToggleCompletion(habit.ID, "2025-01-08")
	if err != nil {
		t.Fatalf("ToggleCompletion returned error: %v", err)
	}
	if !done {
		t.Fatal("expected first toggle to mark done")
	}

	week, err := svc.WeeklyProgress(habit.ID, "2025-01-06")
	if err != nil {
		t.Fatalf("WeeklyProgress returned error: %v", err)
	}
	for _, day := range week {
		want := day.Date == "2025-01-08"
		if day.Done != want {
			t.Fatalf("unexpected state for %s: got %v", day.Date, day.Done)
		}
	}

	percentage, err := svc.ProgressPercentage(habit.ID, "2025-01-06")
	if err != nil {
		t.Fatalf("ProgressPercentage returned error: %v", err)
	}
	if percentage != 14 {
		t.Fatalf("expected 14, got %d", percentage)
	}

	// 双次翻转回到原值
	if _, err := svc.ToggleCompletion(habit.ID, "2025-01-08"); err != nil {
		t.Fatalf("second toggle returned error: %v", err)
	}
	percentage, err = svc.ProgressPercentage(habit.ID, "2025-01-06")
	if err != nil {
		t.Fatalf("ProgressPercentage returned error: %v", err)
	}
	if percentage != 0 {
		t.Fatalf("expected 0 after double toggle, got %d", percentage)
	}
}

func TestHabitServiceMonthlyProgressCalendarLength(t *testing.T) {
	gdb, cleanup := setupHabitTestDB(t)
	defer cleanup()

	svc := NewHabitService(gdb)
	habit, err := svc.Create(HabitInput{Name: "阅读"})
	if err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}

	cases := []struct {
		year  int
		month int
		days  int
	}{
		{2025, 2, 28},
		{2024, 2, 29},
		{2025, 4, 30},
		{2025, 1, 31},
	}

	for _, tc := range cases {
		month, err := svc.MonthlyProgress(habit.ID, tc.year, tc.month)
		if err != nil {
			t.Fatalf("MonthlyProgress(%d,%d) returned error: %v", tc.year, tc.month, err)
		}
		if len(month) != tc.days {
			t.Fatalf("expected %d days for %d-%d, got %d", tc.days, tc.year, tc.month, len(month))
		}
	}
}

func TestHabitServiceDeleteCascadesCompletions(t *testing.T) {
	gdb, cleanup := setupHabitTestDB(t)
	defer cleanup()

	svc := NewHabitService(gdb)
	habit, err := svc.Create(HabitInput{Name: "冥想"})
	if err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}

	if _, err := svc.ToggleCompletion(habit.ID, "2025-03-01"); err != nil {
		t.Fatalf("failed to toggle: %v", err)
	}

	if err := svc.Delete(habit.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	var count int64
	if err := gdb.Model(&db.HabitCompletion{}).Where("habit_id = ?", habit.ID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count completions: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected completions to be deleted, got %d", count)
	}

	// 对不存在的习惯打卡应拒绝，保证不会留下孤儿记录
	if _, err := svc.ToggleCompletion(habit.ID, "2025-03-02"); err == nil {
		t.Fatal("expected error toggling deleted habit")
	}
}
