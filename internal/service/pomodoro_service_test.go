package service

import (
	"testing"

	"github.com/focuslog/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupPomodoroTestDB(t *testing.T) (*gorm.DB, func()) {
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

func TestPomodoroSetTimerValidation(t *testing.T) {
	gdb, cleanup := setupPomodoroTestDB(t)
	defer cleanup()

	svc := NewPomodoroService(gdb, 25)

	if _, err := svc.SetTimer(0); err == nil {
		t.Fatal("expected error for zero minutes")
	}
	if _, err := svc.SetTimer(481); err == nil {
		t.Fatal("expected error for oversized duration")
	}

	state, err := svc.SetTimer(5)
	if err != nil {
		t.Fatalf("SetTimer returned error: %v", err)
	}
	if state.RemainingSeconds != 300 || state.InitialSeconds != 300 {
		t.Fatalf("unexpected state: %+v", state)
	}
}

func TestPomodoroTickCompletesOnce(t *testing.T) {
	gdb, cleanup := setupPomodoroTestDB(t)
	defer cleanup()

	svc := NewPomodoroService(gdb, 25)

	if _, err := svc.SetTimer(1); err != nil {
		t.Fatalf("SetTimer returned error: %v", err)
	}
	if _, err := svc.Start("写测试"); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	for i := 0; i < 60; i++ {
		if err := svc.Tick(); err != nil {
			t.Fatalf("Tick returned error: %v", err)
		}
	}

	state := svc.Snapshot()
	if state.RemainingSeconds != 0 || !state.Completed || state.Running {
		t.Fatalf("unexpected state after countdown: %+v", state)
	}

	// 完成后的额外 tick 不得重复记录
	if err := svc.Tick(); err != nil {
		t.Fatalf("Tick returned error: %v", err)
	}

	var sessions []db.PomodoroSession
	if err := gdb.Find(&sessions).Error; err != nil {
		t.Fatalf("failed to load sessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected exactly 1 session, got %d", len(sessions))
	}
	if sessions[0].TaskName != "写测试" || sessions[0].DurationSeconds != 60 || !sessions[0].Completed {
		t.Fatalf("unexpected session: %+v", sessions[0])
	}
}

func TestPomodoroNoSessionWithoutTaskName(t *testing.T) {
	gdb, cleanup := setupPomodoroTestDB(t)
	defer cleanup()

	svc := NewPomodoroService(gdb, 25)
	if _, err := svc.SetTimer(1); err != nil {
		t.Fatalf("SetTimer returned error: %v", err)
	}
	if _, err := svc.Start("   "); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	for i := 0; i < 60; i++ {
		if err := svc.Tick(); err != nil {
			t.Fatalf("Tick returned error: %v", err)
		}
	}

	var count int64
	if err := gdb.Model(&db.PomodoroSession{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count sessions: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no sessions without task name, got %d", count)
	}
}

func TestPomodoroPauseFreezesAndStopResets(t *testing.T) {
	gdb, cleanup := setupPomodoroTestDB(t)
	defer cleanup()

	svc := NewPomodoroService(gdb, 25)
	if _, err := svc.SetTimer(2); err != nil {
		t.Fatalf("SetTimer returned error: %v", err)
	}
	if _, err := svc.Start("专注"); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	if err := svc.Tick(); err != nil {
		t.Fatalf("Tick returned error: %v", err)
	}
	svc.Pause()
	if err := svc.Tick(); err != nil {
		t.Fatalf("Tick returned error: %v", err)
	}

	state := svc.Snapshot()
	if state.RemainingSeconds != 119 {
		t.Fatalf("expected pause to freeze countdown, got %d", state.RemainingSeconds)
	}

	svc.Resume()
	if err := svc.Tick(); err != nil {
		t.Fatalf("Tick returned error: %v", err)
	}
	if svc.Snapshot().RemainingSeconds != 118 {
		t.Fatalf("expected resume to continue countdown")
	}

	state = svc.Stop()
	if state.RemainingSeconds != 25*60 || state.Running || state.Paused || state.Completed {
		t.Fatalf("unexpected state after stop: %+v", state)
	}

	// 手动停止不写会话记录
	var count int64
	if err := gdb.Model(&db.PomodoroSession{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count sessions: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no sessions after manual stop, got %d", count)
	}
}
