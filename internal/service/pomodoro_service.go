package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/focuslog/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrPomodoroInvalidDuration 在时长不在 1–480 分钟内时返回
	ErrPomodoroInvalidDuration = errors.New("pomodoro duration must be between 1 and 480 minutes")
	// ErrPomodoroNotRunnable 在倒计时无法启动时返回（已走完或剩余为零）
	ErrPomodoroNotRunnable = errors.New("pomodoro timer cannot start")
	// ErrPomodoroSessionNotFound 在指定会话不存在时返回
	ErrPomodoroSessionNotFound = errors.New("pomodoro session not found")
)

// PomodoroState 是倒计时状态的只读快照
type PomodoroState struct {
	RemainingSeconds int
	InitialSeconds   int
	TaskName         string
	Running          bool
	Paused           bool
	Completed        bool
}

// PomodoroService 维护单个倒计时与完成会话日志
// 倒计时状态驻留内存，由秒级定时任务驱动；handler 并发访问，用互斥锁保护
// 只有自然走到零才写入会话记录，记录的是最初配置的时长
type PomodoroService struct {
	db *gorm.DB

	mu             sync.Mutex
	state          PomodoroState
	defaultSeconds int
}

// NewPomodoroService 构造 PomodoroService，defaultMinutes 为停止后回退的预设时长
func NewPomodoroService(gdb *gorm.DB, defaultMinutes int) *PomodoroService {
	if defaultMinutes < 1 || defaultMinutes > 480 {
		defaultMinutes = 25
	}
	seconds := defaultMinutes * 60
	return &PomodoroService{
		db:             gdb,
		defaultSeconds: seconds,
		state: PomodoroState{
			RemainingSeconds: seconds,
			InitialSeconds:   seconds,
		},
	}
}

// SetTimer 配置新的倒计时时长并清空全部标志
func (s *PomodoroService) SetTimer(minutes int) (PomodoroState, error) {
	if minutes < 1 || minutes > 480 {
		return PomodoroState{}, ErrPomodoroInvalidDuration
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seconds := minutes * 60
	s.state.RemainingSeconds = seconds
	s.state.InitialSeconds = seconds
	s.state.Running = false
	s.state.Paused = false
	s.state.Completed = false
	return s.state, nil
}

// Start 启动倒计时并记录任务名，已完成或剩余为零时拒绝
func (s *PomodoroService) Start(taskName string) (PomodoroState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Completed || s.state.RemainingSeconds <= 0 {
		return s.state, ErrPomodoroNotRunnable
	}

	s.state.TaskName = strings.TrimSpace(taskName)
	s.state.Running = true
	s.state.Paused = false
	return s.state, nil
}

// Pause 冻结倒计时，不重置剩余时间
func (s *PomodoroService) Pause() PomodoroState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Running {
		s.state.Paused = true
	}
	return s.state
}

// Resume 从冻结值继续倒数
func (s *PomodoroService) Resume() PomodoroState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Running {
		s.state.Paused = false
	}
	return s.state
}

// Stop 主动停止：回到默认预设时长并清空全部标志，不写会话记录
func (s *PomodoroService) Stop() PomodoroState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.RemainingSeconds = s.defaultSeconds
	s.state.InitialSeconds = s.defaultSeconds
	s.state.TaskName = ""
	s.state.Running = false
	s.state.Paused = false
	s.state.Completed = false
	return s.state
}

// Tick 推进一秒，由秒级定时任务调用
// 走到零时停表并置 Completed；Completed 保证会话只记录一次
func (s *PomodoroService) Tick() error {
	s.mu.Lock()

	if !s.state.Running || s.state.Paused || s.state.Completed || s.state.RemainingSeconds <= 0 {
		s.mu.Unlock()
		return nil
	}

	s.state.RemainingSeconds--
	if s.state.RemainingSeconds > 0 {
		s.mu.Unlock()
		return nil
	}

	s.state.Running = false
	s.state.Paused = false
	s.state.Completed = true
	taskName := s.state.TaskName
	duration := s.state.InitialSeconds
	s.mu.Unlock()

	if taskName == "" {
		return nil
	}

	session := db.PomodoroSession{
		TaskName:        taskName,
		DurationSeconds: duration,
		Completed:       true,
	}
	if err := s.db.Create(&session).Error; err != nil {
		return fmt.Errorf("log pomodoro session: %w", err)
	}
	return nil
}

// Snapshot 返回当前倒计时状态的副本
func (s *PomodoroService) Snapshot() PomodoroState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Sessions 返回已完成会话，新的在前
func (s *PomodoroService) Sessions() ([]db.PomodoroSession, error) {
	var sessions []db.PomodoroSession
	if err := s.db.Order("created_at DESC, id DESC").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list pomodoro sessions: %w", err)
	}
	return sessions, nil
}

// DeleteSession 删除一条会话记录
func (s *PomodoroService) DeleteSession(id uint) error {
	result := s.db.Delete(&db.PomodoroSession{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete pomodoro session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPomodoroSessionNotFound
	}
	return nil
}
