package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/focuslog/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrPlannerSlotNotFound 在槽位序号越界时返回
	ErrPlannerSlotNotFound = errors.New("planner slot not found")
)

// PlannerService 负责每日计划表的固定小时槽位
// 槽位由启动播种产生，运行期只改内容不增删
// currentPosition 由分钟级定时任务刷新，供“当前时段”视图使用
type PlannerService struct {
	db *gorm.DB

	mu              sync.Mutex
	currentPosition int
}

// NewPlannerService 构造 PlannerService 并按当前时间定位一次
func NewPlannerService(gdb *gorm.DB) *PlannerService {
	s := &PlannerService{db: gdb}
	s.RefreshCurrent(time.Now().In(time.Local))
	return s
}

// Slots 返回全部槽位，按固定顺序
func (s *PlannerService) Slots() ([]db.PlannerSlot, error) {
	var slots []db.PlannerSlot
	if err := s.db.Order("position ASC").Find(&slots).Error; err != nil {
		return nil, fmt.Errorf("list planner slots: %w", err)
	}
	return slots, nil
}

// UpdateTask 修改指定槽位的任务文本
func (s *PlannerService) UpdateTask(position int, task string) (*db.PlannerSlot, error) {
	slot, err := s.slotAt(position)
	if err != nil {
		return nil, err
	}

	slot.Task = strings.TrimSpace(task)
	if err := s.db.Save(slot).Error; err != nil {
		return nil, fmt.Errorf("update planner slot: %w", err)
	}
	return slot, nil
}

// ToggleDone 翻转指定槽位的完成状态
func (s *PlannerService) ToggleDone(position int) (*db.PlannerSlot, error) {
	slot, err := s.slotAt(position)
	if err != nil {
		return nil, err
	}

	slot.Completed = !slot.Completed
	if err := s.db.Save(slot).Error; err != nil {
		return nil, fmt.Errorf("toggle planner slot: %w", err)
	}
	return slot, nil
}

// ClearAll 一次性把全部槽位重置为空文本、未完成
func (s *PlannerService) ClearAll() error {
	if err := s.db.Model(&db.PlannerSlot{}).
		Where("1 = 1").
		Updates(map[string]interface{}{"task": "", "completed": false}).Error; err != nil {
		return fmt.Errorf("clear planner slots: %w", err)
	}
	return nil
}

// CompletedCount 返回已完成槽位数与总槽位数
func (s *PlannerService) CompletedCount() (int64, int64, error) {
	var completed, total int64
	if err := s.db.Model(&db.PlannerSlot{}).Count(&total).Error; err != nil {
		return 0, 0, fmt.Errorf("count planner slots: %w", err)
	}
	if err := s.db.Model(&db.PlannerSlot{}).Where("completed = ?", true).Count(&completed).Error; err != nil {
		return 0, 0, fmt.Errorf("count completed slots: %w", err)
	}
	return completed, total, nil
}

// RefreshCurrent 根据时钟重新定位当前槽位，由分钟级定时任务调用
func (s *PlannerService) RefreshCurrent(now time.Time) {
	position := 0
	hour := now.Hour()
	for i, label := range db.PlannerHours {
		if parseHourLabel(label) <= hour {
			position = i
		}
	}

	s.mu.Lock()
	s.currentPosition = position
	s.mu.Unlock()
}

// CurrentWindow 返回从当前槽位起最多 n 个槽位
func (s *PlannerService) CurrentWindow(n int) ([]db.PlannerSlot, error) {
	if n <= 0 {
		n = 1
	}

	s.mu.Lock()
	position := s.currentPosition
	s.mu.Unlock()

	var slots []db.PlannerSlot
	if err := s.db.Where("position >= ?", position).
		Order("position ASC").
		Limit(n).
		Find(&slots).Error; err != nil {
		return nil, fmt.Errorf("load current slots: %w", err)
	}
	return slots, nil
}

func (s *PlannerService) slotAt(position int) (*db.PlannerSlot, error) {
	var slot db.PlannerSlot
	if err := s.db.Where("position = ?", position).First(&slot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlannerSlotNotFound
		}
		return nil, fmt.Errorf("load planner slot: %w", err)
	}
	return &slot, nil
}

// parseHourLabel 把 "05:00 AM" 这类标签换算成 24 小时制小时数
// 末尾的 "12:00" 表示午夜收尾槽位，按一天的终点处理
func parseHourLabel(label string) int {
	trimmed := strings.TrimSpace(label)
	if trimmed == "12:00" {
		return 24
	}

	parts := strings.SplitN(trimmed, ":", 2)
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}

	switch {
	case strings.HasSuffix(trimmed, "AM"):
		if hour == 12 {
			hour = 0
		}
	case strings.HasSuffix(trimmed, "PM"):
		if hour != 12 {
			hour += 12
		}
	}
	return hour
}
