package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/focuslog/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrHabitNotFound 在指定习惯不存在时返回
	ErrHabitNotFound = errors.New("habit not found")
	// ErrHabitNameRequired 在习惯名称为空时返回
	ErrHabitNameRequired = errors.New("habit name is required")
	// ErrInvalidDate 在日期字符串不是 2006-01-02 时返回
	ErrInvalidDate = errors.New("invalid date")
)

// HabitService 负责习惯及其打卡记录的增删改查与进度视图
// 打卡记录缺失等价于未完成；删除习惯时级联删除全部打卡
type HabitService struct {
	db *gorm.DB
}

// HabitInput 定义创建/更新习惯时可配置字段
type HabitInput struct {
	Name        string
	Description string
}

// DayCompletion 表示进度视图中的单日完成状态，按日期升序排列
type DayCompletion struct {
	Date string
	Done bool
}

// NewHabitService 构造 HabitService
func NewHabitService(gdb *gorm.DB) *HabitService {
	return &HabitService{db: gdb}
}

// List 返回全部习惯，按创建时间升序
func (s *HabitService) List() ([]db.Habit, error) {
	var habits []db.Habit
	if err := s.db.Order("created_at ASC, id ASC").Find(&habits).Error; err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	return habits, nil
}

// Get 根据 ID 获取习惯
func (s *HabitService) Get(id uint) (*db.Habit, error) {
	var habit db.Habit
	if err := s.db.First(&habit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, fmt.Errorf("get habit: %w", err)
	}
	return &habit, nil
}

// Create 新建习惯
func (s *HabitService) Create(input HabitInput) (*db.Habit, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrHabitNameRequired
	}

	habit := db.Habit{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
	}

	if err := s.db.Create(&habit).Error; err != nil {
		return nil, fmt.Errorf("create habit: %w", err)
	}
	return &habit, nil
}

// Update 更新习惯名称与描述
func (s *HabitService) Update(id uint, input HabitInput) (*db.Habit, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrHabitNameRequired
	}

	habit, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	habit.Name = name
	habit.Description = strings.TrimSpace(input.Description)

	if err := s.db.Save(habit).Error; err != nil {
		return nil, fmt.Errorf("update habit: %w", err)
	}
	return habit, nil
}

// Delete 删除习惯并级联删除其全部打卡记录
// 两步在同一事务内完成，保证不会留下指向已删习惯的打卡
func (s *HabitService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("habit_id = ?", id).Delete(&db.HabitCompletion{}).Error; err != nil {
			return fmt.Errorf("delete habit completions: %w", err)
		}
		if err := tx.Delete(&db.Habit{}, id).Error; err != nil {
			return fmt.Errorf("delete habit: %w", err)
		}
		return nil
	})
}

// ToggleCompletion 翻转某习惯在某天的完成状态并返回新值
// 没有记录时视为 false，翻转后落库为 true
func (s *HabitService) ToggleCompletion(habitID uint, date string) (bool, error) {
	if _, err := time.ParseInLocation(DateFormat, date, time.Local); err != nil {
		return false, ErrInvalidDate
	}

	if _, err := s.Get(habitID); err != nil {
		return false, err
	}

	var done bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var record db.HabitCompletion
		err := tx.Where("habit_id = ? AND date = ?", habitID, date).First(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			record = db.HabitCompletion{HabitID: habitID, Date: date, Done: true}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("create habit completion: %w", err)
			}
			done = true
			return nil
		}
		if err != nil {
			return fmt.Errorf("load habit completion: %w", err)
		}

		record.Done = !record.Done
		if err := tx.Save(&record).Error; err != nil {
			return fmt.Errorf("save habit completion: %w", err)
		}
		done = record.Done
		return nil
	})
	return done, err
}

// WeeklyProgress 返回从 weekStart 起连续 7 天的完成状态，按日期升序
func (s *HabitService) WeeklyProgress(habitID uint, weekStart string) ([]DayCompletion, error) {
	start, err := time.ParseInLocation(DateFormat, weekStart, time.Local)
	if err != nil {
		return nil, ErrInvalidDate
	}

	dates := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		dates = append(dates, start.AddDate(0, 0, i).Format(DateFormat))
	}

	return s.progressForDates(habitID, dates)
}

// MonthlyProgress 返回某年某月每个日历日的完成状态
// 条目数等于该月实际天数（28–31），2 月按闰年规则
func (s *HabitService) MonthlyProgress(habitID uint, year, month int) ([]DayCompletion, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidDate
	}

	days := DaysInMonth(year, month)
	dates := make([]string, 0, days)
	for day := 1; day <= days; day++ {
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
		dates = append(dates, date.Format(DateFormat))
	}

	return s.progressForDates(habitID, dates)
}

// ProgressPercentage 返回一周完成率，round(100 * 完成天数 / 7)
func (s *HabitService) ProgressPercentage(habitID uint, weekStart string) (int, error) {
	week, err := s.WeeklyProgress(habitID, weekStart)
	if err != nil {
		return 0, err
	}

	completed := 0
	for _, day := range week {
		if day.Done {
			completed++
		}
	}
	return int(math.Round(float64(completed) / 7 * 100)), nil
}

func (s *HabitService) progressForDates(habitID uint, dates []string) ([]DayCompletion, error) {
	var records []db.HabitCompletion
	if err := s.db.Where("habit_id = ? AND date IN ? AND done = ?", habitID, dates, true).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load habit completions: %w", err)
	}

	completed := make(map[string]bool, len(records))
	for _, record := range records {
		completed[record.Date] = true
	}

	progress := make([]DayCompletion, 0, len(dates))
	for _, date := range dates {
		progress = append(progress, DayCompletion{Date: date, Done: completed[date]})
	}
	return progress, nil
}
