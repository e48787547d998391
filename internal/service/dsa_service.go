package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/focuslog/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrDSARecordNotFound 在指定刷题记录不存在时返回
	ErrDSARecordNotFound = errors.New("dsa record not found")
	// ErrDSATitleRequired 在题目名称为空时返回
	ErrDSATitleRequired = errors.New("dsa record title is required")
)

// DSAService 负责算法刷题日志：按天记录、分组展示与月历统计
type DSAService struct {
	db *gorm.DB
}

// DSAInput 定义创建/更新刷题记录时可配置字段
type DSAInput struct {
	Date     string
	Title    string
	Category string
}

// DSADayGroup 表示同一天的刷题记录集合
type DSADayGroup struct {
	Date    string
	Records []db.DSARecord
}

// DSACalendarDay 表示月历中某天的刷题数
type DSACalendarDay struct {
	Date  string
	Count int
}

// DSACalendar 是月历视图载荷，天数等于该月实际日历长度
type DSACalendar struct {
	Year  int
	Month int
	Label string
	Days  []DSACalendarDay
}

// NewDSAService 构造 DSAService
func NewDSAService(gdb *gorm.DB) *DSAService {
	return &DSAService{db: gdb}
}

// Add 为某天追加一条刷题记录，日期缺省为今天
func (s *DSAService) Add(input DSAInput) (*db.DSARecord, error) {
	record, err := buildDSARecord(input)
	if err != nil {
		return nil, err
	}

	if err := s.db.Create(record).Error; err != nil {
		return nil, fmt.Errorf("create dsa record: %w", err)
	}
	return record, nil
}

// Update 更新刷题记录的题目与分类
func (s *DSAService) Update(id uint, input DSAInput) (*db.DSARecord, error) {
	sanitized, err := buildDSARecord(input)
	if err != nil {
		return nil, err
	}

	var record db.DSARecord
	if err := s.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDSARecordNotFound
		}
		return nil, fmt.Errorf("get dsa record: %w", err)
	}

	record.Date = sanitized.Date
	record.Title = sanitized.Title
	record.Category = sanitized.Category

	if err := s.db.Save(&record).Error; err != nil {
		return nil, fmt.Errorf("update dsa record: %w", err)
	}
	return &record, nil
}

// Delete 删除刷题记录
func (s *DSAService) Delete(id uint) error {
	result := s.db.Delete(&db.DSARecord{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete dsa record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDSARecordNotFound
	}
	return nil
}

// GroupByDate 把全部记录按日历日分组，日期新的在前
func (s *DSAService) GroupByDate() ([]DSADayGroup, error) {
	var records []db.DSARecord
	if err := s.db.Order("created_at ASC, id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list dsa records: %w", err)
	}

	byDate := make(map[string][]db.DSARecord)
	for _, record := range records {
		byDate[record.Date] = append(byDate[record.Date], record)
	}

	groups := make([]DSADayGroup, 0, len(byDate))
	for date, items := range byDate {
		groups = append(groups, DSADayGroup{Date: date, Records: items})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Date > groups[j].Date
	})
	return groups, nil
}

// MonthlyCalendar 返回某年某月每天的刷题数，天数按实际日历长度
func (s *DSAService) MonthlyCalendar(year, month int) (*DSACalendar, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidDate
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	days := DaysInMonth(year, month)
	last := first.AddDate(0, 0, days-1)

	var records []db.DSARecord
	if err := s.db.Where("date BETWEEN ? AND ?", first.Format(DateFormat), last.Format(DateFormat)).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load dsa records: %w", err)
	}

	counts := make(map[string]int, len(records))
	for _, record := range records {
		counts[record.Date]++
	}

	calendar := &DSACalendar{
		Year:  year,
		Month: month,
		Label: first.Format("January 2006"),
		Days:  make([]DSACalendarDay, 0, days),
	}
	for day := 1; day <= days; day++ {
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local).Format(DateFormat)
		calendar.Days = append(calendar.Days, DSACalendarDay{Date: date, Count: counts[date]})
	}
	return calendar, nil
}

// SolvedToday 统计今天的刷题数
func (s *DSAService) SolvedToday() (int64, error) {
	var count int64
	if err := s.db.Model(&db.DSARecord{}).Where("date = ?", Today()).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count dsa records: %w", err)
	}
	return count, nil
}

func buildDSARecord(input DSAInput) (*db.DSARecord, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrDSATitleRequired
	}

	date := strings.TrimSpace(input.Date)
	if date == "" {
		date = Today()
	}
	if _, err := time.ParseInLocation(DateFormat, date, time.Local); err != nil {
		return nil, ErrInvalidDate
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = "Other"
	}

	return &db.DSARecord{Date: date, Title: title, Category: category}, nil
}
