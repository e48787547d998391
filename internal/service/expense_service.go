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
	// ErrExpenseNotFound 在指定支出不存在时返回
	ErrExpenseNotFound = errors.New("expense not found")
	// ErrExpenseNameRequired 在支出名称为空时返回
	ErrExpenseNameRequired = errors.New("expense name is required")
	// ErrExpenseInvalidAmount 在金额非正时返回
	ErrExpenseInvalidAmount = errors.New("expense amount must be positive")
)

// ExpenseService 负责支出记录的增删改查、按日分组与周期汇总
type ExpenseService struct {
	db *gorm.DB
}

// ExpenseInput 定义创建/更新支出时可配置字段
type ExpenseInput struct {
	Date     string
	Name     string
	Amount   float64
	Category string
	Type     string
}

// ExpenseFilter 描述列表过滤条件
// Category 为 All 或空表示不过滤；Type 为空表示不过滤
type ExpenseFilter struct {
	Category string
	Type     string
}

// ExpenseDayGroup 表示同一天的支出集合，附带当日合计
type ExpenseDayGroup struct {
	Date     string
	Expenses []db.Expense
	Total    float64
}

// NewExpenseService 构造 ExpenseService
func NewExpenseService(gdb *gorm.DB) *ExpenseService {
	return &ExpenseService{db: gdb}
}

// List 返回支出集合，新建的排前面
func (s *ExpenseService) List(filter ExpenseFilter) ([]db.Expense, error) {
	query := s.db.Model(&db.Expense{})

	if filter.Category != "" && filter.Category != "All" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	var expenses []db.Expense
	if err := query.Order("created_at DESC, id DESC").Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// Get 根据 ID 获取支出
func (s *ExpenseService) Get(id uint) (*db.Expense, error) {
	var expense db.Expense
	if err := s.db.First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return &expense, nil
}

// Create 新建支出，校验失败时不产生任何写入
func (s *ExpenseService) Create(input ExpenseInput) (*db.Expense, error) {
	expense, err := buildExpense(input)
	if err != nil {
		return nil, err
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return expense, nil
}

// Update 更新支出
func (s *ExpenseService) Update(id uint, input ExpenseInput) (*db.Expense, error) {
	sanitized, err := buildExpense(input)
	if err != nil {
		return nil, err
	}

	expense, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	expense.Date = sanitized.Date
	expense.Name = sanitized.Name
	expense.Amount = sanitized.Amount
	expense.Category = sanitized.Category
	expense.Type = sanitized.Type

	if err := s.db.Save(expense).Error; err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	return expense, nil
}

// Delete 删除支出
func (s *ExpenseService) Delete(id uint) error {
	if err := s.db.Delete(&db.Expense{}, id).Error; err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

// GroupByDate 把过滤后的支出按日历日分组，日期新的在前
func (s *ExpenseService) GroupByDate(filter ExpenseFilter) ([]ExpenseDayGroup, error) {
	expenses, err := s.List(filter)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string][]db.Expense)
	for _, expense := range expenses {
		byDate[expense.Date] = append(byDate[expense.Date], expense)
	}

	groups := make([]ExpenseDayGroup, 0, len(byDate))
	for date, items := range byDate {
		total := 0.0
		for _, item := range items {
			total += item.Amount
		}
		groups = append(groups, ExpenseDayGroup{Date: date, Expenses: items, Total: total})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Date > groups[j].Date
	})
	return groups, nil
}

// SumByPeriod 汇总最近 days 天的支出金额
// 时间先归零到本地日历日，边界为 0 <= 今天-记录日 < days
// 恰好 days 天前的记录不计入，今天的记录计入
func (s *ExpenseService) SumByPeriod(days int) (float64, error) {
	var expenses []db.Expense
	if err := s.db.Find(&expenses).Error; err != nil {
		return 0, fmt.Errorf("load expenses: %w", err)
	}

	now := normalizeToDate(time.Now().In(time.Local))

	total := 0.0
	for _, expense := range expenses {
		recorded, err := time.ParseInLocation(DateFormat, expense.Date, time.Local)
		if err != nil {
			continue
		}
		diff := int(now.Sub(normalizeToDate(recorded)).Hours() / 24)
		if diff >= 0 && diff < days {
			total += expense.Amount
		}
	}
	return total, nil
}

// CountsByCategory 返回各分类的支出数，All 表示全部
func (s *ExpenseService) CountsByCategory(categories []string) (map[string]int, error) {
	var expenses []db.Expense
	if err := s.db.Select("category").Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("count expenses: %w", err)
	}

	counts := make(map[string]int, len(categories))
	for _, name := range categories {
		if name == "All" {
			counts[name] = len(expenses)
			continue
		}
		for _, expense := range expenses {
			if expense.Category == name {
				counts[name]++
			}
		}
	}
	return counts, nil
}

func buildExpense(input ExpenseInput) (*db.Expense, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrExpenseNameRequired
	}
	if input.Amount <= 0 {
		return nil, ErrExpenseInvalidAmount
	}

	date := strings.TrimSpace(input.Date)
	if date == "" {
		date = Today()
	}
	if _, err := time.ParseInLocation(DateFormat, date, time.Local); err != nil {
		return nil, ErrInvalidDate
	}

	return &db.Expense{
		Date:     date,
		Name:     name,
		Amount:   input.Amount,
		Category: normalizeCategory(input.Category),
		Type:     normalizeExpenseType(input.Type),
	}, nil
}

func normalizeExpenseType(expenseType string) string {
	if strings.EqualFold(strings.TrimSpace(expenseType), db.ExpenseTypeWant) {
		return db.ExpenseTypeWant
	}
	return db.ExpenseTypeNeed
}
