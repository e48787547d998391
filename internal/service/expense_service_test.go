package service

import (
	"path/filepath"
	"testing"

	"github.com/focuslog/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupExpenseTestDB(t *testing.T) (*gorm.DB, func()) {
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

func TestExpenseServiceCreateValidation(t *testing.T) {
	gdb, cleanup := setupExpenseTestDB(t)
	defer cleanup()

	svc := NewExpenseService(gdb)

	if _, err := svc.Create(ExpenseInput{Name: "", Amount: 10}); err == nil {
		t.Fatal("expected error for empty name")
	}
	if _, err := svc.Create(ExpenseInput{Name: "午饭", Amount: 0}); err == nil {
		t.Fatal("expected error for zero amount")
	}

	var count int64
	if err := gdb.Model(&db.Expense{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count expenses: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rejected input to leave no rows, got %d", count)
	}

	expense, err := svc.Create(ExpenseInput{Name: "午饭", Amount: 35.5, Type: "want"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if expense.Date != Today() {
		t.Fatalf("expected date to default to today, got %s", expense.Date)
	}
	if expense.Type != db.ExpenseTypeWant {
		t.Fatalf("expected type Want, got %s", expense.Type)
	}
	if expense.Category != "Uncategorized" {
		t.Fatalf("expected default category, got %s", expense.Category)
	}
}

func TestExpenseServiceSumByPeriodBoundaries(t *testing.T) {
	gdb, cleanup := setupExpenseTestDB(t)
	defer cleanup()

	svc := NewExpenseService(gdb)

	today := Today()
	daysAgo := func(n int) string {
		date, err := AddDays(today, -n)
		if err != nil {
			t.Fatalf("failed to offset date: %v", err)
		}
		return date
	}

	if _, err := svc.Create(ExpenseInput{Name: "今天", Amount: 100, Date: today}); err != nil {
		t.Fatalf("failed to create expense: %v", err)
	}
	if _, err := svc.Create(ExpenseInput{Name: "月内", Amount: 50, Date: daysAgo(29)}); err != nil {
		t.Fatalf("failed to create expense: %v", err)
	}

	sum, err := svc.SumByPeriod(30)
	if err != nil {
		t.Fatalf("SumByPeriod returned error: %v", err)
	}
	if sum != 150 {
		t.Fatalf("expected 150, got %v", sum)
	}

	sum, err = svc.SumByPeriod(7)
	if err != nil {
		t.Fatalf("SumByPeriod returned error: %v", err)
	}
	if sum != 100 {
		t.Fatalf("expected 100, got %v", sum)
	}

	// 恰好 N 天前的记录被 N 排除、被 N+1 纳入
	if _, err := svc.Create(ExpenseInput{Name: "边界", Amount: 7, Date: daysAgo(7)}); err != nil {
		t.Fatalf("failed to create expense: %v", err)
	}
	sum, err = svc.SumByPeriod(7)
	if err != nil {
		t.Fatalf("SumByPeriod returned error: %v", err)
	}
	if sum != 100 {
		t.Fatalf("expected boundary record excluded, got %v", sum)
	}
	sum, err = svc.SumByPeriod(8)
	if err != nil {
		t.Fatalf("SumByPeriod returned error: %v", err)
	}
	if sum != 107 {
		t.Fatalf("expected boundary record included, got %v", sum)
	}
}

func TestExpenseServiceGroupByDate(t *testing.T) {
	gdb, cleanup := setupExpenseTestDB(t)
	defer cleanup()

	svc := NewExpenseService(gdb)

	if _, err := svc.Create(ExpenseInput{Name: "早饭", Amount: 12, Date: "2025-05-01"}); err != nil {
		t.Fatalf("failed to create expense: %v", err)
	}
	if _, err := svc.Create(ExpenseInput{Name: "晚饭", Amount: 48, Date: "2025-05-01"}); err != nil {
		t.Fatalf("failed to create expense: %v", err)
	}
	if _, err := svc.Create(ExpenseInput{Name: "地铁", Amount: 6, Date: "2025-05-02"}); err != nil {
		t.Fatalf("failed to create expense: %v", err)
	}

	groups, err := svc.GroupByDate(ExpenseFilter{})
	if err != nil {
		t.Fatalf("GroupByDate returned error: %v", err)
	}

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Date != "2025-05-02" {
		t.Fatalf("expected newest date first, got %s", groups[0].Date)
	}
	if groups[1].Total != 60 {
		t.Fatalf("expected day total 60, got %v", groups[1].Total)
	}
}

func TestExpenseServiceExportXLSX(t *testing.T) {
	gdb, cleanup := setupExpenseTestDB(t)
	defer cleanup()

	svc := NewExpenseService(gdb)
	if _, err := svc.Create(ExpenseInput{Name: "打车", Amount: 23, Date: "2025-05-03"}); err != nil {
		t.Fatalf("failed to create expense: %v", err)
	}

	dir := t.TempDir()
	path, err := svc.ExportXLSX(dir, ExpenseFilter{})
	if err != nil {
		t.Fatalf("ExportXLSX returned error: %v", err)
	}

	if filepath.Dir(path) != dir {
		t.Fatalf("expected file under %s, got %s", dir, path)
	}
	if filepath.Ext(path) != ".xlsx" {
		t.Fatalf("expected xlsx file, got %s", path)
	}
}
