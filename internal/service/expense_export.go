package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// expenseExportHeader 与 Expense 记录字段一一对应，一行一条支出
var expenseExportHeader = []string{"ID", "Date", "Name", "Amount", "Category", "Type"}

// ExportXLSX 把过滤后的支出导出为表格文件并返回文件路径
// 文件名带日期与随机后缀，避免重复导出互相覆盖
func (s *ExpenseService) ExportXLSX(dir string, filter ExpenseFilter) (string, error) {
	expenses, err := s.List(filter)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Expenses"
	index, err := file.NewSheet(sheet)
	if err != nil {
		return "", fmt.Errorf("create sheet: %w", err)
	}
	file.SetActiveSheet(index)
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("drop default sheet: %w", err)
	}

	for col, title := range expenseExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return "", fmt.Errorf("resolve header cell: %w", err)
		}
		if err := file.SetCellValue(sheet, cell, title); err != nil {
			return "", fmt.Errorf("write header: %w", err)
		}
	}

	for row, expense := range expenses {
		values := []interface{}{
			expense.ID,
			expense.Date,
			expense.Name,
			expense.Amount,
			expense.Category,
			expense.Type,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return "", fmt.Errorf("resolve cell: %w", err)
			}
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return "", fmt.Errorf("write expense row: %w", err)
			}
		}
	}

	filename := fmt.Sprintf("expenses-%s-%s.xlsx", time.Now().Format("20060102"), uuid.New().String())
	path := filepath.Join(dir, filename)
	if err := file.SaveAs(path); err != nil {
		return "", fmt.Errorf("save export file: %w", err)
	}
	return path, nil
}
