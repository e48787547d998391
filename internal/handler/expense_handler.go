package handler

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/focuslog/internal/db"
	"github.com/focuslog/internal/service"
	"github.com/gin-gonic/gin"
)

type expensePayload struct {
	ID       uint    `json:"id"`
	Date     string  `json:"date"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Type     string  `json:"type"`
}

type expenseInputPayload struct {
	Date     string  `json:"date"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Type     string  `json:"type"`
}

func expenseToPayload(expense db.Expense) expensePayload {
	return expensePayload{
		ID:       expense.ID,
		Date:     expense.Date,
		Name:     expense.Name,
		Amount:   expense.Amount,
		Category: expense.Category,
		Type:     expense.Type,
	}
}

func handleExpenseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExpenseNotFound):
		respondError(c, http.StatusNotFound, "支出不存在")
	case errors.Is(err, service.ErrExpenseNameRequired),
		errors.Is(err, service.ErrExpenseInvalidAmount),
		errors.Is(err, service.ErrInvalidDate):
		respondError(c, http.StatusBadRequest, "请求参数不合法")
	default:
		respondError(c, http.StatusInternalServerError, "操作失败")
	}
}

func (a *API) expenseFilter(c *gin.Context) service.ExpenseFilter {
	category := activeFilter(c, db.CategoryFeatureExpenses)
	if raw, ok := c.GetQuery("category"); ok {
		category = raw
		setActiveFilter(c, db.CategoryFeatureExpenses, raw)
	}
	return service.ExpenseFilter{Category: category, Type: c.Query("type")}
}

// ListExpenses 返回按日分组的支出、分类计数与周期汇总
func (a *API) ListExpenses(c *gin.Context) {
	filter := a.expenseFilter(c)

	groups, err := a.expenses.GroupByDate(filter)
	if err != nil {
		handleExpenseError(c, err)
		return
	}

	names, err := a.categories.List(db.CategoryFeatureExpenses)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取分类失败")
		return
	}

	counts, err := a.expenses.CountsByCategory(names)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "统计支出失败")
		return
	}

	groupItems := make([]gin.H, 0, len(groups))
	for _, group := range groups {
		items := make([]expensePayload, 0, len(group.Expenses))
		for _, expense := range group.Expenses {
			items = append(items, expenseToPayload(expense))
		}
		groupItems = append(groupItems, gin.H{
			"date":     group.Date,
			"expenses": items,
			"total":    group.Total,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"groups":          groupItems,
		"categories":      names,
		"category_counts": counts,
		"active_filter":   filter.Category,
	})
}

// GetExpenseSummary 返回今日/近 7 天/近 30 天的汇总金额
func (a *API) GetExpenseSummary(c *gin.Context) {
	summary := gin.H{}
	for key, days := range map[string]int{"today": 1, "week": 7, "month": 30} {
		total, err := a.expenses.SumByPeriod(days)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "汇总支出失败")
			return
		}
		summary[key] = total
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// CreateExpense 新建支出
func (a *API) CreateExpense(c *gin.Context) {
	var payload expenseInputPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	expense, err := a.expenses.Create(service.ExpenseInput{
		Date:     payload.Date,
		Name:     payload.Name,
		Amount:   payload.Amount,
		Category: payload.Category,
		Type:     payload.Type,
	})
	if err != nil {
		handleExpenseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expenseToPayload(*expense)})
}

// UpdateExpense 更新支出
func (a *API) UpdateExpense(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的支出ID")
		return
	}

	var payload expenseInputPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	expense, err := a.expenses.Update(id, service.ExpenseInput{
		Date:     payload.Date,
		Name:     payload.Name,
		Amount:   payload.Amount,
		Category: payload.Category,
		Type:     payload.Type,
	})
	if err != nil {
		handleExpenseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expenseToPayload(*expense)})
}

// DeleteExpense 删除支出
func (a *API) DeleteExpense(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的支出ID")
		return
	}

	if err := a.expenses.Delete(id); err != nil {
		respondError(c, http.StatusInternalServerError, "删除支出失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ExportExpenses 导出支出表格并以附件返回
func (a *API) ExportExpenses(c *gin.Context) {
	path, err := a.expenses.ExportXLSX(a.exportDir, a.expenseFilter(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "导出支出失败")
		return
	}

	c.FileAttachment(path, filepath.Base(path))
}
