package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/focuslog/internal/db"
	"github.com/focuslog/internal/service"
	"github.com/gin-gonic/gin"
)

type habitPayload struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	DescriptionHTML string `json:"description_html,omitempty"`
	CreatedAt       string `json:"created_at"`
}

type habitInputPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type dayCompletionPayload struct {
	Date string `json:"date"`
	Done bool   `json:"done"`
}

func habitToPayload(habit db.Habit) habitPayload {
	return habitPayload{
		ID:              habit.ID,
		Name:            habit.Name,
		Description:     habit.Description,
		DescriptionHTML: renderMarkdown(habit.Description),
		CreatedAt:       habit.CreatedAt.Format(time.RFC3339),
	}
}

func daysToPayload(days []service.DayCompletion) []dayCompletionPayload {
	items := make([]dayCompletionPayload, 0, len(days))
	for _, day := range days {
		items = append(items, dayCompletionPayload{Date: day.Date, Done: day.Done})
	}
	return items
}

func handleHabitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrHabitNotFound):
		respondError(c, http.StatusNotFound, "习惯不存在")
	case errors.Is(err, service.ErrHabitNameRequired), errors.Is(err, service.ErrInvalidDate):
		respondError(c, http.StatusBadRequest, "请求参数不合法")
	default:
		respondError(c, http.StatusInternalServerError, "操作失败")
	}
}

// ListHabits 返回全部习惯与当前 ISO 周的起点
func (a *API) ListHabits(c *gin.Context) {
	habits, err := a.habits.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取习惯列表失败")
		return
	}

	items := make([]habitPayload, 0, len(habits))
	for _, habit := range habits {
		items = append(items, habitToPayload(habit))
	}

	c.JSON(http.StatusOK, gin.H{
		"habits":     items,
		"today":      service.Today(),
		"week_start": service.WeekStartOf(time.Now().In(time.Local)).Format(service.DateFormat),
	})
}

// CreateHabit 创建习惯
func (a *API) CreateHabit(c *gin.Context) {
	var payload habitInputPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	habit, err := a.habits.Create(service.HabitInput{
		Name:        payload.Name,
		Description: payload.Description,
	})
	if err != nil {
		handleHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"habit": habitToPayload(*habit)})
}

// UpdateHabit 更新习惯名称与描述
func (a *API) UpdateHabit(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的习惯ID")
		return
	}

	var payload habitInputPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	habit, err := a.habits.Update(id, service.HabitInput{
		Name:        payload.Name,
		Description: payload.Description,
	})
	if err != nil {
		handleHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"habit": habitToPayload(*habit)})
}

// DeleteHabit 删除习惯并级联删除打卡记录
func (a *API) DeleteHabit(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的习惯ID")
		return
	}

	if err := a.habits.Delete(id); err != nil {
		respondError(c, http.StatusInternalServerError, "删除习惯失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ToggleHabitCompletion 翻转某天的打卡状态，日期缺省为今天
func (a *API) ToggleHabitCompletion(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的习惯ID")
		return
	}

	var payload struct {
		Date string `json:"date"`
	}
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}
	if payload.Date == "" {
		payload.Date = service.Today()
	}

	done, err := a.habits.ToggleCompletion(id, payload.Date)
	if err != nil {
		handleHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"habit_id": id, "date": payload.Date, "done": done})
}

// GetHabitWeek 返回一周打卡视图，start 缺省为当前 ISO 周一
func (a *API) GetHabitWeek(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的习惯ID")
		return
	}

	habit, err := a.habits.Get(id)
	if err != nil {
		handleHabitError(c, err)
		return
	}

	start := c.Query("start")
	if start == "" {
		start = service.WeekStartOf(time.Now().In(time.Local)).Format(service.DateFormat)
	}

	days, err := a.habits.WeeklyProgress(id, start)
	if err != nil {
		handleHabitError(c, err)
		return
	}

	percentage, err := a.habits.ProgressPercentage(id, start)
	if err != nil {
		handleHabitError(c, err)
		return
	}

	prevStart, err := service.AddDays(start, -7)
	if err != nil {
		handleHabitError(c, service.ErrInvalidDate)
		return
	}
	nextStart, _ := service.AddDays(start, 7)

	c.JSON(http.StatusOK, gin.H{
		"habit": habitToPayload(*habit),
		"week": gin.H{
			"start":      start,
			"days":       daysToPayload(days),
			"percentage": percentage,
		},
		"prev_start": prevStart,
		"next_start": nextStart,
	})
}

// GetHabitMonth 返回整月打卡视图，年月缺省为当前月份
func (a *API) GetHabitMonth(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的习惯ID")
		return
	}

	habit, err := a.habits.Get(id)
	if err != nil {
		handleHabitError(c, err)
		return
	}

	now := time.Now().In(time.Local)
	year := parseIntQuery(c, "year", now.Year())
	month := parseIntQuery(c, "month", int(now.Month()))

	days, err := a.habits.MonthlyProgress(id, year, month)
	if err != nil {
		handleHabitError(c, err)
		return
	}

	prevYear, prevMonth := service.PrevMonth(year, month)
	nextYear, nextMonth := service.NextMonth(year, month)

	c.JSON(http.StatusOK, gin.H{
		"habit": habitToPayload(*habit),
		"month": gin.H{
			"year":  year,
			"month": month,
			"label": time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local).Format("January 2006"),
			"days":  daysToPayload(days),
		},
		"prev": gin.H{"year": prevYear, "month": prevMonth},
		"next": gin.H{"year": nextYear, "month": nextMonth},
	})
}
