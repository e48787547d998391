package handler

import (
	"net/http"
	"time"

	"github.com/focuslog/internal/service"
	"github.com/gin-gonic/gin"
)

// GetDashboard 汇总首页所需的各功能概览
// 习惯取当前 ISO 周的打卡与完成率，计划表取当前时段窗口
func (a *API) GetDashboard(c *gin.Context) {
	weekStart := service.WeekStartOf(time.Now().In(time.Local)).Format(service.DateFormat)

	habits, err := a.habits.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取习惯列表失败")
		return
	}

	habitItems := make([]gin.H, 0, len(habits))
	for _, habit := range habits {
		days, err := a.habits.WeeklyProgress(habit.ID, weekStart)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "获取打卡数据失败")
			return
		}
		percentage, err := a.habits.ProgressPercentage(habit.ID, weekStart)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "计算完成率失败")
			return
		}
		habitItems = append(habitItems, gin.H{
			"habit":      habitToPayload(habit),
			"days":       daysToPayload(days),
			"percentage": percentage,
		})
	}

	slots, err := a.planner.CurrentWindow(4)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取当前时段失败")
		return
	}

	tasksDone, err := a.tasks.CompletedTodayCount()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "统计任务失败")
		return
	}

	dsaSolved, err := a.dsa.SolvedToday()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "统计刷题失败")
		return
	}

	spending := gin.H{}
	for key, days := range map[string]int{"today": 1, "week": 7, "month": 30} {
		total, err := a.expenses.SumByPeriod(days)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "汇总支出失败")
			return
		}
		spending[key] = total
	}

	c.JSON(http.StatusOK, gin.H{
		"week_start": weekStart,
		"habits":     habitItems,
		"planner":    gin.H{"slots": plannerSlotsToPayload(slots)},
		"tasks_done": tasksDone,
		"dsa_solved": dsaSolved,
		"spending":   spending,
		"pomodoro":   pomodoroStateToPayload(a.pomodoro.Snapshot()),
	})
}
