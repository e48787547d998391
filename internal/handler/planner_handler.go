package handler

import (
	"errors"
	"net/http"

	"github.com/focuslog/internal/db"
	"github.com/focuslog/internal/service"
	"github.com/gin-gonic/gin"
)

type plannerSlotPayload struct {
	Position  int    `json:"position"`
	Hour      string `json:"hour"`
	Task      string `json:"task"`
	Completed bool   `json:"completed"`
}

func plannerSlotToPayload(slot db.PlannerSlot) plannerSlotPayload {
	return plannerSlotPayload{
		Position:  slot.Position,
		Hour:      slot.Hour,
		Task:      slot.Task,
		Completed: slot.Completed,
	}
}

func plannerSlotsToPayload(slots []db.PlannerSlot) []plannerSlotPayload {
	items := make([]plannerSlotPayload, 0, len(slots))
	for _, slot := range slots {
		items = append(items, plannerSlotToPayload(slot))
	}
	return items
}

func handlePlannerError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrPlannerSlotNotFound) {
		respondError(c, http.StatusNotFound, "槽位不存在")
		return
	}
	respondError(c, http.StatusInternalServerError, "操作失败")
}

// GetPlannerSlots 返回全部槽位与完成计数
func (a *API) GetPlannerSlots(c *gin.Context) {
	slots, err := a.planner.Slots()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取计划表失败")
		return
	}

	completed, total, err := a.planner.CompletedCount()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "统计计划表失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"slots":     plannerSlotsToPayload(slots),
		"completed": completed,
		"total":     total,
	})
}

// UpdatePlannerSlot 修改指定槽位的任务文本
func (a *API) UpdatePlannerSlot(c *gin.Context) {
	position, err := parseIntParam(c, "position")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的槽位序号")
		return
	}

	var payload struct {
		Task string `json:"task"`
	}
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	slot, err := a.planner.UpdateTask(position, payload.Task)
	if err != nil {
		handlePlannerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"slot": plannerSlotToPayload(*slot)})
}

// TogglePlannerSlot 翻转槽位完成状态
func (a *API) TogglePlannerSlot(c *gin.Context) {
	position, err := parseIntParam(c, "position")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的槽位序号")
		return
	}

	slot, err := a.planner.ToggleDone(position)
	if err != nil {
		handlePlannerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"slot": plannerSlotToPayload(*slot)})
}

// ClearPlanner 一次性清空全部槽位
func (a *API) ClearPlanner(c *gin.Context) {
	if err := a.planner.ClearAll(); err != nil {
		respondError(c, http.StatusInternalServerError, "清空计划表失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

// GetPlannerCurrent 返回从当前时段起的若干槽位
func (a *API) GetPlannerCurrent(c *gin.Context) {
	count := parseIntQuery(c, "count", 4)

	slots, err := a.planner.CurrentWindow(count)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取当前时段失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": plannerSlotsToPayload(slots)})
}
