package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/focuslog/internal/db"
	"github.com/focuslog/internal/service"
	"github.com/gin-gonic/gin"
)

type checklistItemPayload struct {
	ID      uint   `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

type taskPayload struct {
	ID              uint                   `json:"id"`
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	DescriptionHTML string                 `json:"description_html,omitempty"`
	Category        string                 `json:"category"`
	Project         string                 `json:"project"`
	Status          string                 `json:"status"`
	DueDate         string                 `json:"due_date"`
	Priority        string                 `json:"priority"`
	Checklist       []checklistItemPayload `json:"checklist"`
	CreatedAt       string                 `json:"created_at"`
}

type taskInputPayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Project     string   `json:"project"`
	DueDate     string   `json:"due_date"`
	Priority    string   `json:"priority"`
	Checklist   []string `json:"checklist"`
}

func taskToPayload(task db.Task) taskPayload {
	checklist := make([]checklistItemPayload, 0, len(task.Checklist))
	for _, item := range task.Checklist {
		checklist = append(checklist, checklistItemPayload{ID: item.ID, Text: item.Text, Checked: item.Checked})
	}

	return taskPayload{
		ID:              task.ID,
		Title:           task.Title,
		Description:     task.Description,
		DescriptionHTML: renderMarkdown(task.Description),
		Category:        task.Category,
		Project:         task.Project,
		Status:          task.Status,
		DueDate:         task.DueDate,
		Priority:        task.Priority,
		Checklist:       checklist,
		CreatedAt:       task.CreatedAt.Format(time.RFC3339),
	}
}

func (p taskInputPayload) toInput() service.TaskInput {
	return service.TaskInput{
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Project:     p.Project,
		DueDate:     p.DueDate,
		Priority:    p.Priority,
		Checklist:   p.Checklist,
	}
}

func handleTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTaskNotFound), errors.Is(err, service.ErrChecklistItemNotFound):
		respondError(c, http.StatusNotFound, "任务不存在")
	case errors.Is(err, service.ErrTaskTitleRequired), errors.Is(err, service.ErrChecklistTextRequired):
		respondError(c, http.StatusBadRequest, "请求参数不合法")
	default:
		respondError(c, http.StatusInternalServerError, "操作失败")
	}
}

// ListTasks 返回任务列表与各分类计数
// category 查询参数会写入会话过滤器，缺省沿用会话中的值
func (a *API) ListTasks(c *gin.Context) {
	filter := activeFilter(c, db.CategoryFeatureTasks)
	if raw, ok := c.GetQuery("category"); ok {
		filter = raw
		setActiveFilter(c, db.CategoryFeatureTasks, raw)
	}

	tasks, err := a.tasks.List(service.TaskFilter{Category: filter})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取任务列表失败")
		return
	}

	names, err := a.categories.List(db.CategoryFeatureTasks)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取分类失败")
		return
	}

	counts, err := a.tasks.CountsByCategory(names)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "统计任务失败")
		return
	}

	items := make([]taskPayload, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, taskToPayload(task))
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks":           items,
		"categories":      names,
		"category_counts": counts,
		"active_filter":   filter,
	})
}

// GetTask 返回任务详情
func (a *API) GetTask(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的任务ID")
		return
	}

	task, err := a.tasks.Get(id)
	if err != nil {
		handleTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": taskToPayload(*task)})
}

// CreateTask 创建任务，初始状态恒为 todo
func (a *API) CreateTask(c *gin.Context) {
	var payload taskInputPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	task, err := a.tasks.Create(payload.toInput())
	if err != nil {
		handleTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": taskToPayload(*task)})
}

// UpdateTask 更新任务字段
func (a *API) UpdateTask(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的任务ID")
		return
	}

	var payload taskInputPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	task, err := a.tasks.Update(id, payload.toInput())
	if err != nil {
		handleTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": taskToPayload(*task)})
}

// DeleteTask 删除任务并级联删除子待办项
func (a *API) DeleteTask(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的任务ID")
		return
	}

	if err := a.tasks.Delete(id); err != nil {
		respondError(c, http.StatusInternalServerError, "删除任务失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ToggleTaskStatus 沿固定三态环推进任务状态
func (a *API) ToggleTaskStatus(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的任务ID")
		return
	}

	status, err := a.tasks.ToggleStatus(id)
	if err != nil {
		handleTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "status": status})
}

// AddChecklistItem 为任务追加子待办项
func (a *API) AddChecklistItem(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的任务ID")
		return
	}

	var payload struct {
		Text string `json:"text"`
	}
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	item, err := a.tasks.AddChecklistItem(id, payload.Text)
	if err != nil {
		handleTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": checklistItemPayload{ID: item.ID, Text: item.Text, Checked: item.Checked}})
}

// ToggleChecklistItem 翻转子待办项勾选状态
func (a *API) ToggleChecklistItem(c *gin.Context) {
	taskID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的任务ID")
		return
	}

	itemID, err := parseUintParam(c, "itemId")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的子项ID")
		return
	}

	item, err := a.tasks.ToggleChecklistItem(taskID, itemID)
	if err != nil {
		handleTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": checklistItemPayload{ID: item.ID, Text: item.Text, Checked: item.Checked}})
}

// DeleteChecklistItem 删除子待办项
func (a *API) DeleteChecklistItem(c *gin.Context) {
	taskID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的任务ID")
		return
	}

	itemID, err := parseUintParam(c, "itemId")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的子项ID")
		return
	}

	if err := a.tasks.DeleteChecklistItem(taskID, itemID); err != nil {
		handleTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
