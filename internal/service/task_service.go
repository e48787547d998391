package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/focuslog/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrTaskNotFound 在指定任务不存在时返回
	ErrTaskNotFound = errors.New("task not found")
	// ErrTaskTitleRequired 在任务标题为空时返回
	ErrTaskTitleRequired = errors.New("task title is required")
	// ErrChecklistItemNotFound 在子待办项不存在时返回
	ErrChecklistItemNotFound = errors.New("checklist item not found")
	// ErrChecklistTextRequired 在子待办项文本为空时返回
	ErrChecklistTextRequired = errors.New("checklist text is required")
)

// taskStatusCycle 定义固定的三态环，没有终止态
var taskStatusCycle = map[string]string{
	db.TaskStatusTodo:       db.TaskStatusInProgress,
	db.TaskStatusInProgress: db.TaskStatusDone,
	db.TaskStatusDone:       db.TaskStatusTodo,
}

// TaskService 负责任务看板的增删改查、状态环与子待办项
type TaskService struct {
	db *gorm.DB
}

// TaskInput 定义创建/更新任务时可配置字段
// Status 不在其中：新建一律 todo，此后只能沿状态环推进
type TaskInput struct {
	Title       string
	Description string
	Category    string
	Project     string
	DueDate     string
	Priority    string
	Checklist   []string
}

// TaskFilter 描述列表过滤条件，Category 为 All 或空表示不过滤
type TaskFilter struct {
	Category string
	Status   string
}

// NewTaskService 构造 TaskService
func NewTaskService(gdb *gorm.DB) *TaskService {
	return &TaskService{db: gdb}
}

// List 返回任务集合，新建的排前面
func (s *TaskService) List(filter TaskFilter) ([]db.Task, error) {
	query := s.db.Model(&db.Task{}).Preload("Checklist")

	if filter.Category != "" && filter.Category != "All" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var tasks []db.Task
	if err := query.Order("created_at DESC, id DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Get 根据 ID 获取任务及其子待办项
func (s *TaskService) Get(id uint) (*db.Task, error) {
	var task db.Task
	if err := s.db.Preload("Checklist").First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &task, nil
}

// Create 新建任务，初始状态恒为 todo
func (s *TaskService) Create(input TaskInput) (*db.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTaskTitleRequired
	}

	task := db.Task{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Category:    normalizeCategory(input.Category),
		Project:     strings.TrimSpace(input.Project),
		Status:      db.TaskStatusTodo,
		DueDate:     strings.TrimSpace(input.DueDate),
		Priority:    normalizePriority(input.Priority),
	}

	for _, text := range input.Checklist {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			continue
		}
		task.Checklist = append(task.Checklist, db.ChecklistItem{Text: trimmed})
	}

	if err := s.db.Create(&task).Error; err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return &task, nil
}

// Update 更新任务字段，状态由 ToggleStatus 单独管理
func (s *TaskService) Update(id uint, input TaskInput) (*db.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTaskTitleRequired
	}

	task, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	task.Title = title
	task.Description = strings.TrimSpace(input.Description)
	task.Category = normalizeCategory(input.Category)
	task.Project = strings.TrimSpace(input.Project)
	task.DueDate = strings.TrimSpace(input.DueDate)
	task.Priority = normalizePriority(input.Priority)

	if err := s.db.Save(task).Error; err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// Delete 删除任务并级联删除其子待办项
func (s *TaskService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&db.ChecklistItem{}).Error; err != nil {
			return fmt.Errorf("delete checklist items: %w", err)
		}
		if err := tx.Delete(&db.Task{}, id).Error; err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		return nil
	})
}

// ToggleStatus 沿 todo -> inprogress -> done -> todo 推进一步并返回新状态
func (s *TaskService) ToggleStatus(id uint) (string, error) {
	task, err := s.Get(id)
	if err != nil {
		return "", err
	}

	next, ok := taskStatusCycle[task.Status]
	if !ok {
		// 脏状态回到环的起点
		next = db.TaskStatusTodo
	}

	if err := s.db.Model(task).Update("status", next).Error; err != nil {
		return "", fmt.Errorf("toggle task status: %w", err)
	}
	return next, nil
}

// AddChecklistItem 为任务追加一条子待办项
func (s *TaskService) AddChecklistItem(taskID uint, text string) (*db.ChecklistItem, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrChecklistTextRequired
	}

	if _, err := s.Get(taskID); err != nil {
		return nil, err
	}

	item := db.ChecklistItem{TaskID: taskID, Text: trimmed}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("add checklist item: %w", err)
	}
	return &item, nil
}

// ToggleChecklistItem 翻转子待办项的勾选状态
func (s *TaskService) ToggleChecklistItem(taskID, itemID uint) (*db.ChecklistItem, error) {
	var item db.ChecklistItem
	if err := s.db.Where("task_id = ?", taskID).First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChecklistItemNotFound
		}
		return nil, fmt.Errorf("load checklist item: %w", err)
	}

	item.Checked = !item.Checked
	if err := s.db.Save(&item).Error; err != nil {
		return nil, fmt.Errorf("toggle checklist item: %w", err)
	}
	return &item, nil
}

// DeleteChecklistItem 删除子待办项
func (s *TaskService) DeleteChecklistItem(taskID, itemID uint) error {
	result := s.db.Where("task_id = ?", taskID).Delete(&db.ChecklistItem{}, itemID)
	if result.Error != nil {
		return fmt.Errorf("delete checklist item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrChecklistItemNotFound
	}
	return nil
}

// CountsByCategory 返回各分类的任务数，All 表示全部
func (s *TaskService) CountsByCategory(categories []string) (map[string]int, error) {
	var tasks []db.Task
	if err := s.db.Select("category").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}

	counts := make(map[string]int, len(categories))
	for _, name := range categories {
		if name == "All" {
			counts[name] = len(tasks)
			continue
		}
		for _, task := range tasks {
			if task.Category == name {
				counts[name]++
			}
		}
	}
	return counts, nil
}

// CompletedTodayCount 统计今天创建且已完成的任务数
func (s *TaskService) CompletedTodayCount() (int64, error) {
	var count int64
	if err := s.db.Model(&db.Task{}).
		Where("status = ? AND date(created_at, 'localtime') = ?", db.TaskStatusDone, Today()).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count completed tasks: %w", err)
	}
	return count, nil
}

func normalizeCategory(category string) string {
	trimmed := strings.TrimSpace(category)
	if trimmed == "" {
		return "Uncategorized"
	}
	return trimmed
}

func normalizePriority(priority string) string {
	switch strings.TrimSpace(strings.ToLower(priority)) {
	case db.TaskPriorityLow:
		return db.TaskPriorityLow
	case db.TaskPriorityHigh:
		return db.TaskPriorityHigh
	case db.TaskPriorityNone:
		return db.TaskPriorityNone
	default:
		return db.TaskPriorityMedium
	}
}
