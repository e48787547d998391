package db

import "gorm.io/gorm"

// 任务状态仅有三个取值，按固定环推进：todo -> inprogress -> done -> todo
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "inprogress"
	TaskStatusDone       = "done"
)

// 任务优先级取值
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
	TaskPriorityNone   = "none"
)

// Task 定义任务看板上的任务模型
// Category 指向分类名称而非外键，分类删除时由服务层统一改写
// DueDate 存储日历日字符串（2006-01-02），为空表示未设置
type Task struct {
	gorm.Model
	Title       string `gorm:"not null"`
	Description string
	Category    string `gorm:"index"`
	Project     string
	Status      string `gorm:"size:20;index"`
	DueDate     string `gorm:"size:10"`
	Priority    string `gorm:"size:10"`
	Checklist   []ChecklistItem `gorm:"constraint:OnDelete:CASCADE"`
}

// ChecklistItem 是任务下的子待办项，随任务级联删除
type ChecklistItem struct {
	gorm.Model
	TaskID  uint `gorm:"index"`
	Text    string
	Checked bool
}
