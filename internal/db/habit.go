package db

import "gorm.io/gorm"

// Habit 定义习惯模型
// 习惯本身只有名称与描述，打卡状态全部落在 HabitCompletion
// 删除习惯时级联删除其全部打卡记录
type Habit struct {
	gorm.Model
	Name        string `gorm:"not null"`
	Description string
}

// HabitCompletion 记录习惯在某个日历日的完成状态
// Habit + Date 采用唯一索引，保证同一天只有一条记录
// Date 存储本地日历日字符串（2006-01-02），不携带时分秒
// 缺失记录等价于 Done=false，翻转时按 false 处理
type HabitCompletion struct {
	gorm.Model
	HabitID uint   `gorm:"index;index:idx_habit_completion_unique,unique"`
	Habit   Habit  `gorm:"constraint:OnDelete:CASCADE"`
	Date    string `gorm:"size:10;index:idx_habit_completion_unique,unique"`
	Done    bool
}

// TableName 重写确保唯一索引作用到 habit_id + date
func (HabitCompletion) TableName() string {
	return "habit_completions"
}
