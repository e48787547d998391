package db

import "gorm.io/gorm"

// PomodoroSession 记录一次自然倒数到零的番茄钟
// 只有倒计时走完才会写入，手动停止不记录
// DurationSeconds 存最初配置的时长而非实际经过时间
type PomodoroSession struct {
	gorm.Model
	TaskName        string `gorm:"not null"`
	DurationSeconds int
	Completed       bool
}
