package db

import "gorm.io/gorm"

// PlannerSlot 是每日计划表中的一个小时槽位
// 槽位数量与 Hour 标签由 PlannerHours 常量决定，启动时播种，运行期不增删
type PlannerSlot struct {
	gorm.Model
	Position  int    `gorm:"uniqueIndex"`
	Hour      string `gorm:"size:10"`
	Task      string
	Completed bool
}

// PlannerHours 是固定的槽位标签序列，顺序即展示顺序
var PlannerHours = []string{
	"05:00 AM", "06:00 AM", "07:00 AM", "08:00 AM", "09:00 AM", "10:00 AM",
	"11:00 AM", "12:00 PM", "01:00 PM", "02:00 PM", "03:00 PM",
	"04:00 PM", "05:00 PM", "06:00 PM", "07:00 PM", "08:00 PM",
	"09:00 PM", "10:00 PM", "11:00 PM", "12:00",
}
