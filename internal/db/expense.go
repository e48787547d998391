package db

import "gorm.io/gorm"

// 支出类型：必要支出与想要支出
const (
	ExpenseTypeNeed = "Need"
	ExpenseTypeWant = "Want"
)

// Expense 定义支出记录
// Date 存储日历日字符串（2006-01-02），汇总时只做日期比较
// Amount 为非负金额，写入前由服务层校验
type Expense struct {
	gorm.Model
	Date     string  `gorm:"size:10;index"`
	Name     string  `gorm:"not null"`
	Amount   float64
	Category string `gorm:"index"`
	Type     string `gorm:"size:10"`
}
