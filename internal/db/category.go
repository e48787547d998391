package db

import "gorm.io/gorm"

// 各功能维护独立的分类集合，Feature 取值如下
const (
	CategoryFeatureTasks    = "tasks"
	CategoryFeatureExpenses = "expenses"
	CategoryFeatureDSA      = "dsa"
)

// Category 定义分类标签
// Feature + Name 唯一；默认分类受保护不可删除（IsDefault）
// 删除自定义分类时引用它的记录会被改写到该功能的兜底分类
type Category struct {
	gorm.Model
	Feature   string `gorm:"size:20;index:idx_category_unique,unique"`
	Name      string `gorm:"index:idx_category_unique,unique"`
	IsDefault bool
}
