package db

import "gorm.io/gorm"

// DSARecord 记录某天刷过的一道算法题
// Date 为日历日字符串（2006-01-02），同一天可以有多条记录
type DSARecord struct {
	gorm.Model
	Date     string `gorm:"size:10;index"`
	Title    string `gorm:"not null"`
	Category string `gorm:"index"`
}
