package db

import "gorm.io/gorm"

// Setting 存储系统级键值对，目前只承载 schema 版本号。
type Setting struct {
	gorm.Model
	Key   string `gorm:"size:100;uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}

// TableName 自定义表名以保持命名一致。
func (Setting) TableName() string {
	return "settings"
}

const (
	// SettingKeySchemaVersion 记录当前数据库 schema 版本，供迁移使用。
	SettingKeySchemaVersion = "schema_version"
)
