package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DB 是一个全局的数据库连接实例
var DB *gorm.DB

// SchemaVersion 为当前代码期望的 schema 版本
// 每次破坏性调整模型时 +1，并在 runMigrations 中补充对应步骤
const SchemaVersion = 1

// Init 初始化数据库连接、执行自动迁移并播种固定数据。
// databasePath 为空时将回退到默认值 focuslog.db。
func Init(databasePath string) error {
	path := strings.TrimSpace(databasePath)
	if path == "" {
		path = "focuslog.db"
	}

	if err := ensureParentDir(path); err != nil {
		return err
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return err
	}

	return Migrate(DB)
}

// Migrate 对给定连接执行自动迁移、版本迁移与播种，供 Init 与测试共用。
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&Habit{},
		&HabitCompletion{},
		&Task{},
		&ChecklistItem{},
		&Expense{},
		&Category{},
		&PlannerSlot{},
		&PomodoroSession{},
		&DSARecord{},
		&Setting{},
	); err != nil {
		return err
	}

	if err := runMigrations(gdb); err != nil {
		return err
	}

	if err := seedPlannerSlots(gdb); err != nil {
		return err
	}

	return seedDefaultCategories(gdb)
}

// runMigrations 按存储的版本号顺序执行迁移步骤，最后写回当前版本。
func runMigrations(gdb *gorm.DB) error {
	stored, err := storedSchemaVersion(gdb)
	if err != nil {
		return err
	}

	if stored > SchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported %d", stored, SchemaVersion)
	}

	// 版本 0 -> 1：初始 schema，无历史数据需要改写
	// 后续版本在此追加 if stored < N { ... } 步骤

	if stored != SchemaVersion {
		setting := Setting{Key: SettingKeySchemaVersion, Value: strconv.Itoa(SchemaVersion)}
		if err := gdb.Where(Setting{Key: SettingKeySchemaVersion}).
			Assign(Setting{Value: setting.Value}).
			FirstOrCreate(&setting).Error; err != nil {
			return fmt.Errorf("store schema version: %w", err)
		}
	}

	return nil
}

func storedSchemaVersion(gdb *gorm.DB) (int, error) {
	var setting Setting
	if err := gdb.Where("key = ?", SettingKeySchemaVersion).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("load schema version: %w", err)
	}

	version, err := strconv.Atoi(strings.TrimSpace(setting.Value))
	if err != nil {
		// 脏数据按未初始化处理，迁移会重写为当前版本
		return 0, nil
	}
	return version, nil
}

// seedPlannerSlots 保证槽位与 PlannerHours 一一对应，只在缺失时创建。
func seedPlannerSlots(gdb *gorm.DB) error {
	for i, hour := range PlannerHours {
		slot := PlannerSlot{Position: i, Hour: hour}
		if err := gdb.Where(PlannerSlot{Position: i}).
			Attrs(PlannerSlot{Hour: hour}).
			FirstOrCreate(&slot).Error; err != nil {
			return fmt.Errorf("seed planner slot %d: %w", i, err)
		}
	}
	return nil
}

// seedDefaultCategories 为各功能写入受保护的默认分类，幂等。
func seedDefaultCategories(gdb *gorm.DB) error {
	defaults := map[string][]string{
		CategoryFeatureTasks:    {"All", "Personal", "Uncategorized"},
		CategoryFeatureExpenses: {"All", "Uncategorized"},
		CategoryFeatureDSA:      {"Array", "String", "Other"},
	}

	for feature, names := range defaults {
		for _, name := range names {
			category := Category{Feature: feature, Name: name, IsDefault: true}
			if err := gdb.Where(Category{Feature: feature, Name: name}).
				Assign(Category{IsDefault: true}).
				FirstOrCreate(&category).Error; err != nil {
				return fmt.Errorf("seed category %s/%s: %w", feature, name, err)
			}
		}
	}
	return nil
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
