package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/focuslog/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrUnknownCategoryFeature 在功能名不合法时返回
	ErrUnknownCategoryFeature = errors.New("unknown category feature")
)

// categorySentinels 指定分类被删除后引用记录改写到的兜底分类
var categorySentinels = map[string]string{
	db.CategoryFeatureTasks:    "Uncategorized",
	db.CategoryFeatureExpenses: "Uncategorized",
	db.CategoryFeatureDSA:      "Other",
}

// CategoryService 统一维护任务/支出/刷题三套独立的分类集合
// 默认分类受保护不可删除；删除自定义分类会把引用它的记录改写到兜底分类
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService 构造 CategoryService
func NewCategoryService(gdb *gorm.DB) *CategoryService {
	return &CategoryService{db: gdb}
}

// List 返回某功能的分类名称，默认分类在前，自定义按创建顺序在后
func (s *CategoryService) List(feature string) ([]string, error) {
	if _, ok := categorySentinels[feature]; !ok {
		return nil, ErrUnknownCategoryFeature
	}

	var categories []db.Category
	if err := s.db.Where("feature = ?", feature).
		Order("is_default DESC, id ASC").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, category.Name)
	}
	return names, nil
}

// Add 追加自定义分类
// 名称为空或已存在（区分大小写的精确匹配）时为 no-op，返回 added=false
func (s *CategoryService) Add(feature, name string) (bool, error) {
	if _, ok := categorySentinels[feature]; !ok {
		return false, ErrUnknownCategoryFeature
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false, nil
	}

	var count int64
	if err := s.db.Model(&db.Category{}).
		Where("feature = ? AND name = ?", feature, trimmed).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check category: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	category := db.Category{Feature: feature, Name: trimmed}
	if err := s.db.Create(&category).Error; err != nil {
		return false, fmt.Errorf("create category: %w", err)
	}
	return true, nil
}

// Delete 删除自定义分类并把引用记录改写到兜底分类
// 默认分类一律 no-op，返回 deleted=false；整个级联在单个事务内完成
func (s *CategoryService) Delete(feature, name string) (bool, error) {
	sentinel, ok := categorySentinels[feature]
	if !ok {
		return false, ErrUnknownCategoryFeature
	}

	var category db.Category
	err := s.db.Where("feature = ? AND name = ?", feature, name).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load category: %w", err)
	}
	if category.IsDefault {
		return false, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&category).Error; err != nil {
			return fmt.Errorf("delete category: %w", err)
		}

		var reassign *gorm.DB
		switch feature {
		case db.CategoryFeatureTasks:
			reassign = tx.Model(&db.Task{}).Where("category = ?", name).Update("category", sentinel)
		case db.CategoryFeatureExpenses:
			reassign = tx.Model(&db.Expense{}).Where("category = ?", name).Update("category", sentinel)
		case db.CategoryFeatureDSA:
			reassign = tx.Model(&db.DSARecord{}).Where("category = ?", name).Update("category", sentinel)
		}
		if reassign != nil && reassign.Error != nil {
			return fmt.Errorf("reassign records: %w", reassign.Error)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// Sentinel 返回某功能的兜底分类名称
func (s *CategoryService) Sentinel(feature string) string {
	return categorySentinels[feature]
}
