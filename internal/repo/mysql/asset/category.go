package asset

import (
	"context"
	"errors"

	"assetmaster/internal/model/asset"
	"assetmaster/internal/pkg/logger"

	"gorm.io/gorm"
)

// CategoryRepository 资产分类仓库
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建 CategoryRepository 实例
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetByNameAndLevel 根据名称和层级获取分类
// (name, level) 有唯一索引，未命中返回 nil
func (r *CategoryRepository) GetByNameAndLevel(ctx context.Context, name string, level int) (*asset.AssetCategory, error) {
	var category asset.AssetCategory
	err := r.db.WithContext(ctx).
		Where("name = ? AND level = ?", name, level).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.LogError(err, "", 0, "", "get_category_by_name_level", "REPO", map[string]interface{}{
			"operation": "get_category_by_name_level",
			"name":      name,
			"level":     level,
		})
		return nil, err
	}
	return &category, nil
}

// Create 创建分类
func (r *CategoryRepository) Create(ctx context.Context, category *asset.AssetCategory) error {
	if category == nil {
		return errors.New("category is nil")
	}
	err := r.db.WithContext(ctx).Create(category).Error
	if err != nil {
		logger.LogError(err, "", 0, "", "create_category", "REPO", map[string]interface{}{
			"operation": "create_category",
			"name":      category.Name,
			"level":     category.Level,
		})
		return err
	}
	return nil
}

// List 获取全部启用分类，按层级和ID排序
func (r *CategoryRepository) List(ctx context.Context) ([]*asset.AssetCategory, error) {
	var categories []*asset.AssetCategory
	err := r.db.WithContext(ctx).
		Where("enabled = ?", true).
		Order("level asc, id asc").
		Find(&categories).Error
	if err != nil {
		logger.LogError(err, "", 0, "", "list_categories", "REPO", map[string]interface{}{
			"operation": "list_categories",
		})
		return nil, err
	}
	return categories, nil
}
