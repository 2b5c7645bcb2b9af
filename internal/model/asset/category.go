/**
 * 模型:资产分类模型
 * @author: sun977
 * @date: 2025.09.20
 * @description: 三级资产分类数据模型
 * @func: AssetCategory 结构体
 */
package asset

import (
	"assetmaster/internal/model/basemodel"
)

// 分类层级常量
const (
	CategoryLevelOne   = 1 // 一级分类
	CategoryLevelTwo   = 2 // 二级分类
	CategoryLevelThree = 3 // 三级分类
)

// AssetCategory 资产分类表
// 三级树形结构，ParentID 为0表示一级分类
type AssetCategory struct {
	basemodel.BaseModel

	Name     string `json:"name" gorm:"size:100;not null;index:idx_category_name_level,unique;comment:分类名称"`
	Level    int    `json:"level" gorm:"not null;index:idx_category_name_level,unique;comment:分类层级:1,2,3"`
	ParentID uint64 `json:"parent_id" gorm:"index;not null;default:0;comment:父级分类ID"`
	Enabled  bool   `json:"enabled" gorm:"not null;default:true;comment:是否启用"`
}

// TableName 指定分类表名
func (AssetCategory) TableName() string {
	return "asset_categories"
}

// IsRoot 判断是否一级分类
func (c *AssetCategory) IsRoot() bool {
	return c.Level == CategoryLevelOne
}
