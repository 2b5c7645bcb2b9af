/**
 * 模型:资产变更留痕模型
 * @author: sun977
 * @date: 2025.09.20
 * @description: 资产变更留痕数据模型，审计和回溯使用
 * @func: AssetChangeTrace 结构体及变更类型枚举
 */
package asset

import (
	"time"

	"assetmaster/internal/model/basemodel"
)

// ChangeType 变更类型
type ChangeType string

const (
	ChangeTypeInitial  ChangeType = "initial"  // 首次录入
	ChangeTypeSpace    ChangeType = "space"    // 空间位置变更
	ChangeTypeStatus   ChangeType = "status"   // 使用状态变更
	ChangeTypeWarranty ChangeType = "warranty" // 维保信息变更
	ChangeTypeProperty ChangeType = "property" // 基础属性变更
	ChangeTypeOwner    ChangeType = "owner"    // 责任人/保管人变更
)

// AssetChangeTrace 资产变更留痕表
// Before/After 存储变更前后字段快照的JSON文本
type AssetChangeTrace struct {
	basemodel.BaseModel

	AssetID    uint64     `json:"asset_id" gorm:"index;not null;comment:资产ID"`
	BatchID    string     `json:"batch_id" gorm:"size:40;index;comment:触发变更的导入批次号"`
	ChangeType ChangeType `json:"change_type" gorm:"size:20;not null;index;comment:变更类型"`
	Before     string     `json:"before" gorm:"type:json;comment:变更前快照"`
	After      string     `json:"after" gorm:"type:json;comment:变更后快照"`
	Operator   string     `json:"operator" gorm:"size:50;not null;comment:操作人"`
	OperatedAt time.Time  `json:"operated_at" gorm:"not null;index;comment:操作时间"`
}

// TableName 指定变更留痕表名
func (AssetChangeTrace) TableName() string {
	return "asset_change_traces"
}
