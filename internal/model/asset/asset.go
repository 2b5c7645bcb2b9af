/**
 * 模型:IT资产模型
 * @author: sun977
 * @date: 2025.09.20
 * @description: IT资产主档数据模型
 * @func: Asset 结构体及状态枚举
 */
package asset

import (
	"time"

	"assetmaster/internal/model/basemodel"
)

// AssetStatus 资产使用状态
type AssetStatus string

const (
	StatusInUse       AssetStatus = "in_use"      // 在用
	StatusInventory   AssetStatus = "inventory"   // 库存
	StatusMaintenance AssetStatus = "maintenance" // 维修
	StatusRetired     AssetStatus = "retired"     // 报废
)

// statusLabels 导入表格中的中文状态到枚举的映射
var statusLabels = map[string]AssetStatus{
	"在用": StatusInUse,
	"库存": StatusInventory,
	"维修": StatusMaintenance,
	"报废": StatusRetired,
}

// StatusFromLabel 将表格中的状态文本转换为状态枚举
// 未识别的文本统一按库存处理，返回第二个值标识是否命中
func StatusFromLabel(label string) (AssetStatus, bool) {
	if s, ok := statusLabels[label]; ok {
		return s, true
	}
	return StatusInventory, false
}

// Asset IT资产主档表
// 一行代表一台设备，资产编号和指纹都要求全局唯一
type Asset struct {
	basemodel.BaseModel

	AssetUUID     string      `json:"asset_uuid" gorm:"size:36;uniqueIndex;not null;comment:资产全局唯一标识"`
	Number        string      `json:"number" gorm:"size:64;uniqueIndex;not null;comment:资产编号"`
	Name          string      `json:"name" gorm:"size:200;not null;comment:资产名称"`
	SerialNumber  string      `json:"serial_number" gorm:"size:128;comment:序列号"`
	Status        AssetStatus `json:"status" gorm:"size:20;not null;index;comment:使用状态"`
	CategoryL1ID  uint64      `json:"category_l1_id" gorm:"index;not null;comment:一级分类ID"`
	CategoryL2ID  uint64      `json:"category_l2_id" gorm:"index;not null;comment:二级分类ID"`
	CategoryL3ID  uint64      `json:"category_l3_id" gorm:"index;not null;comment:三级分类ID"`
	Owner         string      `json:"owner" gorm:"size:50;comment:责任人"`
	Custodian     string      `json:"custodian" gorm:"size:50;comment:保管人"`
	Fingerprint   string      `json:"fingerprint" gorm:"size:64;uniqueIndex;not null;comment:行内容哈希，兼作去重指纹"`
	ImportBatchID string      `json:"import_batch_id" gorm:"size:40;index;comment:导入批次号"`
	RowNumber     int         `json:"row_number" gorm:"comment:来源表格行号"`
	AcceptedAt    *time.Time  `json:"accepted_at" gorm:"comment:验收日期"`
	Version       int         `json:"version" gorm:"not null;default:1;comment:乐观锁版本号，更新时递增"`

	// 关联关系
	Locations  []*AssetLocation `json:"locations,omitempty" gorm:"foreignKey:AssetID"`
	Warranty   *AssetWarranty   `json:"warranty,omitempty" gorm:"foreignKey:AssetID"`
	ChangeLogs []*AssetChangeTrace `json:"change_logs,omitempty" gorm:"foreignKey:AssetID"`
}

// TableName 指定资产表名
func (Asset) TableName() string {
	return "assets"
}

// CurrentLocation 返回当前生效的空间位置
func (a *Asset) CurrentLocation() *AssetLocation {
	for _, loc := range a.Locations {
		if loc.IsCurrent {
			return loc
		}
	}
	return nil
}
