/**
 * 模型:资产维保模型
 * @author: sun977
 * @date: 2025.09.20
 * @description: 资产维保合同数据模型
 * @func: AssetWarranty 结构体
 */
package asset

import (
	"time"

	"assetmaster/internal/model/basemodel"
)

// AssetWarranty 资产维保表
// 记录维保合同信息，缺省合同按一年期处理
type AssetWarranty struct {
	basemodel.BaseModel

	AssetID        uint64    `json:"asset_id" gorm:"index;not null;comment:资产ID"`
	ContractNumber string    `json:"contract_number" gorm:"size:64;index;comment:合同编号"`
	Provider       string    `json:"provider" gorm:"size:100;comment:维保供应商"`
	StartDate      time.Time `json:"start_date" gorm:"not null;comment:维保开始日期"`
	EndDate        time.Time `json:"end_date" gorm:"not null;comment:维保结束日期"`
	LifeYears      int       `json:"life_years" gorm:"not null;default:5;comment:使用年限"`
	Active         bool      `json:"active" gorm:"not null;default:true;comment:是否生效"`
}

// TableName 指定维保表名
func (AssetWarranty) TableName() string {
	return "asset_warranties"
}

// IsExpired 判断维保在指定时间是否已过期
func (w *AssetWarranty) IsExpired(at time.Time) bool {
	return at.After(w.EndDate)
}
