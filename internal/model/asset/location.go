/**
 * 模型:资产空间位置模型
 * @author: sun977
 * @date: 2025.09.20
 * @description: 资产空间位置数据模型，保留历史位置形成轨迹
 * @func: AssetLocation 结构体
 */
package asset

import (
	"time"

	"assetmaster/internal/model/basemodel"
)

// AssetLocation 资产空间位置表
// 同一资产允许多行，IsCurrent 标记当前生效行，历史行通过 ValidTo 封口
type AssetLocation struct {
	basemodel.BaseModel

	AssetID     uint64     `json:"asset_id" gorm:"index;not null;comment:资产ID"`
	Site        string     `json:"site" gorm:"size:100;comment:机房/站点"`
	Room        string     `json:"room" gorm:"size:50;comment:房间"`
	Cabinet     string     `json:"cabinet" gorm:"size:50;comment:机柜"`
	Slot        string     `json:"slot" gorm:"size:20;comment:U位"`
	Environment string     `json:"environment" gorm:"size:50;comment:环境(生产/测试等)"`
	Custodian   string     `json:"custodian" gorm:"size:50;comment:该位置的保管人"`
	ValidFrom   time.Time  `json:"valid_from" gorm:"not null;comment:生效时间"`
	ValidTo     *time.Time `json:"valid_to" gorm:"comment:失效时间,当前位置为空"`
	IsCurrent   bool       `json:"is_current" gorm:"index;not null;default:false;comment:是否当前位置"`
}

// TableName 指定资产位置表名
func (AssetLocation) TableName() string {
	return "asset_locations"
}
