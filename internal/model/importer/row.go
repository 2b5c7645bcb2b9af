/**
 * 模型:导入行模型
 * @author: sun977
 * @date: 2025.09.21
 * @description: Excel解析后的类型化行数据
 * @func: AssetRow 结构体
 */
package importer

// AssetRow Excel中的一行资产数据
// 字段值均为原始文本，类型转换和默认值在行处理管线中完成
type AssetRow struct {
	RowNumber int // 表格行号（含表头，从1开始）

	Number       string // 资产编号
	Name         string // 资产名称
	SerialNumber string // 序列号

	CategoryL1 string // 一级分类
	CategoryL2 string // 二级分类
	CategoryL3 string // 三级分类

	StatusLabel string // 使用状态（中文文本）
	Owner       string // 责任人
	Custodian   string // 保管人

	Site        string // 机房/站点
	Room        string // 房间
	Cabinet     string // 机柜
	Slot        string // U位
	Environment string // 环境

	ContractNumber   string // 合同编号
	WarrantyProvider string // 维保供应商
	WarrantyStart    string // 维保开始日期
	WarrantyEnd      string // 维保结束日期
	LifeYears        string // 使用年限
	AcceptedAt       string // 验收日期

	// 变更后字段，非空表示该行携带一次变更
	NewSite        string // 变更后机房/站点
	NewRoom        string // 变更后房间
	NewCabinet     string // 变更后机柜
	NewSlot        string // 变更后U位
	NewEnvironment string // 变更后环境
	NewStatusLabel string // 变更后使用状态
	NewCustodian   string // 变更后保管人
}

// HasSpaceChange 判断该行是否携带空间位置变更
func (r *AssetRow) HasSpaceChange() bool {
	return r.NewSite != "" || r.NewRoom != "" || r.NewCabinet != "" ||
		r.NewSlot != "" || r.NewEnvironment != "" || r.NewCustodian != ""
}
