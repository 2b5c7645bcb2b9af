/**
 * 模型:请求模型
 * @author: sun977
 * @date: 2025.09.20
 * @description: API请求数据模型
 * @func: 各种Request结构体定义
 */
package model

// LoginRequest 登录请求结构
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"` // 用户名
	Password string `json:"password" binding:"required,min=6"`        // 密码
}

// RefreshTokenRequest 刷新令牌请求结构
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"` // 刷新令牌
}

// AssetListRequest 资产列表查询请求
type AssetListRequest struct {
	Page     int    `form:"page"`      // 页码，从1开始
	PageSize int    `form:"page_size"` // 每页大小
	Keyword  string `form:"keyword"`   // 按资产编号/名称/序列号模糊搜索
	Status   string `form:"status"`    // 按使用状态过滤
	BatchID  string `form:"batch_id"`  // 按导入批次过滤
}

// ValidationError 字段校验错误
type ValidationError struct {
	Field   string `json:"field"`   // 字段名
	Message string `json:"message"` // 错误描述
}
