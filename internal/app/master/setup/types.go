/**
 * 初始化
 * @author: sun977
 * @date: 2025.09.21
 * @description: 包含master程序初始化相关的类型定义
 * @func: Handler 本身包含 Service,但是Service本身又重新暴露一遍,方便调用
 */
package setup

import (
	assetHandler "assetmaster/internal/handler/asset"
	authHandler "assetmaster/internal/handler/auth"
	assetService "assetmaster/internal/service/asset"
	authService "assetmaster/internal/service/auth"
	importerService "assetmaster/internal/service/importer"
)

// AuthModule 是认证模块的聚合输出
// setup 层仅负责依赖装配（Handler → Service → Repository），不侵入业务逻辑
type AuthModule struct {
	// Handlers
	AuthHandler *authHandler.AuthHandler

	// Services（对外暴露以供中间件等其他模块使用）
	SessionService *authService.SessionService
}

// AssetModule 是资产管理模块的聚合输出
type AssetModule struct {
	// Handlers
	AssetHandler *assetHandler.AssetHandler

	// Services
	AssetService *assetService.AssetService
}

// ImportModule 是资产导入模块的聚合输出
type ImportModule struct {
	// Handlers
	ImportHandler *assetHandler.ImportHandler

	// Services
	ImportService *importerService.ImportService
}
