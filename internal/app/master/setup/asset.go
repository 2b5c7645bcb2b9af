/**
 * 初始化:资产管理模块
 * @author: sun977
 * @date: 2025.09.21
 * @description: 资产查询与维护模块初始化
 */
package setup

import (
	assetHandler "assetmaster/internal/handler/asset"
	"assetmaster/internal/pkg/logger"
	assetRepo "assetmaster/internal/repo/mysql/asset"
	assetService "assetmaster/internal/service/asset"

	"gorm.io/gorm"
)

// BuildAssetModule 构建资产管理模块
func BuildAssetModule(db *gorm.DB) *AssetModule {
	logger.WithFields(map[string]interface{}{
		"path":      "setup.asset",
		"operation": "build_module",
		"func_name": "setup.BuildAssetModule",
	}).Info("开始初始化资产管理模块")

	// 1. Repository 初始化
	assetRepository := assetRepo.NewAssetRepository(db)
	categoryRepository := assetRepo.NewCategoryRepository(db)
	traceRepository := assetRepo.NewChangeTraceRepository(db)

	// 2. Service 初始化
	service := assetService.NewAssetService(assetRepository, categoryRepository, traceRepository)

	logger.WithFields(map[string]interface{}{
		"path":      "setup.asset",
		"operation": "build_module",
		"func_name": "setup.BuildAssetModule",
	}).Info("资产管理模块初始化完成")

	return &AssetModule{
		AssetHandler: assetHandler.NewAssetHandler(service),
		AssetService: service,
	}
}
