/**
 * 初始化:资产导入模块
 * @author: sun977
 * @date: 2025.09.21
 * @description: 批量导入模块初始化，按配置选择任务进度存储方式
 */
package setup

import (
	"assetmaster/internal/config"
	assetHandler "assetmaster/internal/handler/asset"
	"assetmaster/internal/pkg/logger"
	memoryRepo "assetmaster/internal/repo/memory"
	assetRepo "assetmaster/internal/repo/mysql/asset"
	redisRepo "assetmaster/internal/repo/redis"
	importerService "assetmaster/internal/service/importer"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// BuildImportModule 构建资产导入模块
// 任务进度存储根据 import.task_store 配置选择 memory 或 redis
func BuildImportModule(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *ImportModule {
	logger.WithFields(map[string]interface{}{
		"path":       "setup.importer",
		"operation":  "build_module",
		"task_store": cfg.Import.TaskStore,
		"func_name":  "setup.BuildImportModule",
	}).Info("开始初始化资产导入模块")

	// 1. Repository 初始化
	assetRepository := assetRepo.NewAssetRepository(db)
	categoryRepository := assetRepo.NewCategoryRepository(db)

	// 2. 任务进度存储选择
	var registry importerService.TaskRegistry
	if cfg.Import.TaskStore == "redis" && redisClient != nil {
		registry = redisRepo.NewImportTaskStore(redisClient, cfg.Import.TaskTTL)
	} else {
		registry = memoryRepo.NewImportTaskStore(cfg.Import.TaskTTL)
	}

	// 3. Service 初始化
	reader := importerService.NewSheetReader(cfg.Import.SheetName)
	validator := importerService.NewCategoryValidator(categoryRepository)
	pipeline := importerService.NewRowPipeline(assetRepository, validator)
	service := importerService.NewImportService(registry, reader, pipeline,
		assetRepository, cfg.Import.ProgressInterval)

	logger.WithFields(map[string]interface{}{
		"path":      "setup.importer",
		"operation": "build_module",
		"func_name": "setup.BuildImportModule",
	}).Info("资产导入模块初始化完成")

	return &ImportModule{
		ImportHandler: assetHandler.NewImportHandler(service, cfg.Import.MaxFileSize),
		ImportService: service,
	}
}
