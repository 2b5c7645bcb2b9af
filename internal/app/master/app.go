/**
 * 应用:master程序装配
 * @author: sun977
 * @date: 2025.09.21
 * @description: 加载配置、初始化日志、建立数据库连接并装配路由
 * @func: App
 */
package master

import (
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"assetmaster/internal/app/master/router"
	"assetmaster/internal/config"
	"assetmaster/internal/pkg/database"
	"assetmaster/internal/pkg/logger"
)

// App 应用程序结构体
type App struct {
	config      *config.Config
	db          *gorm.DB
	redisClient *redis.Client
	router      *router.Router
	watcher     *config.ConfigWatcher
}

// NewApp 创建新的应用程序实例
// configPath 为空时按默认路径查找，env 为空时从环境变量推断
func NewApp(configPath, env string) (*App, error) {
	// 1. 加载配置
	cfg, err := config.LoadConfig(configPath, env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. 初始化日志
	if _, err := logger.InitLogger(&cfg.Log); err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	// 3. 建立MySQL连接
	db, err := database.NewMySQLConnection(&cfg.Database.MySQL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect mysql: %w", err)
	}

	// 4. 建立Redis连接（仅在任务进度使用redis存储时需要）
	var redisClient *redis.Client
	if cfg.Import.TaskStore == "redis" {
		redisClient, err = database.NewRedisConnection(&cfg.Database.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect redis: %w", err)
		}
	}

	// 5. 装配路由
	r := router.NewRouter(db, redisClient, cfg)
	r.SetupRoutes()

	app := &App{
		config:      cfg,
		db:          db,
		redisClient: redisClient,
		router:      r,
	}

	// 6. 配置热加载（失败不阻断启动）
	watcher, err := config.NewConfigWatcher(configPath, env)
	if err != nil {
		logger.LogSystemEvent("config", "watcher_init_failed", err.Error(), logrus.WarnLevel, nil)
	} else {
		watcher.AddCallback(func(oldCfg, newCfg *config.Config) error {
			if err := logger.LoggerInstance.UpdateConfig(&newCfg.Log); err != nil {
				logger.LogSystemEvent("config", "log_reload_failed", err.Error(), logrus.WarnLevel, nil)
				return err
			}
			return nil
		})
		if err := watcher.Start(); err != nil {
			logger.LogSystemEvent("config", "watcher_start_failed", err.Error(), logrus.WarnLevel, nil)
		} else {
			app.watcher = watcher
		}
	}

	logger.LogSystemEvent("app", "started", "application assembled", logrus.InfoLevel, map[string]interface{}{
		"app":     cfg.App.Name,
		"version": cfg.App.Version,
		"env":     cfg.App.Environment,
	})

	return app, nil
}

// GetConfig 获取配置实例
func (a *App) GetConfig() *config.Config {
	return a.config
}

// GetRouter 获取路由器实例
func (a *App) GetRouter() *router.Router {
	return a.router
}

// Stop 停止应用程序，释放持有的资源
func (a *App) Stop() error {
	if a.watcher != nil {
		if err := a.watcher.Stop(); err != nil {
			logger.LogSystemEvent("config", "watcher_stop_failed", err.Error(), logrus.WarnLevel, nil)
		}
	}

	// 关闭导入任务存储（停止内存清理协程或释放redis引用）
	if m := a.router.GetImportModule(); m != nil {
		if err := m.ImportService.Close(); err != nil {
			logger.LogSystemEvent("importer", "close_failed", err.Error(), logrus.WarnLevel, nil)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			logger.LogSystemEvent("redis", "close_failed", err.Error(), logrus.WarnLevel, nil)
		}
	}

	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.LogSystemEvent("mysql", "close_failed", err.Error(), logrus.WarnLevel, nil)
		}
	}

	logger.LogSystemEvent("app", "stopped", "application stopped", logrus.InfoLevel, nil)
	return nil
}
