/**
 * 路由:路由管理器
 * @author: sun977
 * @date: 2025.09.21
 * @description: 路由管理器，包含Router结构体、NewRouter函数和SetupRoutes主函数
 * @func:
 */
package router

import (
	"assetmaster/internal/app/master/middleware"
	"assetmaster/internal/app/master/setup"
	"assetmaster/internal/config"
	"assetmaster/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// Router 路由管理器
type Router struct {
	config            *config.Config
	engine            *gin.Engine
	middlewareManager *middleware.MiddlewareManager
	authModule        *setup.AuthModule
	assetModule       *setup.AssetModule
	importModule      *setup.ImportModule
}

// NewRouter 创建路由管理器实例
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Router {
	// 各业务模块装配（Handler → Service → Repository）
	authModule := setup.BuildAuthModule(db, cfg)
	assetModule := setup.BuildAssetModule(db)
	importModule := setup.BuildImportModule(db, redisClient, cfg)

	// 中间件管理器
	middlewareManager := middleware.NewMiddlewareManager(authModule.SessionService, &cfg.Security)

	// 创建Gin引擎
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	return &Router{
		config:            cfg,
		engine:            engine,
		middlewareManager: middlewareManager,
		authModule:        authModule,
		assetModule:       assetModule,
		importModule:      importModule,
	}
}

// SetupRoutes 设置全局中间件和路由
func (r *Router) SetupRoutes() {
	// 1) 全局中间件注册
	r.registerGlobalMiddleware()

	// 2) 路由注册
	r.registerRoutes()
}

// GetEngine 获取Gin引擎实例
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// GetImportModule 获取导入模块，应用关闭时释放任务存储
func (r *Router) GetImportModule() *setup.ImportModule {
	return r.importModule
}

// registerGlobalMiddleware 注册全局中间件
// 将全局中间件的挂载集中在一个方法中，便于统一管理与测试
func (r *Router) registerGlobalMiddleware() {
	logger.WithFields(map[string]interface{}{
		"path":      "router_manager.registerGlobalMiddleware",
		"operation": "register_global_middleware",
		"func_name": "router.registerGlobalMiddleware",
	}).Info("开始注册全局中间件")

	// 系统恢复中间件，防止 panic 直接导致进程崩溃
	r.engine.Use(gin.Recovery())

	if r.middlewareManager != nil {
		// 请求ID中间件
		r.engine.Use(r.middlewareManager.GinRequestIDMiddleware())
		// CORS 中间件
		r.engine.Use(r.middlewareManager.GinCORSMiddleware())
		// 安全响应头中间件
		r.engine.Use(r.middlewareManager.GinSecurityHeadersMiddleware())
		// 统一日志中间件
		r.engine.Use(r.middlewareManager.GinLoggingMiddleware())
	}

	logger.WithFields(map[string]interface{}{
		"path":      "router_manager.registerGlobalMiddleware",
		"operation": "register_global_middleware",
		"func_name": "router.registerGlobalMiddleware",
	}).Info("全局中间件注册完成")
}

// registerRoutes 注册路由
// 将"中间件注册"和"各模块路由注册"的步骤分离，提升可维护性与可测试性
func (r *Router) registerRoutes() {
	logger.WithFields(map[string]interface{}{
		"path":      "router_manager.registerRoutes",
		"operation": "register_routes",
		"func_name": "router.registerRoutes",
	}).Info("开始注册路由")

	// API 版本路由组：/api/v1
	api := r.engine.Group("/api")
	v1 := api.Group("/v1")

	// 公共路由（不需要认证）
	r.setupPublicRoutes(v1)
	// 资产管理路由（需要 JWT 认证）
	r.setupAssetRoutes(v1)
	// 健康检查路由
	r.setupHealthRoutes(api)

	logger.WithFields(map[string]interface{}{
		"path":      "router_manager.registerRoutes",
		"operation": "register_routes",
		"func_name": "router.registerRoutes",
	}).Info("路由注册完成")
}
