/**
 * 路由:资产管理路由
 * @author: sun977
 * @date: 2025.09.21
 * @description: 资产查询、维护和批量导入路由，全部需要JWT认证
 * @func:
 */
package router

import (
	"github.com/gin-gonic/gin"
)

// setupAssetRoutes 设置资产管理路由
func (r *Router) setupAssetRoutes(v1 *gin.RouterGroup) {
	assets := v1.Group("/assets")
	assets.Use(r.middlewareManager.GinJWTAuthMiddleware())
	{
		// 批量导入（路由注册在参数路由之前，避免与 /:id 冲突）
		assets.POST("/import", r.importModule.ImportHandler.SubmitImport)                     // handler/asset/import.go
		assets.GET("/import/:task_id", r.importModule.ImportHandler.GetProgress)              // handler/asset/import.go
		assets.GET("/import/:task_id/summary", r.importModule.ImportHandler.GetBatchSummary)  // handler/asset/import.go
		assets.GET("/import/batches/:batch_id", r.importModule.ImportHandler.GetBatch)        // handler/asset/import.go

		// 资产查询与维护
		assets.GET("", r.assetModule.AssetHandler.ListAssets)            // handler/asset/asset.go
		assets.GET("/:id", r.assetModule.AssetHandler.GetAsset)          // handler/asset/asset.go
		assets.DELETE("/:id", r.assetModule.AssetHandler.DeleteAsset)    // handler/asset/asset.go
		assets.GET("/:id/traces", r.assetModule.AssetHandler.ListTraces) // handler/asset/asset.go
	}

	categories := v1.Group("/categories")
	categories.Use(r.middlewareManager.GinJWTAuthMiddleware())
	{
		// 分类列表
		categories.GET("", r.assetModule.AssetHandler.ListCategories) // handler/asset/asset.go
	}
}
