/**
 * 路由:公共路由
 * @author: sun977
 * @date: 2025.09.21
 * @description: 公共路由，包含登录等不需要认证的路由
 * @func:
 */
package router

import (
	"github.com/gin-gonic/gin"
)

// setupPublicRoutes 设置公共路由
func (r *Router) setupPublicRoutes(v1 *gin.RouterGroup) {
	// 认证相关公共路由
	auth := v1.Group("/auth")
	{
		// 操作员登录
		auth.POST("/login", r.authModule.AuthHandler.Login) // handler/auth/login.go
		// 刷新令牌(从body中传递refresh_token)
		auth.POST("/refresh", r.authModule.AuthHandler.RefreshToken) // handler/auth/login.go
	}
}
