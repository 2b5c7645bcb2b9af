/**
 * 中间件:中间件管理器
 * @author: sun977
 * @date: 2025.09.21
 * @description: 统一管理各类Gin中间件
 * @func: MiddlewareManager
 */
package middleware

import (
	"assetmaster/internal/config"
	authservice "assetmaster/internal/service/auth"
)

// MiddlewareManager 中间件管理器
// 持有中间件所需的服务和安全配置
type MiddlewareManager struct {
	sessionService *authservice.SessionService
	securityConfig *config.SecurityConfig
}

// NewMiddlewareManager 创建中间件管理器实例
func NewMiddlewareManager(sessionService *authservice.SessionService, securityConfig *config.SecurityConfig) *MiddlewareManager {
	return &MiddlewareManager{
		sessionService: sessionService,
		securityConfig: securityConfig,
	}
}
