/*
 * @author: sun977
 * @date: 2025.09.20
 * @description: 通用的工具包
 * @func:
 */

package utils

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKey 类型用于标准上下文键的定义，避免使用裸字符串造成键冲突
type ContextKey string

// ContextKeyClientIP 标准上下文中存储客户端IP的统一键
const ContextKeyClientIP ContextKey = "client_ip"

// ContextKeyRequestID 标准上下文中存储请求追踪ID的统一键
const ContextKeyRequestID ContextKey = "request_id"

// GetClientIP 从 Gin 上下文获取客户端IP
func GetClientIP(c *gin.Context) string {
	return c.ClientIP()
}

// GetCurrentUserIDFromGinContext 从 Gin 上下文中提取当前用户ID
// 如果不存在则返回0，轻校验
// 来源：user_id 最初是JWT中间件写入Gin上下文 GinJWTAuthMiddleware() 中
func GetCurrentUserIDFromGinContext(c *gin.Context) uint {
	if v, ok := c.Get("user_id"); ok {
		if id, ok2 := v.(uint); ok2 {
			return id
		}
	}
	return 0
}

// GetCurrentUsernameFromGinContext 从 Gin 上下文中提取当前用户名
// 如果不存在则返回空字符串
func GetCurrentUsernameFromGinContext(c *gin.Context) string {
	if v, ok := c.Get("username"); ok {
		if name, ok2 := v.(string); ok2 {
			return name
		}
	}
	return ""
}

// GetClientIPFromContext 从标准上下文读取客户端IP（统一键）
// 适用范围：service 层以下获取当前 clientIP 使用
// 来源：clientIP 最初是logging中间件写入标准上下文 GinLoggingMiddleware() 中
// 说明：
// - 使用 ContextKeyClientIP 作为唯一键，保证读写一致，跨包可用
// - 如果不存在或类型不匹配，返回空字符串
func GetClientIPFromContext(ctx context.Context) string {
	v := ctx.Value(ContextKeyClientIP)
	if ip, ok := v.(string); ok {
		return ip
	}
	return ""
}

// GetRequestIDFromContext 从标准上下文读取请求追踪ID
func GetRequestIDFromContext(ctx context.Context) string {
	v := ctx.Value(ContextKeyRequestID)
	if id, ok := v.(string); ok {
		return id
	}
	return ""
}

// GenerateTaskID 生成导入任务ID
// 使用UUID保证全局唯一，任务ID是客户端轮询进度的凭证
func GenerateTaskID() string {
	return uuid.NewString()
}

// GenerateBatchID 生成导入批次号
// 格式: IMP-20250920153045-a1b2c3d4，时间戳便于人工排查，后缀避免同秒冲突
func GenerateBatchID() string {
	short := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("IMP-%s-%s", time.Now().Format("20060102150405"), short)
}

// GenerateAssetUUID 生成资产全局唯一标识
func GenerateAssetUUID() string {
	return uuid.NewString()
}
