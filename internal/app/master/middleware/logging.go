/**
 * 中间件:日志中间件
 * @author: sun977
 * @date: 2025.09.21
 * @description: 统一记录访问日志，并将客户端IP和请求ID写入上下文
 * @func:
 *   - GinLoggingMiddleware 访问日志中间件
 */
package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"assetmaster/internal/pkg/logger"
	"assetmaster/internal/pkg/utils"
)

// GinLoggingMiddleware 访问日志中间件
// 1. 将客户端IP和请求ID同时写入Gin上下文和标准上下文，service层以下通过
//    utils.GetClientIPFromContext / utils.GetRequestIDFromContext 读取
// 2. 请求结束后输出访问日志
func (m *MiddlewareManager) GinLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		clientIP := utils.GetClientIP(c)
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			if v, ok := c.Get("request_id"); ok {
				if id, ok2 := v.(string); ok2 {
					requestID = id
				}
			}
		}

		// 写入Gin上下文，handler层使用
		c.Set("client_ip", clientIP)
		c.Set("request_id", requestID)

		// 写入标准上下文，service层以下使用
		ctx := context.WithValue(c.Request.Context(), utils.ContextKeyClientIP, clientIP)
		ctx = context.WithValue(ctx, utils.ContextKeyRequestID, requestID)
		c.Request = c.Request.WithContext(ctx)

		// 处理请求
		c.Next()

		// 请求完成后记录访问日志
		userID := utils.GetCurrentUserIDFromGinContext(c)
		logger.LogAccessRequest(c, startTime, requestID, userID)

		// 异常状态码补充错误日志，便于按error文件排查
		if c.Writer.Status() >= 500 && len(c.Errors) > 0 {
			logger.LogError(c.Errors.Last().Err, requestID, userID, clientIP,
				c.Request.URL.Path, c.Request.Method, map[string]interface{}{
					"operation":   "http_request",
					"status_code": c.Writer.Status(),
				})
		}
	}
}
