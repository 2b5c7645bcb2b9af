/**
 * 中间件:JWT认证中间件
 * @author: sun977
 * @date: 2025.09.21
 * @description: 校验访问令牌并将用户信息写入上下文
 * @func:
 *   - GinJWTAuthMiddleware JWT认证中间件
 */
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"assetmaster/internal/model"
	"assetmaster/internal/pkg/logger"
	"assetmaster/internal/pkg/utils"
)

var (
	errMissingAuthHeader = errors.New("missing authorization header")
	errInvalidAuthHeader = errors.New("invalid authorization header format")
)

// GinJWTAuthMiddleware JWT认证中间件
// 从 Authorization 头提取Bearer令牌并校验，校验通过后将
// user_id / username / email 写入Gin上下文供后续handler使用
func (m *MiddlewareManager) GinJWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := utils.GetClientIP(c)
		requestID := c.GetHeader("X-Request-ID")

		accessToken, err := extractTokenFromGinHeader(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, model.APIResponse{
				Code:    http.StatusUnauthorized,
				Status:  "failed",
				Message: "Missing or invalid authorization header",
				Error:   err.Error(),
			})
			c.Abort()
			return
		}

		claims, err := m.sessionService.ValidateToken(accessToken)
		if err != nil {
			logger.LogInfo("access token rejected", requestID, 0, clientIP,
				c.Request.URL.Path, c.Request.Method, map[string]interface{}{
					"operation": "jwt_auth",
					"option":    "validate_token",
					"func_name": "middleware.auth.GinJWTAuthMiddleware",
				})
			c.JSON(http.StatusUnauthorized, model.APIResponse{
				Code:    http.StatusUnauthorized,
				Status:  "failed",
				Message: "Invalid or expired token",
			})
			c.Abort()
			return
		}

		// 用户信息写入Gin上下文
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("email", claims.Email)

		c.Next()
	}
}

// extractTokenFromGinHeader 从 Authorization 头提取Bearer令牌
func extractTokenFromGinHeader(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", errMissingAuthHeader
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errInvalidAuthHeader
	}
	return parts[1], nil
}
