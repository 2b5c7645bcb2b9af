/**
 * 处理器:认证
 * @author: sun977
 * @date: 2025.09.21
 * @description: 登录和令牌刷新接口
 * @func: AuthHandler
 */
package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"assetmaster/internal/model"
	"assetmaster/internal/pkg/logger"
	"assetmaster/internal/pkg/utils"
	authservice "assetmaster/internal/service/auth"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	sessions *authservice.SessionService
}

// NewAuthHandler 创建 AuthHandler 实例
func NewAuthHandler(sessions *authservice.SessionService) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
	}
}

// Login 登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	clientIP := utils.GetClientIP(c)
	XRequestID := c.GetHeader("X-Request-ID")
	pathUrl := c.Request.URL.String()

	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.APIResponse{
			Code:    http.StatusBadRequest,
			Status:  "failed",
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	resp, err := h.sessions.Login(c.Request.Context(), &req, clientIP)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) || errors.Is(err, authservice.ErrUserDisabled) {
			c.JSON(http.StatusUnauthorized, model.APIResponse{
				Code:    http.StatusUnauthorized,
				Status:  "failed",
				Message: "Invalid username or password",
			})
			return
		}
		logger.LogBusinessError(err, XRequestID, 0, clientIP, pathUrl, "POST", map[string]interface{}{
			"operation": "login",
			"username":  req.Username,
		})
		c.JSON(http.StatusInternalServerError, model.APIResponse{
			Code:    http.StatusInternalServerError,
			Status:  "failed",
			Message: "Login failed",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "Login successful",
		Data:    resp,
	})
}

// RefreshToken 刷新令牌
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req model.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.APIResponse{
			Code:    http.StatusBadRequest,
			Status:  "failed",
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	resp, err := h.sessions.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, model.APIResponse{
			Code:    http.StatusUnauthorized,
			Status:  "failed",
			Message: "Invalid refresh token",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.APIResponse{
		Code:    http.StatusOK,
		Status:  "success",
		Message: "Token refreshed successfully",
		Data:    resp,
	})
}
