/**
 * 服务:会话管理
 * @author: sun977
 * @date: 2025.09.21
 * @description: 操作员登录、令牌刷新和令牌校验
 * @func: SessionService
 */
package auth

import (
	"context"
	"errors"
	"fmt"

	"assetmaster/internal/model"
	pkgauth "assetmaster/internal/pkg/auth"
	"assetmaster/internal/pkg/logger"
	"assetmaster/internal/repo/mysql/system"
)

// 认证相关错误
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserDisabled       = errors.New("user is disabled")
)

// SessionService 会话服务
type SessionService struct {
	users     *system.UserRepository
	jwt       *pkgauth.JWTManager
	passwords *pkgauth.PasswordManager
}

// NewSessionService 创建会话服务
func NewSessionService(users *system.UserRepository, jwt *pkgauth.JWTManager, passwords *pkgauth.PasswordManager) *SessionService {
	return &SessionService{
		users:     users,
		jwt:       jwt,
		passwords: passwords,
	}
}

// Login 登录并签发令牌对
func (s *SessionService) Login(ctx context.Context, req *model.LoginRequest, clientIP string) (*model.LoginResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	if user == nil {
		// 用户不存在和密码错误返回同样的错误，避免暴露账号是否存在
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, ErrUserDisabled
	}

	ok, err := s.passwords.VerifyPassword(req.Password, user.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		logger.LogBusinessOperation("login", user.ID, user.Username, clientIP, "", "failed",
			"wrong password", nil)
		return nil, ErrInvalidCredentials
	}

	pair, err := s.jwt.GenerateTokenPair(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token pair: %w", err)
	}

	// 登录时间更新失败不阻断登录
	if err := s.users.UpdateLastLogin(ctx, user.ID, clientIP); err != nil {
		logger.LogBusinessError(err, "", user.ID, clientIP, "login", "SERVICE", nil)
	}

	logger.LogBusinessOperation("login", user.ID, user.Username, clientIP, "", "success",
		"user logged in", nil)

	return &model.LoginResponse{
		User: &model.UserInfo{
			ID:          user.ID,
			Username:    user.Username,
			Email:       user.Email,
			Nickname:    user.Nickname,
			Status:      user.Status,
			LastLoginAt: user.LastLoginAt,
			CreatedAt:   user.CreatedAt,
		},
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

// RefreshToken 用刷新令牌换取新令牌对
func (s *SessionService) RefreshToken(ctx context.Context, refreshToken string) (*model.RefreshTokenResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	user, err := s.users.GetByUsername(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	if user == nil || !user.IsActive() {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.jwt.GenerateTokenPair(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token pair: %w", err)
	}

	return &model.RefreshTokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		TokenType:    "Bearer",
	}, nil
}

// ValidateToken 校验访问令牌，JWT中间件使用
func (s *SessionService) ValidateToken(tokenString string) (*pkgauth.JWTClaims, error) {
	return s.jwt.ValidateAccessToken(tokenString)
}
