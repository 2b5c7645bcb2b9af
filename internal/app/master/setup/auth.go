/**
 * 初始化:认证模块
 * @author: sun977
 * @date: 2025.09.21
 * @description: 认证模块初始化
 */
package setup

import (
	"assetmaster/internal/config"
	authHandler "assetmaster/internal/handler/auth"
	authPkg "assetmaster/internal/pkg/auth"
	"assetmaster/internal/pkg/logger"
	"assetmaster/internal/repo/mysql/system"
	authService "assetmaster/internal/service/auth"

	"gorm.io/gorm"
)

// BuildAuthModule 构建认证模块
func BuildAuthModule(db *gorm.DB, cfg *config.Config) *AuthModule {
	logger.WithFields(map[string]interface{}{
		"path":      "setup.auth",
		"operation": "build_module",
		"func_name": "setup.BuildAuthModule",
	}).Info("开始初始化认证模块")

	jwtCfg := cfg.Security.JWT
	jwtManager := authPkg.NewJWTManager(jwtCfg.Secret, jwtCfg.Issuer,
		jwtCfg.AccessTokenExpire, jwtCfg.RefreshTokenExpire)
	passwordManager := authPkg.NewPasswordManager(&authPkg.PasswordConfig{
		Memory:      64 * 1024, // 64MB
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  32,
		KeyLength:   32,
	})

	userRepo := system.NewUserRepository(db)
	sessionService := authService.NewSessionService(userRepo, jwtManager, passwordManager)

	logger.WithFields(map[string]interface{}{
		"path":      "setup.auth",
		"operation": "build_module",
		"func_name": "setup.BuildAuthModule",
	}).Info("认证模块初始化完成")

	return &AuthModule{
		AuthHandler:    authHandler.NewAuthHandler(sessionService),
		SessionService: sessionService,
	}
}
