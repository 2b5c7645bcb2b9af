package system

import (
	"context"
	"errors"
	"time"

	"assetmaster/internal/model"
	"assetmaster/internal/pkg/logger"

	"gorm.io/gorm"
)

// UserRepository 操作员仓库
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建 UserRepository 实例
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByUsername 根据用户名获取用户，未找到返回 nil
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.LogError(err, "", 0, "", "get_user_by_username", "REPO", map[string]interface{}{
			"operation": "get_user_by_username",
			"username":  username,
		})
		return nil, err
	}
	return &user, nil
}

// GetByID 根据ID获取用户，未找到返回 nil
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.LogError(err, "", 0, "", "get_user_by_id", "REPO", map[string]interface{}{
			"operation": "get_user_by_id",
			"id":        id,
		})
		return nil, err
	}
	return &user, nil
}

// Create 创建用户
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if user == nil {
		return errors.New("user is nil")
	}
	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil {
		logger.LogError(err, "", 0, "", "create_user", "REPO", map[string]interface{}{
			"operation": "create_user",
			"username":  user.Username,
		})
		return err
	}
	return nil
}

// UpdateLastLogin 更新最后登录时间和IP
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uint, clientIP string) error {
	now := time.Now()
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"last_login_at": &now,
			"last_login_ip": clientIP,
		}).Error
	if err != nil {
		logger.LogError(err, "", 0, "", "update_last_login", "REPO", map[string]interface{}{
			"operation": "update_last_login",
			"user_id":   userID,
		})
		return err
	}
	return nil
}
