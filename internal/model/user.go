/**
 * 模型:用户模型
 * @author: sun977
 * @date: 2025.09.20
 * @description: 后台操作员数据模型，登录和审计留痕使用
 * @func: User 结构体及相关方法
 */
package model

import (
	"time"
)

// User 操作员模型
// 资产后台的登录账号，资产变更留痕中的操作人即来自这里
type User struct {
	ID          uint       `json:"id" gorm:"primaryKey;autoIncrement"`                                            // 用户唯一标识ID，主键自增
	Username    string     `json:"username" gorm:"uniqueIndex;not null;size:50" validate:"required,min=3,max=50"` // 用户名，唯一索引，3-50字符
	Email       string     `json:"email" gorm:"uniqueIndex;not null;size:100" validate:"required,email"`          // 邮箱地址，唯一索引
	Password    string     `json:"-" gorm:"not null;size:255"`                                                    // 用户密码，加密存储，不在JSON中返回
	Nickname    string     `json:"nickname" gorm:"size:50"`                                                       // 用户昵称，最大50字符
	Phone       string     `json:"phone" gorm:"size:20"`                                                          // 手机号码，最大20字符
	Remark      string     `json:"remark" gorm:"size:500;comment:管理员备注"`                                          // 管理员对用户的备注说明
	Status      UserStatus `json:"status" gorm:"default:1;comment:用户状态:0-禁用,1-启用"`                                // 用户状态，默认启用
	LastLoginAt *time.Time `json:"last_login_at" gorm:"comment:最后登录时间"`                                           // 最后登录时间，可为空
	LastLoginIP string     `json:"last_login_ip" gorm:"size:45;comment:最后登录IP"`                                   // 最后登录IP地址，支持IPv6
	CreatedAt   time.Time  `json:"created_at"`                                                                    // 创建时间，自动管理
	UpdatedAt   time.Time  `json:"updated_at"`                                                                    // 更新时间，自动管理
	DeletedAt   *time.Time `json:"-" gorm:"index"`                                                                // 软删除时间，不在JSON中返回
}

// UserStatus 用户状态枚举
type UserStatus int

const (
	UserStatusDisabled UserStatus = 0 // 禁用状态
	UserStatusEnabled  UserStatus = 1 // 启用状态
)

// TableName 指定用户表名
func (User) TableName() string {
	return "users"
}

// IsActive 检查用户是否处于活跃状态
func (u *User) IsActive() bool {
	return u.Status == UserStatusEnabled
}
