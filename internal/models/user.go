package models

import (
	"time"
)

// User 用户表（顾客、经理、管理员共用一张表，按 Role 区分）
type User struct {
	ID           uint      `gorm:"primarykey" json:"-"`                                // 主键
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`               // 登录名
	Name         string    `gorm:"not null" json:"name"`                               // 名
	Surname      string    `gorm:"not null" json:"surname"`                            // 姓
	Role         string    `gorm:"type:varchar(20);not null" json:"role"`              // 角色 Customer/Manager/Admin
	Address      string    `gorm:"default:''" json:"address"`                          // 地址
	Birthdate    *Date     `gorm:"type:date" json:"birthdate"`                         // 生日
	PasswordHash string    `gorm:"not null" json:"-"`                                  // 密码哈希（不返回给前端）
	TokenVersion uint64    `gorm:"not null;default:0" json:"-"`                        // Token 版本（注销时自增使旧 Token 失效）
	CreatedAt    time.Time `gorm:"index" json:"-"`                                     // 创建时间
	UpdatedAt    time.Time `json:"-"`                                                  // 更新时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
