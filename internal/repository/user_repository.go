package repository

import (
	"errors"

	"github.com/ezelectronics/ezelectronics/internal/constants"
	"github.com/ezelectronics/ezelectronics/internal/models"

	"gorm.io/gorm"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	GetByUsername(username string) (*models.User, error)
	Create(user *models.User) error
	List() ([]models.User, error)
	ListByRole(role string) ([]models.User, error)
	Update(user *models.User) error
	Delete(username string) (int64, error)
	DeleteAllNonAdmin() error
	BumpTokenVersion(username string) error
	WithTx(tx *gorm.DB) UserRepository
}

// GormUserRepository GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// WithTx 绑定事务
func (r *GormUserRepository) WithTx(tx *gorm.DB) UserRepository {
	if tx == nil {
		return r
	}
	return &GormUserRepository{db: tx}
}

// GetByUsername 根据用户名获取用户
func (r *GormUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create 创建用户
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// List 全量用户列表
func (r *GormUserRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("username ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListByRole 按角色过滤用户列表
func (r *GormUserRepository) ListByRole(role string) ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("role = ?", role).Order("username ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update 更新用户资料
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete 删除用户
func (r *GormUserRepository) Delete(username string) (int64, error) {
	result := r.db.Where("username = ?", username).Delete(&models.User{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteAllNonAdmin 删除全部非管理员用户
func (r *GormUserRepository) DeleteAllNonAdmin() error {
	return r.db.Where("role <> ?", constants.RoleAdmin).Delete(&models.User{}).Error
}

// BumpTokenVersion 自增 Token 版本，使已签发的 Token 失效
func (r *GormUserRepository) BumpTokenVersion(username string) error {
	return r.db.Model(&models.User{}).Where("username = ?", username).
		Update("token_version", gorm.Expr("token_version + ?", 1)).Error
}
