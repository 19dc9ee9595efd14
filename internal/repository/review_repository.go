package repository

import (
	"errors"

	"github.com/ezelectronics/ezelectronics/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository 商品评价数据访问接口
type ReviewRepository interface {
	GetByModelAndUser(model, username string) (*models.Review, error)
	Create(review *models.Review) error
	ListByModel(model string) ([]models.Review, error)
	DeleteByModelAndUser(model, username string) (int64, error)
	DeleteAllByModel(model string) error
	DeleteAll() error
}

// GormReviewRepository GORM 实现
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓库
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// GetByModelAndUser 获取指定用户对指定型号的评价
func (r *GormReviewRepository) GetByModelAndUser(model, username string) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("model = ? AND username = ?", model, username).First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Create 创建评价
func (r *GormReviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// ListByModel 某型号的全部评价
func (r *GormReviewRepository) ListByModel(model string) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.Where("model = ?", model).Order("id ASC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// DeleteByModelAndUser 删除某用户对某型号的评价
func (r *GormReviewRepository) DeleteByModelAndUser(model, username string) (int64, error) {
	result := r.db.Where("model = ? AND username = ?", model, username).Delete(&models.Review{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteAllByModel 删除某型号的全部评价
func (r *GormReviewRepository) DeleteAllByModel(model string) error {
	return r.db.Where("model = ?", model).Delete(&models.Review{}).Error
}

// DeleteAll 清空评价表
func (r *GormReviewRepository) DeleteAll() error {
	return r.db.Where("1 = 1").Delete(&models.Review{}).Error
}
