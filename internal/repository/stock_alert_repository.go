package repository

import (
	"github.com/ezelectronics/ezelectronics/internal/models"

	"gorm.io/gorm"
)

// StockAlertRepository 低库存提醒数据访问接口
type StockAlertRepository interface {
	Create(alert *models.StockAlert) error
	ListRecent(limit int) ([]models.StockAlert, error)
}

// GormStockAlertRepository GORM 实现
type GormStockAlertRepository struct {
	db *gorm.DB
}

// NewStockAlertRepository 创建低库存提醒仓库
func NewStockAlertRepository(db *gorm.DB) *GormStockAlertRepository {
	return &GormStockAlertRepository{db: db}
}

// Create 落库一条提醒记录
func (r *GormStockAlertRepository) Create(alert *models.StockAlert) error {
	return r.db.Create(alert).Error
}

// ListRecent 最近的提醒记录（管理端查看）
func (r *GormStockAlertRepository) ListRecent(limit int) ([]models.StockAlert, error) {
	if limit <= 0 {
		limit = 50
	}
	var alerts []models.StockAlert
	if err := r.db.Order("id DESC").Limit(limit).Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}
