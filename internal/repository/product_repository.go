package repository

import (
	"errors"
	"strings"

	"github.com/ezelectronics/ezelectronics/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	GetByModel(model string) (*models.Product, error)
	List(filter ProductListFilter) ([]models.Product, error)
	Create(product *models.Product) error
	IncreaseQuantity(model string, quantity int) (int64, error)
	DecreaseQuantity(model string, quantity int) (int64, error)
	Delete(model string) (int64, error)
	DeleteAll() error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByModel 根据型号获取商品
func (r *GormProductRepository) GetByModel(model string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("model = ?", model).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, error) {
	query := r.db.Model(&models.Product{})
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if model := strings.TrimSpace(filter.Model); model != "" {
		query = query.Where("model = ?", model)
	}
	if filter.OnlyAvailable {
		query = query.Where("quantity > 0")
	}

	var products []models.Product
	if err := query.Order("model ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// IncreaseQuantity 增加在库数量（到货）
func (r *GormProductRepository) IncreaseQuantity(model string, quantity int) (int64, error) {
	if quantity <= 0 {
		return 0, errors.New("invalid quantity increase params")
	}
	result := r.db.Model(&models.Product{}).
		Where("model = ?", model).
		Update("quantity", gorm.Expr("quantity + ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DecreaseQuantity 扣减在库数量（售出或结账），WHERE 中校验余量防止超卖
func (r *GormProductRepository) DecreaseQuantity(model string, quantity int) (int64, error) {
	if quantity <= 0 {
		return 0, errors.New("invalid quantity decrease params")
	}
	result := r.db.Model(&models.Product{}).
		Where("model = ? AND quantity >= ?", model, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Delete 删除商品
func (r *GormProductRepository) Delete(model string) (int64, error) {
	result := r.db.Where("model = ?", model).Delete(&models.Product{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteAll 清空商品表
func (r *GormProductRepository) DeleteAll() error {
	return r.db.Where("1 = 1").Delete(&models.Product{}).Error
}
