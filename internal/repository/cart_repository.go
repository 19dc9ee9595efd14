package repository

import (
	"errors"

	"github.com/ezelectronics/ezelectronics/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	CurrentCartID(customer string) (uint, error)
	Create(cart *models.Cart) error
	GetByID(id uint) (*models.Cart, error)
	AddLineItem(cartID uint, product *models.Product) error
	GetLineItem(cartID uint, model string) (*models.CartLineItem, error)
	StockCheckRows(cartID uint) ([]StockCheckRow, error)
	FinalizeCheckout(cartID uint, paymentDate models.Date) (int64, error)
	PastCarts(customer string) ([]models.Cart, error)
	RemoveLineItem(cartID uint, model string) error
	RemoveLineItemEntirely(cartID uint, model string) error
	UnpaidCartIDsWithModel(model string) ([]uint, error)
	EmptyCart(cartID uint) error
	EmptyAllUnpaidCarts() error
	AllCarts() ([]models.Cart, error)
	DeleteAll() error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// Transaction 执行事务
func (r *GormCartRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// CurrentCartID 获取顾客当前未支付购物车 ID，无则返回 0
func (r *GormCartRepository) CurrentCartID(customer string) (uint, error) {
	var cart models.Cart
	err := r.db.Select("id").Where("customer = ? AND paid = ?", customer, false).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return cart.ID, nil
}

// Create 创建购物车
func (r *GormCartRepository) Create(cart *models.Cart) error {
	return r.db.Create(cart).Error
}

// GetByID 获取购物车（含行项）
func (r *GormCartRepository) GetByID(id uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("cart_line_items.id ASC")
	}).First(&cart, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []models.CartLineItem{}
	}
	return &cart, nil
}

// AddLineItem 加入一件商品：已有行项则数量 +1，否则以当前售价与类别建快照行，合计 +单价；
// 行项写入与合计更新在同一事务内完成
func (r *GormCartRepository) AddLineItem(cartID uint, product *models.Product) error {
	if product == nil {
		return errors.New("invalid add line item params")
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.CartLineItem
		err := tx.Where("cart_id = ? AND model = ?", cartID, product.Model).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			item := models.CartLineItem{
				CartID:   cartID,
				Model:    product.Model,
				Quantity: 1,
				Category: product.Category,
				Price:    product.SellingPrice,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := tx.Model(&existing).Update("quantity", gorm.Expr("quantity + ?", 1)).Error; err != nil {
				return err
			}
		}
		return addToTotal(tx, cartID, product.SellingPrice)
	})
}

// GetLineItem 获取购物车行项
func (r *GormCartRepository) GetLineItem(cartID uint, model string) (*models.CartLineItem, error) {
	var item models.CartLineItem
	err := r.db.Where("cart_id = ? AND model = ?", cartID, model).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// StockCheckRows 联查行项与商品在库数量，按行项加入顺序返回，供结账前逐行校验
func (r *GormCartRepository) StockCheckRows(cartID uint) ([]StockCheckRow, error) {
	var rows []StockCheckRow
	err := r.db.Table("cart_line_items").
		Select("cart_line_items.model AS model, cart_line_items.quantity AS cart_quantity, products.quantity AS product_quantity").
		Joins("JOIN products ON products.model = cart_line_items.model").
		Where("cart_line_items.cart_id = ?", cartID).
		Order("cart_line_items.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FinalizeCheckout 结账定稿：仅当购物车仍未支付时置为已支付，返回受影响行数
func (r *GormCartRepository) FinalizeCheckout(cartID uint, paymentDate models.Date) (int64, error) {
	result := r.db.Model(&models.Cart{}).
		Where("id = ? AND paid = ?", cartID, false).
		Updates(map[string]interface{}{
			"paid":         true,
			"payment_date": paymentDate,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// PastCarts 历史已支付购物车（按支付日期倒序，含行项）
func (r *GormCartRepository) PastCarts(customer string) ([]models.Cart, error) {
	carts := []models.Cart{}
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("cart_line_items.id ASC")
	}).Where("customer = ? AND paid = ?", customer, true).
		Order("payment_date DESC, id DESC").
		Find(&carts).Error
	if err != nil {
		return nil, err
	}
	for i := range carts {
		if carts[i].Items == nil {
			carts[i].Items = []models.CartLineItem{}
		}
	}
	return carts, nil
}

// RemoveLineItem 移出一件商品：数量大于 1 则 -1，等于 1 则删行，合计 -单价；
// 行项变更与合计更新在同一事务内完成
func (r *GormCartRepository) RemoveLineItem(cartID uint, model string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var item models.CartLineItem
		if err := tx.Where("cart_id = ? AND model = ?", cartID, model).First(&item).Error; err != nil {
			return err
		}
		if item.Quantity > 1 {
			if err := tx.Model(&item).Update("quantity", gorm.Expr("quantity - ?", 1)).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Delete(&item).Error; err != nil {
				return err
			}
		}
		return subFromTotal(tx, cartID, item.Price)
	})
}

// RemoveLineItemEntirely 整行移除（商品从库存删除时同步清理未支付购物车），合计 -单价×数量
func (r *GormCartRepository) RemoveLineItemEntirely(cartID uint, model string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var item models.CartLineItem
		err := tx.Where("cart_id = ? AND model = ?", cartID, model).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Delete(&item).Error; err != nil {
			return err
		}
		return subFromTotal(tx, cartID, item.Subtotal())
	})
}

// UnpaidCartIDsWithModel 包含指定型号行项的未支付购物车 ID 列表
func (r *GormCartRepository) UnpaidCartIDsWithModel(model string) ([]uint, error) {
	var ids []uint
	err := r.db.Table("cart_line_items").
		Select("cart_line_items.cart_id").
		Joins("JOIN carts ON carts.id = cart_line_items.cart_id").
		Where("cart_line_items.model = ? AND carts.paid = ?", model, false).
		Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// EmptyCart 清空购物车行项并归零合计，两步在同一事务内完成
func (r *GormCartRepository) EmptyCart(cartID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&models.CartLineItem{}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Cart{}).Where("id = ?", cartID).
			Update("total", models.ZeroMoney()).Error
	})
}

// EmptyAllUnpaidCarts 清空全部未支付购物车（库存整体清空时同步清理），两步在同一事务内完成
func (r *GormCartRepository) EmptyAllUnpaidCarts() error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("cart_id IN (?)",
			tx.Model(&models.Cart{}).Select("id").Where("paid = ?", false),
		).Delete(&models.CartLineItem{}).Error
		if err != nil {
			return err
		}
		return tx.Model(&models.Cart{}).Where("paid = ?", false).
			Update("total", models.ZeroMoney()).Error
	})
}

// AllCarts 全量购物车（含已支付与未支付，管理端使用）
func (r *GormCartRepository) AllCarts() ([]models.Cart, error) {
	carts := []models.Cart{}
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("cart_line_items.id ASC")
	}).Order("id ASC").Find(&carts).Error
	if err != nil {
		return nil, err
	}
	for i := range carts {
		if carts[i].Items == nil {
			carts[i].Items = []models.CartLineItem{}
		}
	}
	return carts, nil
}

// DeleteAll 清空购物车与行项
func (r *GormCartRepository) DeleteAll() error {
	if err := r.db.Where("1 = 1").Delete(&models.CartLineItem{}).Error; err != nil {
		return err
	}
	return r.db.Where("1 = 1").Delete(&models.Cart{}).Error
}

func addToTotal(tx *gorm.DB, cartID uint, amount models.Money) error {
	return tx.Model(&models.Cart{}).Where("id = ? AND paid = ?", cartID, false).
		Update("total", gorm.Expr("total + ?", amount)).Error
}

func subFromTotal(tx *gorm.DB, cartID uint, amount models.Money) error {
	return tx.Model(&models.Cart{}).Where("id = ? AND paid = ?", cartID, false).
		Update("total", gorm.Expr("total - ?", amount)).Error
}
