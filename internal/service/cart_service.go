package service

import (
	"github.com/ezelectronics/ezelectronics/internal/logger"
	"github.com/ezelectronics/ezelectronics/internal/models"
	"github.com/ezelectronics/ezelectronics/internal/queue"
	"github.com/ezelectronics/ezelectronics/internal/repository"

	"gorm.io/gorm"
)

// CartService 购物车服务
type CartService struct {
	cartRepo       repository.CartRepository
	productRepo    repository.ProductRepository
	queueClient    *queue.Client
	alertThreshold int
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, queueClient *queue.Client, alertThreshold int) *CartService {
	return &CartService{
		cartRepo:       cartRepo,
		productRepo:    productRepo,
		queueClient:    queueClient,
		alertThreshold: alertThreshold,
	}
}

// AddToCart 加入一件商品到当前购物车；商品校验通过后才会创建购物车
func (s *CartService) AddToCart(customer, model string) error {
	product, err := s.productRepo.GetByModel(model)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if product.Quantity <= 0 {
		return ErrProductSoldOut
	}

	cartID, err := s.cartRepo.CurrentCartID(customer)
	if err != nil {
		return err
	}
	if cartID == 0 {
		cart := &models.Cart{Customer: customer, Total: models.ZeroMoney()}
		if err := s.cartRepo.Create(cart); err != nil {
			return err
		}
		cartID = cart.ID
	}
	return s.cartRepo.AddLineItem(cartID, product)
}

// GetCurrentCart 当前购物车；没有未支付购物车时返回空视图而非错误
func (s *CartService) GetCurrentCart(customer string) (*models.Cart, error) {
	cartID, err := s.cartRepo.CurrentCartID(customer)
	if err != nil {
		return nil, err
	}
	if cartID == 0 {
		empty := models.EmptyCartView(customer)
		return &empty, nil
	}
	cart, err := s.cartRepo.GetByID(cartID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		empty := models.EmptyCartView(customer)
		return &empty, nil
	}
	return cart, nil
}

// Checkout 结账：库存校验、扣减与定稿在同一事务内完成，失败则整体回滚
func (s *CartService) Checkout(customer string) error {
	cartID, err := s.cartRepo.CurrentCartID(customer)
	if err != nil {
		return err
	}
	if cartID == 0 {
		return ErrCartNotFound
	}

	paymentDate := models.Today()
	var checkedModels []string
	err = s.cartRepo.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)

		rows, err := cartRepo.StockCheckRows(cartID)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return ErrCartEmpty
		}
		if err := classifyStockRows(rows); err != nil {
			return err
		}

		for _, row := range rows {
			affected, err := productRepo.DecreaseQuantity(row.Model, row.CartQuantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrLowProductStock
			}
			checkedModels = append(checkedModels, row.Model)
		}

		affected, err := cartRepo.FinalizeCheckout(cartID, paymentDate)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrCartNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notifyLowStock(checkedModels)
	return nil
}

// GetCustomerCarts 历史已支付购物车（按支付日期倒序）
func (s *CartService) GetCustomerCarts(customer string) ([]models.Cart, error) {
	return s.cartRepo.PastCarts(customer)
}

// RemoveProductFromCart 从当前购物车移出一件商品
func (s *CartService) RemoveProductFromCart(customer, model string) error {
	product, err := s.productRepo.GetByModel(model)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}

	cartID, err := s.cartRepo.CurrentCartID(customer)
	if err != nil {
		return err
	}
	if cartID == 0 {
		return ErrCartNotFound
	}
	cart, err := s.cartRepo.GetByID(cartID)
	if err != nil {
		return err
	}
	if cart == nil || len(cart.Items) == 0 {
		return ErrCartNotFound
	}

	item, err := s.cartRepo.GetLineItem(cartID, model)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrProductNotInCart
	}
	return s.cartRepo.RemoveLineItem(cartID, model)
}

// ClearCart 清空当前购物车
func (s *CartService) ClearCart(customer string) error {
	cartID, err := s.cartRepo.CurrentCartID(customer)
	if err != nil {
		return err
	}
	if cartID == 0 {
		return ErrCartNotFound
	}
	return s.cartRepo.EmptyCart(cartID)
}

// GetAllCarts 全量购物车（管理端）
func (s *CartService) GetAllCarts() ([]models.Cart, error) {
	return s.cartRepo.AllCarts()
}

// DeleteAllCarts 清空所有购物车（管理端）
func (s *CartService) DeleteAllCarts() error {
	return s.cartRepo.DeleteAll()
}

// classifyStockRows 按行项加入顺序逐行校验库存，首个违规行决定返回的错误
func classifyStockRows(rows []repository.StockCheckRow) error {
	for _, row := range rows {
		if row.ProductQuantity == 0 {
			return ErrEmptyProductStock
		}
		if row.ProductQuantity < row.CartQuantity {
			return ErrLowProductStock
		}
	}
	return nil
}

// notifyLowStock 结账提交后检查剩余量，低于阈值则入队提醒；失败只记日志
func (s *CartService) notifyLowStock(checkedModels []string) {
	if s.alertThreshold <= 0 || !s.queueClient.Enabled() {
		return
	}
	for _, model := range checkedModels {
		product, err := s.productRepo.GetByModel(model)
		if err != nil || product == nil {
			continue
		}
		if product.Quantity > s.alertThreshold {
			continue
		}
		payload := queue.StockAlertPayload{
			Model:     product.Model,
			Remaining: product.Quantity,
			Threshold: s.alertThreshold,
		}
		if err := s.queueClient.EnqueueStockAlert(payload); err != nil {
			logger.Warnw("stock_alert_enqueue_failed", "model", product.Model, "error", err)
		}
	}
}
