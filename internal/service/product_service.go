package service

import (
	"strings"

	"github.com/ezelectronics/ezelectronics/internal/constants"
	"github.com/ezelectronics/ezelectronics/internal/models"
	"github.com/ezelectronics/ezelectronics/internal/repository"

	"gorm.io/gorm"
)

// RegisterProductInput 商品登记输入
type RegisterProductInput struct {
	Model        string
	Category     string
	Quantity     int
	Details      string
	SellingPrice models.Money
	ArrivalDate  models.Date
}

// ProductService 商品服务
type ProductService struct {
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, cartRepo repository.CartRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		cartRepo:    cartRepo,
	}
}

// RegisterProducts 登记一批到货的新商品（同一型号一行，数量为到货件数）
func (s *ProductService) RegisterProducts(input RegisterProductInput) error {
	if !constants.IsValidCategory(input.Category) {
		return ErrInvalidCategory
	}

	arrivalDate := input.ArrivalDate
	if arrivalDate.IsZero() {
		arrivalDate = models.Today()
	}
	if arrivalDate.After(models.Today()) {
		return ErrInvalidArrivalDate
	}

	existing, err := s.productRepo.GetByModel(input.Model)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrProductAlreadyExists
	}

	product := &models.Product{
		Model:        input.Model,
		Category:     input.Category,
		Quantity:     input.Quantity,
		Details:      input.Details,
		SellingPrice: input.SellingPrice,
		ArrivalDate:  arrivalDate,
	}
	return s.productRepo.Create(product)
}

// ChangeProductQuantity 到货补充在库数量，返回补充后的总量
func (s *ProductService) ChangeProductQuantity(model string, quantity int, changeDate models.Date) (int, error) {
	product, err := s.productRepo.GetByModel(model)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, ErrProductNotFound
	}

	if changeDate.IsZero() {
		changeDate = models.Today()
	}
	if changeDate.After(models.Today()) || changeDate.Before(product.ArrivalDate) {
		return 0, ErrInvalidChangeDate
	}

	affected, err := s.productRepo.IncreaseQuantity(model, quantity)
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, ErrProductNotFound
	}
	return product.Quantity + quantity, nil
}

// SellProduct 售出商品并扣减库存，返回剩余数量
func (s *ProductService) SellProduct(model string, quantity int, sellingDate models.Date) (int, error) {
	product, err := s.productRepo.GetByModel(model)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, ErrProductNotFound
	}

	if sellingDate.IsZero() {
		sellingDate = models.Today()
	}
	if sellingDate.After(models.Today()) || sellingDate.Before(product.ArrivalDate) {
		return 0, ErrInvalidSellingDate
	}

	if product.Quantity == 0 {
		return 0, ErrEmptyProductStock
	}
	if product.Quantity < quantity {
		return 0, ErrLowProductStock
	}

	affected, err := s.productRepo.DecreaseQuantity(model, quantity)
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		// 校验与扣减之间被并发售出
		return 0, ErrLowProductStock
	}
	return product.Quantity - quantity, nil
}

// GetProducts 商品列表（grouping 为空返回全量，category/model 互斥）
func (s *ProductService) GetProducts(grouping, category, model string) ([]models.Product, error) {
	filter, err := s.buildListFilter(grouping, category, model, false)
	if err != nil {
		return nil, err
	}
	return s.listWithModelCheck(filter)
}

// GetAvailableProducts 有货商品列表
func (s *ProductService) GetAvailableProducts(grouping, category, model string) ([]models.Product, error) {
	filter, err := s.buildListFilter(grouping, category, model, true)
	if err != nil {
		return nil, err
	}
	return s.listWithModelCheck(filter)
}

// DeleteProduct 删除商品，并同步从所有未支付购物车整行移除
func (s *ProductService) DeleteProduct(model string) error {
	product, err := s.productRepo.GetByModel(model)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}

	return s.productRepo.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)

		cartIDs, err := cartRepo.UnpaidCartIDsWithModel(model)
		if err != nil {
			return err
		}
		for _, cartID := range cartIDs {
			if err := cartRepo.RemoveLineItemEntirely(cartID, model); err != nil {
				return err
			}
		}

		affected, err := productRepo.Delete(model)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrProductNotFound
		}
		return nil
	})
}

// DeleteAllProducts 清空库存，并同步清空所有未支付购物车
func (s *ProductService) DeleteAllProducts() error {
	return s.productRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.cartRepo.WithTx(tx).EmptyAllUnpaidCarts(); err != nil {
			return err
		}
		return s.productRepo.WithTx(tx).DeleteAll()
	})
}

func (s *ProductService) buildListFilter(grouping, category, model string, onlyAvailable bool) (repository.ProductListFilter, error) {
	grouping = strings.TrimSpace(grouping)
	category = strings.TrimSpace(category)
	model = strings.TrimSpace(model)

	filter := repository.ProductListFilter{OnlyAvailable: onlyAvailable}
	switch grouping {
	case "":
		if category != "" || model != "" {
			return filter, ErrInvalidGrouping
		}
	case constants.GroupingCategory:
		if category == "" || model != "" {
			return filter, ErrInvalidGrouping
		}
		if !constants.IsValidCategory(category) {
			return filter, ErrInvalidCategory
		}
		filter.Category = category
	case constants.GroupingModel:
		if model == "" || category != "" {
			return filter, ErrInvalidGrouping
		}
		filter.Model = model
	default:
		return filter, ErrInvalidGrouping
	}
	return filter, nil
}

// listWithModelCheck 按型号过滤时，型号不存在要报 404 而不是返回空表
func (s *ProductService) listWithModelCheck(filter repository.ProductListFilter) ([]models.Product, error) {
	if strings.TrimSpace(filter.Model) != "" {
		product, err := s.productRepo.GetByModel(filter.Model)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, ErrProductNotFound
		}
	}
	products, err := s.productRepo.List(filter)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}
