package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ezelectronics/ezelectronics/internal/constants"
	"github.com/ezelectronics/ezelectronics/internal/models"
	"github.com/ezelectronics/ezelectronics/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (*ProductService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:product_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Cart{},
		&models.CartLineItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	svc := NewProductService(repository.NewProductRepository(db), repository.NewCartRepository(db))
	return svc, db
}

func registerTestProduct(t *testing.T, svc *ProductService, model, category string, quantity int, price float64) {
	t.Helper()
	err := svc.RegisterProducts(RegisterProductInput{
		Model:        model,
		Category:     category,
		Quantity:     quantity,
		SellingPrice: models.NewMoneyFromFloat(price),
		ArrivalDate:  models.Today(),
	})
	if err != nil {
		t.Fatalf("register product %s failed: %v", model, err)
	}
}

func TestRegisterProducts(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	registerTestProduct(t, svc, "iPhone 13", constants.CategorySmartphone, 10, 899)

	var product models.Product
	if err := db.Where("model = ?", "iPhone 13").First(&product).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if product.Quantity != 10 {
		t.Fatalf("quantity want 10 got %d", product.Quantity)
	}

	err := svc.RegisterProducts(RegisterProductInput{
		Model:        "iPhone 13",
		Category:     constants.CategorySmartphone,
		Quantity:     5,
		SellingPrice: models.NewMoneyFromFloat(899),
		ArrivalDate:  models.Today(),
	})
	if !errors.Is(err, ErrProductAlreadyExists) {
		t.Fatalf("duplicate register want ErrProductAlreadyExists got %v", err)
	}
}

func TestRegisterProductsValidation(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	err := svc.RegisterProducts(RegisterProductInput{
		Model:        "Widget",
		Category:     "Gadget",
		Quantity:     1,
		SellingPrice: models.NewMoneyFromFloat(10),
	})
	if !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("invalid category want ErrInvalidCategory got %v", err)
	}

	err = svc.RegisterProducts(RegisterProductInput{
		Model:        "iPhone 13",
		Category:     constants.CategorySmartphone,
		Quantity:     1,
		SellingPrice: models.NewMoneyFromFloat(899),
		ArrivalDate:  models.DateOf(time.Now().AddDate(0, 0, 2)),
	})
	if !errors.Is(err, ErrInvalidArrivalDate) {
		t.Fatalf("future arrival want ErrInvalidArrivalDate got %v", err)
	}
}

func TestChangeProductQuantity(t *testing.T) {
	svc, _ := setupProductServiceTest(t)
	registerTestProduct(t, svc, "iPhone 13", constants.CategorySmartphone, 10, 899)

	quantity, err := svc.ChangeProductQuantity("iPhone 13", 5, models.Today())
	if err != nil {
		t.Fatalf("change quantity failed: %v", err)
	}
	if quantity != 15 {
		t.Fatalf("quantity want 15 got %d", quantity)
	}

	if _, err := svc.ChangeProductQuantity("missing", 5, models.Today()); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("unknown model want ErrProductNotFound got %v", err)
	}

	future := models.DateOf(time.Now().AddDate(0, 0, 2))
	if _, err := svc.ChangeProductQuantity("iPhone 13", 5, future); !errors.Is(err, ErrInvalidChangeDate) {
		t.Fatalf("future change date want ErrInvalidChangeDate got %v", err)
	}
	beforeArrival := models.DateOf(time.Now().AddDate(0, 0, -2))
	if _, err := svc.ChangeProductQuantity("iPhone 13", 5, beforeArrival); !errors.Is(err, ErrInvalidChangeDate) {
		t.Fatalf("change before arrival want ErrInvalidChangeDate got %v", err)
	}
}

func TestSellProduct(t *testing.T) {
	svc, _ := setupProductServiceTest(t)
	registerTestProduct(t, svc, "iPhone 13", constants.CategorySmartphone, 3, 899)

	remaining, err := svc.SellProduct("iPhone 13", 2, models.Today())
	if err != nil {
		t.Fatalf("sell failed: %v", err)
	}
	if remaining != 1 {
		t.Fatalf("remaining want 1 got %d", remaining)
	}

	if _, err := svc.SellProduct("iPhone 13", 2, models.Today()); !errors.Is(err, ErrLowProductStock) {
		t.Fatalf("oversell want ErrLowProductStock got %v", err)
	}

	if _, err := svc.SellProduct("iPhone 13", 1, models.Today()); err != nil {
		t.Fatalf("sell last unit failed: %v", err)
	}
	if _, err := svc.SellProduct("iPhone 13", 1, models.Today()); !errors.Is(err, ErrEmptyProductStock) {
		t.Fatalf("sold out want ErrEmptyProductStock got %v", err)
	}

	if _, err := svc.SellProduct("missing", 1, models.Today()); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("unknown model want ErrProductNotFound got %v", err)
	}
	beforeArrival := models.DateOf(time.Now().AddDate(0, 0, -2))
	if _, err := svc.SellProduct("iPhone 13", 1, beforeArrival); !errors.Is(err, ErrInvalidSellingDate) {
		t.Fatalf("selling before arrival want ErrInvalidSellingDate got %v", err)
	}
}

func TestGetProductsGrouping(t *testing.T) {
	svc, _ := setupProductServiceTest(t)
	registerTestProduct(t, svc, "iPhone 13", constants.CategorySmartphone, 10, 899)
	registerTestProduct(t, svc, "ThinkPad X1", constants.CategoryLaptop, 0, 1499)

	all, err := svc.GetProducts("", "", "")
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("all products want 2 got %d", len(all))
	}

	byCategory, err := svc.GetProducts(constants.GroupingCategory, constants.CategoryLaptop, "")
	if err != nil {
		t.Fatalf("list by category failed: %v", err)
	}
	if len(byCategory) != 1 || byCategory[0].Model != "ThinkPad X1" {
		t.Fatalf("category filter want ThinkPad X1 got %+v", byCategory)
	}

	byModel, err := svc.GetProducts(constants.GroupingModel, "", "iPhone 13")
	if err != nil {
		t.Fatalf("list by model failed: %v", err)
	}
	if len(byModel) != 1 {
		t.Fatalf("model filter want 1 got %d", len(byModel))
	}

	if _, err := svc.GetProducts("", constants.CategoryLaptop, ""); !errors.Is(err, ErrInvalidGrouping) {
		t.Fatalf("stray category want ErrInvalidGrouping got %v", err)
	}
	if _, err := svc.GetProducts(constants.GroupingCategory, "", ""); !errors.Is(err, ErrInvalidGrouping) {
		t.Fatalf("missing category want ErrInvalidGrouping got %v", err)
	}
	if _, err := svc.GetProducts(constants.GroupingCategory, constants.CategoryLaptop, "iPhone 13"); !errors.Is(err, ErrInvalidGrouping) {
		t.Fatalf("category with model want ErrInvalidGrouping got %v", err)
	}
	if _, err := svc.GetProducts(constants.GroupingCategory, "Gadget", ""); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("bad category want ErrInvalidCategory got %v", err)
	}
	if _, err := svc.GetProducts(constants.GroupingModel, "", "missing"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("unknown model want ErrProductNotFound got %v", err)
	}
}

func TestGetAvailableProducts(t *testing.T) {
	svc, _ := setupProductServiceTest(t)
	registerTestProduct(t, svc, "iPhone 13", constants.CategorySmartphone, 10, 899)
	registerTestProduct(t, svc, "ThinkPad X1", constants.CategoryLaptop, 0, 1499)

	available, err := svc.GetAvailableProducts("", "", "")
	if err != nil {
		t.Fatalf("list available failed: %v", err)
	}
	if len(available) != 1 || available[0].Model != "iPhone 13" {
		t.Fatalf("available want iPhone 13 only got %+v", available)
	}

	soldOut, err := svc.GetAvailableProducts(constants.GroupingModel, "", "ThinkPad X1")
	if err != nil {
		t.Fatalf("list sold-out model failed: %v", err)
	}
	if len(soldOut) != 0 {
		t.Fatalf("sold-out model want empty list got %+v", soldOut)
	}

	if _, err := svc.GetAvailableProducts(constants.GroupingModel, "", "missing"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("unknown model want ErrProductNotFound got %v", err)
	}
}

func TestDeleteProductCleansUnpaidCarts(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	registerTestProduct(t, svc, "iPhone 13", constants.CategorySmartphone, 10, 899)
	registerTestProduct(t, svc, "Dyson V11", constants.CategoryAppliance, 10, 499)

	cartSvc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db), nil, 0)
	if err := cartSvc.AddToCart("alice", "iPhone 13"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := cartSvc.AddToCart("alice", "iPhone 13"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := cartSvc.AddToCart("alice", "Dyson V11"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	paymentDate := models.Today()
	paid := models.Cart{
		Customer:    "bob",
		Paid:        true,
		PaymentDate: &paymentDate,
		Total:       models.NewMoneyFromFloat(899),
	}
	if err := db.Create(&paid).Error; err != nil {
		t.Fatalf("create paid cart failed: %v", err)
	}
	paidItem := models.CartLineItem{
		CartID:   paid.ID,
		Model:    "iPhone 13",
		Quantity: 1,
		Category: constants.CategorySmartphone,
		Price:    models.NewMoneyFromFloat(899),
	}
	if err := db.Create(&paidItem).Error; err != nil {
		t.Fatalf("create paid line item failed: %v", err)
	}

	if err := svc.DeleteProduct("iPhone 13"); err != nil {
		t.Fatalf("delete product failed: %v", err)
	}
	if err := svc.DeleteProduct("iPhone 13"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("second delete want ErrProductNotFound got %v", err)
	}

	cart, err := cartSvc.GetCurrentCart("alice")
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Model != "Dyson V11" {
		t.Fatalf("unpaid cart should keep only Dyson V11, got %+v", cart.Items)
	}
	if !cart.Total.Equal(models.NewMoneyFromFloat(499).Decimal) {
		t.Fatalf("unpaid cart total want 499.00 got %s", cart.Total)
	}

	var paidItems int64
	if err := db.Model(&models.CartLineItem{}).Where("cart_id = ?", paid.ID).Count(&paidItems).Error; err != nil {
		t.Fatalf("count paid items failed: %v", err)
	}
	if paidItems != 1 {
		t.Fatalf("paid cart line items want 1 got %d", paidItems)
	}
}

func TestDeleteAllProductsEmptiesUnpaidCarts(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	registerTestProduct(t, svc, "iPhone 13", constants.CategorySmartphone, 10, 899)

	cartSvc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db), nil, 0)
	if err := cartSvc.AddToCart("alice", "iPhone 13"); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := svc.DeleteAllProducts(); err != nil {
		t.Fatalf("delete all products failed: %v", err)
	}

	var productCount int64
	if err := db.Model(&models.Product{}).Count(&productCount).Error; err != nil {
		t.Fatalf("count products failed: %v", err)
	}
	if productCount != 0 {
		t.Fatalf("product count want 0 got %d", productCount)
	}

	cart, err := cartSvc.GetCurrentCart("alice")
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("unpaid cart items want 0 got %d", len(cart.Items))
	}
	if !cart.Total.IsZero() {
		t.Fatalf("unpaid cart total want 0 got %s", cart.Total)
	}
}
