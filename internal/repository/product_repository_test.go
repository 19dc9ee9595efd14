package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/ezelectronics/ezelectronics/internal/constants"
	"github.com/ezelectronics/ezelectronics/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupProductRepoTest(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:product_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewProductRepository(db), db
}

func createRepoProduct(t *testing.T, repo *GormProductRepository, model, category string, quantity int) {
	t.Helper()
	product := &models.Product{
		Model:        model,
		Category:     category,
		Quantity:     quantity,
		SellingPrice: models.NewMoneyFromFloat(100),
		ArrivalDate:  models.Today(),
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product %s failed: %v", model, err)
	}
}

func TestGetByModel(t *testing.T) {
	repo, _ := setupProductRepoTest(t)
	createRepoProduct(t, repo, "iPhone 13", constants.CategorySmartphone, 5)

	product, err := repo.GetByModel("iPhone 13")
	if err != nil {
		t.Fatalf("get by model failed: %v", err)
	}
	if product == nil || product.Quantity != 5 {
		t.Fatalf("product mismatch: %+v", product)
	}

	missing, err := repo.GetByModel("missing")
	if err != nil {
		t.Fatalf("get by model failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("missing model want nil got %+v", missing)
	}
}

func TestProductListFilters(t *testing.T) {
	repo, _ := setupProductRepoTest(t)
	createRepoProduct(t, repo, "iPhone 13", constants.CategorySmartphone, 5)
	createRepoProduct(t, repo, "Galaxy S23", constants.CategorySmartphone, 0)
	createRepoProduct(t, repo, "ThinkPad X1", constants.CategoryLaptop, 3)

	all, err := repo.List(ProductListFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("all products want 3 got %d", len(all))
	}
	if all[0].Model != "Galaxy S23" || all[2].Model != "iPhone 13" {
		t.Fatalf("unexpected order: %s, %s, %s", all[0].Model, all[1].Model, all[2].Model)
	}

	smartphones, err := repo.List(ProductListFilter{Category: constants.CategorySmartphone})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(smartphones) != 2 {
		t.Fatalf("smartphones want 2 got %d", len(smartphones))
	}

	available, err := repo.List(ProductListFilter{Category: constants.CategorySmartphone, OnlyAvailable: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(available) != 1 || available[0].Model != "iPhone 13" {
		t.Fatalf("available smartphones want only iPhone 13 got %+v", available)
	}

	byModel, err := repo.List(ProductListFilter{Model: "ThinkPad X1"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(byModel) != 1 || byModel[0].Category != constants.CategoryLaptop {
		t.Fatalf("by model want ThinkPad X1 got %+v", byModel)
	}
}

func TestIncreaseQuantity(t *testing.T) {
	repo, _ := setupProductRepoTest(t)
	createRepoProduct(t, repo, "iPhone 13", constants.CategorySmartphone, 5)

	affected, err := repo.IncreaseQuantity("iPhone 13", 10)
	if err != nil {
		t.Fatalf("increase quantity failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("affected want 1 got %d", affected)
	}
	product, _ := repo.GetByModel("iPhone 13")
	if product.Quantity != 15 {
		t.Fatalf("quantity want 15 got %d", product.Quantity)
	}

	affected, err = repo.IncreaseQuantity("missing", 10)
	if err != nil {
		t.Fatalf("increase quantity failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("missing model want 0 affected got %d", affected)
	}

	if _, err := repo.IncreaseQuantity("iPhone 13", 0); err == nil {
		t.Fatal("non-positive quantity must be rejected")
	}
}

func TestDecreaseQuantityGuard(t *testing.T) {
	repo, _ := setupProductRepoTest(t)
	createRepoProduct(t, repo, "iPhone 13", constants.CategorySmartphone, 3)

	affected, err := repo.DecreaseQuantity("iPhone 13", 2)
	if err != nil {
		t.Fatalf("decrease quantity failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("affected want 1 got %d", affected)
	}
	product, _ := repo.GetByModel("iPhone 13")
	if product.Quantity != 1 {
		t.Fatalf("quantity want 1 got %d", product.Quantity)
	}

	affected, err = repo.DecreaseQuantity("iPhone 13", 2)
	if err != nil {
		t.Fatalf("decrease quantity failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("oversell want 0 affected got %d", affected)
	}
	product, _ = repo.GetByModel("iPhone 13")
	if product.Quantity != 1 {
		t.Fatalf("quantity want 1 got %d", product.Quantity)
	}

	if _, err := repo.DecreaseQuantity("iPhone 13", -1); err == nil {
		t.Fatal("non-positive quantity must be rejected")
	}
}

func TestDeleteProduct(t *testing.T) {
	repo, db := setupProductRepoTest(t)
	createRepoProduct(t, repo, "iPhone 13", constants.CategorySmartphone, 5)
	createRepoProduct(t, repo, "ThinkPad X1", constants.CategoryLaptop, 3)

	affected, err := repo.Delete("iPhone 13")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("affected want 1 got %d", affected)
	}

	affected, err = repo.Delete("missing")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("missing model want 0 affected got %d", affected)
	}

	if err := repo.DeleteAll(); err != nil {
		t.Fatalf("delete all failed: %v", err)
	}
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		t.Fatalf("count products failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("product count want 0 got %d", count)
	}
}
