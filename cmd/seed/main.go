package main

import (
	"github.com/ezelectronics/ezelectronics/internal/config"
	"github.com/ezelectronics/ezelectronics/internal/constants"
	"github.com/ezelectronics/ezelectronics/internal/logger"
	"github.com/ezelectronics/ezelectronics/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 示例账号
	users := []struct {
		Username string
		Name     string
		Surname  string
		Role     string
		Password string
	}{
		{Username: "customer", Name: "Carla", Surname: "Rossi", Role: constants.RoleCustomer, Password: "customer123"},
		{Username: "manager", Name: "Marco", Surname: "Bianchi", Role: constants.RoleManager, Password: "manager123"},
	}
	for _, u := range users {
		var existing models.User
		if err := models.DB.Where("username = ?", u.Username).First(&existing).Error; err == nil {
			stdLog.Printf("User already exists: %s", u.Username)
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Fatalf("Failed to hash password for %s: %v", u.Username, err)
		}
		user := models.User{
			Username:     u.Username,
			Name:         u.Name,
			Surname:      u.Surname,
			Role:         u.Role,
			PasswordHash: string(hash),
		}
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Printf("Failed to create user %s: %v", u.Username, err)
		} else {
			stdLog.Printf("Created user: %s (%s)", u.Username, u.Role)
		}
	}

	// 示例商品
	products := []models.Product{
		{
			Model:        "iPhone 13",
			Category:     constants.CategorySmartphone,
			Quantity:     10,
			Details:      "128GB, Midnight",
			SellingPrice: models.NewMoneyFromFloat(899),
			ArrivalDate:  models.Today(),
		},
		{
			Model:        "ThinkPad X1 Carbon",
			Category:     constants.CategoryLaptop,
			Quantity:     5,
			Details:      "14 inch, 16GB RAM",
			SellingPrice: models.NewMoneyFromFloat(1499),
			ArrivalDate:  models.Today(),
		},
		{
			Model:        "Dyson V11",
			Category:     constants.CategoryAppliance,
			Quantity:     8,
			Details:      "Cordless vacuum cleaner",
			SellingPrice: models.NewMoneyFromFloat(499),
			ArrivalDate:  models.Today(),
		},
	}
	for _, p := range products {
		var existing models.Product
		if err := models.DB.Where("model = ?", p.Model).First(&existing).Error; err == nil {
			stdLog.Printf("Product already exists: %s", p.Model)
			continue
		}
		product := p
		if err := models.DB.Create(&product).Error; err != nil {
			stdLog.Printf("Failed to create product %s: %v", p.Model, err)
		} else {
			stdLog.Printf("Created product: %s x%d", p.Model, p.Quantity)
		}
	}

	stdLog.Println("Seed completed")
}
