package router

import (
	"fmt"
	"strings"

	"github.com/ezelectronics/ezelectronics/internal/cache"
	"github.com/ezelectronics/ezelectronics/internal/config"
	"github.com/ezelectronics/ezelectronics/internal/http/handlers"
	"github.com/ezelectronics/ezelectronics/internal/logger"
	"github.com/ezelectronics/ezelectronics/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	h := handlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "ez"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "Too many login attempts",
	}
	registerRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:register", redisPrefix),
		WindowSeconds: cfg.Security.RegisterRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.RegisterRateLimit.MaxAttempts,
		Message:       "Too many registrations",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	base := r.Group("/ezelectronics")
	{
		// 公开接口
		base.POST("/sessions", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), h.Login)
		base.POST("/users", RateLimitMiddleware(redisClient, registerRule, KeyByIP), h.RegisterUser)

		// 需要登录的接口
		authed := base.Group("")
		authed.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			authed.GET("/sessions/current", h.CurrentSession)
			authed.DELETE("/sessions/current", h.Logout)

			authed.GET("/products/available", h.ListAvailableProducts)
			authed.GET("/reviews/:model", h.ListReviews)

			// 本人或管理员，具体规则在 service 层判定
			authed.GET("/users/:username", h.GetUser)
			authed.PATCH("/users/:username", h.UpdateUser)
			authed.DELETE("/users/:username", h.DeleteUser)

			// 按角色授权的接口
			rbac := authed.Group("")
			rbac.Use(RBACMiddleware(c.AuthzService))
			{
				// 购物车（顾客）
				rbac.GET("/carts", h.GetCurrentCart)
				rbac.POST("/carts", h.AddToCart)
				rbac.PATCH("/carts", h.CheckoutCart)
				rbac.GET("/carts/history", h.GetCartHistory)
				rbac.DELETE("/carts/products/:model", h.RemoveProductFromCart)
				rbac.DELETE("/carts/current", h.ClearCurrentCart)

				// 购物车（经理/管理员）
				rbac.GET("/carts/all", h.ListAllCarts)
				rbac.DELETE("/carts", h.DeleteAllCarts)

				// 商品（经理/管理员）
				rbac.POST("/products", h.RegisterProducts)
				rbac.GET("/products", h.ListProducts)
				rbac.PATCH("/products/:model", h.ChangeProductQuantity)
				rbac.PATCH("/products/:model/sell", h.SellProduct)
				rbac.DELETE("/products/:model", h.DeleteProduct)
				rbac.DELETE("/products", h.DeleteAllProducts)
				rbac.GET("/stock-alerts", h.ListStockAlerts)

				// 评价
				rbac.POST("/reviews/:model", h.AddReview)
				rbac.DELETE("/reviews/:model", h.DeleteOwnReview)
				rbac.DELETE("/reviews/:model/all", h.DeleteProductReviews)
				rbac.DELETE("/reviews", h.DeleteAllReviews)

				// 用户管理（管理员）
				rbac.GET("/users", h.ListUsers)
				rbac.GET("/users/roles/:role", h.ListUsersByRole)
				rbac.DELETE("/users", h.DeleteAllUsers)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
