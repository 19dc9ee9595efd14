package provider

import (
	"github.com/ezelectronics/ezelectronics/internal/authz"
	"github.com/ezelectronics/ezelectronics/internal/cache"
	"github.com/ezelectronics/ezelectronics/internal/config"
	"github.com/ezelectronics/ezelectronics/internal/logger"
	"github.com/ezelectronics/ezelectronics/internal/models"
	"github.com/ezelectronics/ezelectronics/internal/queue"
	"github.com/ezelectronics/ezelectronics/internal/repository"
	"github.com/ezelectronics/ezelectronics/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo       repository.UserRepository
	ProductRepo    repository.ProductRepository
	CartRepo       repository.CartRepository
	ReviewRepo     repository.ReviewRepository
	StockAlertRepo repository.StockAlertRepository

	// Services
	AuthzService   *authz.Service
	AuthService    *service.AuthService
	UserService    *service.UserService
	ProductService *service.ProductService
	CartService    *service.CartService
	ReviewService  *service.ReviewService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.StockAlertRepo = repository.NewStockAlertRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.UserService = service.NewUserService(c.Config, c.UserRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CartRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.QueueClient, c.Config.Stock.AlertThreshold)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ProductRepo)
}
