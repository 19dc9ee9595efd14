package constants

// 用户角色常量
const (
	RoleCustomer = "Customer"
	RoleManager  = "Manager"
	RoleAdmin    = "Admin"
)

// 商品类别常量
const (
	CategorySmartphone = "Smartphone"
	CategoryLaptop     = "Laptop"
	CategoryAppliance  = "Appliance"
)

// 商品分组方式常量
const (
	GroupingCategory = "category"
	GroupingModel    = "model"
)

// 评分范围常量
const (
	ReviewScoreMin = 1
	ReviewScoreMax = 5
)

// 队列任务类型常量
const (
	TaskTypeStockAlert = "stock:alert"
)

// 队列名称常量
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// 缓存 key 前缀常量
const (
	CacheKeyAuthState = "auth:state:"
	CacheKeyRateLogin = "ratelimit:login"
	CacheKeyRateReg   = "ratelimit:register"
)

// IsValidRole 校验角色合法性
func IsValidRole(role string) bool {
	switch role {
	case RoleCustomer, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// IsValidCategory 校验商品类别合法性
func IsValidCategory(category string) bool {
	switch category {
	case CategorySmartphone, CategoryLaptop, CategoryAppliance:
		return true
	}
	return false
}
