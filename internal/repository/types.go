package repository

// ProductListFilter 商品列表过滤条件
type ProductListFilter struct {
	Category      string // 按类别过滤（可选）
	Model         string // 按型号过滤（可选）
	OnlyAvailable bool   // 仅返回有货商品
}

// StockCheckRow 结账前库存校验行（购物车行项与在库数量的联查结果）
type StockCheckRow struct {
	Model           string `gorm:"column:model"`
	CartQuantity    int    `gorm:"column:cart_quantity"`
	ProductQuantity int    `gorm:"column:product_quantity"`
}
