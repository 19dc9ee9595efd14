package models

import (
	"time"
)

// CartLineItem 购物车行项（Category 与 Price 为加入时的商品快照，加入后不随商品变动）
type CartLineItem struct {
	ID        uint      `gorm:"primarykey" json:"-"`                                          // 主键
	CartID    uint      `gorm:"not null;uniqueIndex:idx_cart_line_cart_model" json:"-"`       // 购物车ID
	Model     string    `gorm:"not null;uniqueIndex:idx_cart_line_cart_model" json:"model"`   // 商品型号
	Quantity  int       `gorm:"not null" json:"quantity"`                                     // 数量
	Category  string    `gorm:"type:varchar(20);not null" json:"category"`                    // 类别快照
	Price     Money     `gorm:"type:decimal(10,2);not null" json:"price"`                     // 单价快照
	CreatedAt time.Time `json:"-"`                                                            // 创建时间
	UpdatedAt time.Time `json:"-"`                                                            // 更新时间
}

// Subtotal 行项小计
func (i CartLineItem) Subtotal() Money {
	return i.Price.MulInt(i.Quantity)
}

// TableName 指定表名
func (CartLineItem) TableName() string {
	return "cart_line_items"
}
