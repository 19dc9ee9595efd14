package models

import (
	"time"
)

// Cart 购物车（每个顾客至多一辆未支付购物车，结账后不可再变更）
type Cart struct {
	ID          uint      `gorm:"primarykey" json:"-"`                                       // 主键
	Customer    string    `gorm:"not null;index:idx_carts_customer_paid" json:"customer"`    // 顾客用户名
	Paid        bool      `gorm:"not null;default:false;index:idx_carts_customer_paid" json:"paid"` // 是否已支付
	PaymentDate *Date     `gorm:"type:date" json:"paymentDate"`                              // 支付日期（未支付为 null）
	Total       Money     `gorm:"type:decimal(10,2);not null;default:0" json:"total"`        // 合计（冗余维护，始终等于行项小计之和）
	CreatedAt   time.Time `json:"-"`                                                         // 创建时间
	UpdatedAt   time.Time `json:"-"`                                                         // 更新时间

	Items []CartLineItem `gorm:"foreignKey:CartID" json:"products"` // 行项
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}

// EmptyCartView 未持有购物车时返回的空视图
func EmptyCartView(customer string) Cart {
	return Cart{
		Customer: customer,
		Paid:     false,
		Total:    ZeroMoney(),
		Items:    []CartLineItem{},
	}
}
