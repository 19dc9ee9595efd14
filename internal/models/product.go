package models

import (
	"time"
)

// Product 商品表（Model 为业务主键，Quantity 为在库数量）
type Product struct {
	ID           uint      `gorm:"primarykey" json:"-"`                                  // 主键
	Model        string    `gorm:"uniqueIndex;not null" json:"model"`                    // 型号（业务唯一键）
	Category     string    `gorm:"type:varchar(20);not null;index" json:"category"`      // 类别 Smartphone/Laptop/Appliance
	Quantity     int       `gorm:"not null;default:0" json:"quantity"`                   // 在库数量
	Details      string    `gorm:"default:''" json:"details"`                            // 商品描述
	SellingPrice Money     `gorm:"type:decimal(10,2);not null" json:"sellingPrice"`      // 销售单价
	ArrivalDate  Date      `gorm:"type:date" json:"arrivalDate"`                         // 到货日期
	CreatedAt    time.Time `json:"-"`                                                    // 创建时间
	UpdatedAt    time.Time `json:"-"`                                                    // 更新时间
}

// Available 是否有货
func (p Product) Available() bool {
	return p.Quantity > 0
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
