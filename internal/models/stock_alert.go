package models

import (
	"time"
)

// StockAlert 低库存提醒记录（结账扣减后由 worker 落库）
type StockAlert struct {
	ID        uint      `gorm:"primarykey" json:"-"`                     // 主键
	Model     string    `gorm:"not null;index" json:"model"`             // 商品型号
	Remaining int       `gorm:"not null" json:"remaining"`               // 剩余数量
	Threshold int       `gorm:"not null" json:"threshold"`               // 触发阈值
	CreatedAt time.Time `gorm:"index" json:"created_at"`                 // 创建时间
}

// TableName 指定表名
func (StockAlert) TableName() string {
	return "stock_alerts"
}
