package models

import (
	"time"
)

// Review 商品评价（同一用户对同一型号只能评价一次）
type Review struct {
	ID        uint      `gorm:"primarykey" json:"-"`                                        // 主键
	Model     string    `gorm:"not null;uniqueIndex:idx_reviews_model_user" json:"model"`   // 商品型号
	Username  string    `gorm:"not null;uniqueIndex:idx_reviews_model_user" json:"user"`    // 评价人
	Score     int       `gorm:"not null" json:"score"`                                      // 评分 1-5
	Date      Date      `gorm:"type:date" json:"date"`                                      // 评价日期
	Comment   string    `gorm:"default:''" json:"comment"`                                  // 评语
	CreatedAt time.Time `json:"-"`                                                          // 创建时间
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}
