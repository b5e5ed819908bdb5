// internal/service/order/infrastructure/gorm_model.go
package infrastructure

import (
	"time"

	"foodsy/internal/service/order/domain"
)

// OrderModel 对应数据库中的 orders 表
type OrderModel struct {
	ID            string        `gorm:"primaryKey;size:32"`
	UserID        string        `gorm:"size:32;index"`
	MobileNumber  string        `gorm:"size:16"`
	SubtotalPaise int64         `gorm:"not null"`
	DiscountPaise int64         `gorm:"not null;default:0"`
	OfferCode     string        `gorm:"size:32"`
	DistanceKm    int           `gorm:"not null;default:0"`
	DeliveryFee   int64         `gorm:"not null;default:0"`
	TotalPaise    int64         `gorm:"not null"`
	Status        domain.Status `gorm:"size:16;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName 指定 GORM 应该使用的表名
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel 对应数据库中的 order_items 表
type OrderItemModel struct {
	ID         uint   `gorm:"primaryKey"`
	OrderID    string `gorm:"size:32;index"`
	ProductID  string `gorm:"size:64"`
	Name       string `gorm:"size:128"`
	PricePaise int64  `gorm:"not null"`
	Quantity   int    `gorm:"not null"`
}

// TableName 指定 GORM 应该使用的表名
func (OrderItemModel) TableName() string {
	return "order_items"
}
