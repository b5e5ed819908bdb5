// internal/service/order/domain/event.go
package domain

import "time"

// OrderStatusChanged 在订单创建和每次状态流转时发布，
// 推送网关消费后实时通知到在线客户端。
type OrderStatusChanged struct {
	OrderID    string    `json:"orderId"`
	UserID     string    `json:"userId"`
	Status     Status    `json:"status"`
	TotalPaise int64     `json:"totalPaise"`
	OccurredAt time.Time `json:"occurredAt"`
}
