// internal/service/order/domain/repository.go
package domain

import "context"

// OrderRepository 定义了订单聚合的持久化接口。
// 它位于领域层，但由基础设施层实现。
type OrderRepository interface {
	// Create 插入一个新订单（含条目）。
	Create(ctx context.Context, order *Order) error

	// FindByID 根据订单号查找订单，不存在时返回 ErrOrderNotFound。
	FindByID(ctx context.Context, id string) (*Order, error)

	// UpdateStatus 持久化一次状态流转。
	UpdateStatus(ctx context.Context, id string, status Status) error

	// ListAll 返回全部订单，按创建时间倒序（管理端列表）。
	ListAll(ctx context.Context) ([]*Order, error)
}
