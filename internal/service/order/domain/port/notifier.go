// internal/service/order/domain/port/notifier.go
package port

import (
	"context"

	"foodsy/internal/service/order/domain"
)

// StatusNotifier 把订单状态事件投递给下游（Kafka -> 推送网关）。
// 投递失败不回滚订单，只记日志：通知是尽力而为的。
type StatusNotifier interface {
	NotifyStatusChanged(ctx context.Context, event *domain.OrderStatusChanged) error
}
