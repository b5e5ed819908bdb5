// internal/service/order/infrastructure/adapter/notification_kafka_adapter.go
package adapter

import (
	"context"
	"encoding/json"

	pkgerrors "github.com/pkg/errors"
	"github.com/segmentio/kafka-go"

	"foodsy/internal/pkg/mq"
	"foodsy/internal/service/order/domain"
)

// StatusKafkaAdapter 是 port.StatusNotifier 的 Kafka 实现。
// 以 userID 作为消息 key，保证同一用户的状态事件落在同一分区、消费有序。
type StatusKafkaAdapter struct {
	writer *kafka.Writer
}

func NewStatusKafkaAdapter(writer *kafka.Writer) *StatusKafkaAdapter {
	return &StatusKafkaAdapter{writer: writer}
}

// NotifyStatusChanged 实现 port.StatusNotifier
func (a *StatusKafkaAdapter) NotifyStatusChanged(ctx context.Context, event *domain.OrderStatusChanged) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return pkgerrors.Wrap(err, "marshal status event")
	}
	if err := mq.ProduceMessage(ctx, a.writer, []byte(event.UserID), eventBytes); err != nil {
		return pkgerrors.Wrapf(err, "produce status event for order %s", event.OrderID)
	}
	return nil
}
