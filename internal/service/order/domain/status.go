// internal/service/order/domain/status.go
package domain

// Status 定义了订单的生命周期状态。
// 这是对外的唯一一套状态词表，管理端更新状态时也只接受这四个值。
type Status string

const (
	StatusConfirmed Status = "Confirmed"  // 下单成功，商家已接单
	StatusPreparing Status = "Preparing"  // 备餐/拣货中
	StatusOnTheWay  Status = "On the Way" // 配送中
	StatusDelivered Status = "Delivered"  // 已送达（终态）
)

// statusRank 状态在生命周期中的位置，只允许向前流转
var statusRank = map[Status]int{
	StatusConfirmed: 0,
	StatusPreparing: 1,
	StatusOnTheWay:  2,
	StatusDelivered: 3,
}

// IsValid 判断是否是词表内的状态值
func (s Status) IsValid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransitionTo 只有严格向前的流转才被允许，跳级可以（Confirmed 直接到 Delivered），回退不行。
func (s Status) CanTransitionTo(next Status) bool {
	from, ok1 := statusRank[s]
	to, ok2 := statusRank[next]
	return ok1 && ok2 && to > from
}
