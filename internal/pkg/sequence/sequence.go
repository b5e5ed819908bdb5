// internal/pkg/sequence/sequence.go
package sequence

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Allocator 负责按 (entityType, 自然日) 发放严格递增的序号。
// 同一个 key 上的并发调用绝不能拿到重复的序号，这是订单号/用户号唯一性的基础。
// 自然日统一取 UTC：计数器的 key 和标识符里的日期段来自同一次取时钟，
// 跨午夜时两者也不会出现分歧。
type Allocator interface {
	// Next 返回 key 上的下一个序号。当天第一次分配返回 1。
	Next(ctx context.Context, entityType string, day time.Time) (int64, error)
}

// ErrAllocationFailed 表示在重试预算内事务始终无法提交。
// 调用方必须中止整个下单/注册流程，绝不允许退化为随机序号继续执行。
var ErrAllocationFailed = errors.New("sequence allocation failed")

const (
	// 分配事务的重试预算。冲突（例如两个事务同时创建当天的计数行）
	// 在重试后几乎总能成功，预算耗尽才对外报 ErrAllocationFailed。
	maxAttempts  = 3
	retryBackoff = 100 * time.Millisecond
)

var (
	allocationRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodsy_sequence_allocation_retries_total",
		Help: "Allocation attempts that failed and were retried, by backend.",
	}, []string{"backend"})
	allocationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodsy_sequence_allocation_failures_total",
		Help: "Allocations aborted after exhausting the retry budget, by backend.",
	}, []string{"backend"})
)

// CounterKey 生成计数器记录的 key，例如 orders_20260228、users_20260228。
func CounterKey(entityType string, day time.Time) string {
	return fmt.Sprintf("%s_%s", entityType, day.UTC().Format("20060102"))
}
