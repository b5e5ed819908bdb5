// internal/pkg/sequence/redis.go
package sequence

import (
	"context"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "seq:"
	// 计数器只在当天有意义，留 48 小时的余量后让 redis 自行回收。
	redisKeyTTL = 48 * time.Hour
)

// RedisAllocator 是 Allocator 的 Redis 实现。
// INCR 本身是原子的，不存在读旧值的窗口；首次分配（返回 1）时顺带设置过期时间。
type RedisAllocator struct {
	client *redis.Client
}

func NewRedisAllocator(client *redis.Client) *RedisAllocator {
	return &RedisAllocator{client: client}
}

// Next 实现 Allocator。连接类错误在同样的重试预算内重试。
func (a *RedisAllocator) Next(ctx context.Context, entityType string, day time.Time) (int64, error) {
	key := redisKeyPrefix + CounterKey(entityType, day)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		next, err := a.client.Incr(ctx, key).Result()
		if err == nil {
			if next == 1 {
				// TTL 设置失败不影响唯一性，只影响回收，记下错误即可
				_ = a.client.Expire(ctx, key, redisKeyTTL).Err()
			}
			return next, nil
		}
		lastErr = err
		allocationRetries.WithLabelValues("redis").Inc()

		select {
		case <-ctx.Done():
			allocationFailures.WithLabelValues("redis").Inc()
			return 0, pkgerrors.Wrap(ErrAllocationFailed, ctx.Err().Error())
		case <-time.After(time.Duration(attempt) * retryBackoff):
		}
	}
	allocationFailures.WithLabelValues("redis").Inc()
	return 0, pkgerrors.Wrapf(ErrAllocationFailed, "after %d attempts: %v", maxAttempts, lastErr)
}
