// internal/pkg/sequence/memory.go
package sequence

import (
	"context"
	"sync"
	"time"
)

// MemoryAllocator 是 Allocator 的进程内实现，只用于测试和本地开发。
// 进程内计数器既不能跨实例也不能跨重启，生产环境必须用持久化实现。
type MemoryAllocator struct {
	mu       sync.Mutex
	counters map[string]int64
}

func NewMemoryAllocator() *MemoryAllocator {
	return &MemoryAllocator{counters: make(map[string]int64)}
}

// Next 实现 Allocator。
func (a *MemoryAllocator) Next(_ context.Context, entityType string, day time.Time) (int64, error) {
	key := CounterKey(entityType, day)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.counters[key]++
	return a.counters[key], nil
}
