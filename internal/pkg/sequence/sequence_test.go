// internal/pkg/sequence/sequence_test.go
package sequence

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterKey(t *testing.T) {
	day := time.Date(2026, 2, 28, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, "orders_20260228", CounterKey("orders", day))
	assert.Equal(t, "users_20260228", CounterKey("users", day))

	// 非 UTC 时间先换算到 UTC 再取日期
	ist := time.FixedZone("IST", 5*3600+1800)
	assert.Equal(t, "orders_20260227", CounterKey("orders", time.Date(2026, 2, 28, 1, 0, 0, 0, ist)))
}

func TestMemoryAllocator_SequentialNumbers(t *testing.T) {
	alloc := NewMemoryAllocator()
	day := time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC)

	for want := int64(1); want <= 5; want++ {
		got, err := alloc.Next(context.Background(), "orders", day)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestMemoryAllocator_IndependentKeys(t *testing.T) {
	alloc := NewMemoryAllocator()
	feb28 := time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC)
	mar01 := time.Date(2026, 3, 1, 0, 10, 0, 0, time.UTC)

	n, err := alloc.Next(context.Background(), "orders", feb28)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// 不同的实体类型、不同的自然日都从 1 重新开始
	n, err = alloc.Next(context.Background(), "users", feb28)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = alloc.Next(context.Background(), "orders", mar01)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMemoryAllocator_ConcurrentCallsNeverDuplicate(t *testing.T) {
	const n = 50
	alloc := NewMemoryAllocator()
	day := time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC)

	results := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq, err := alloc.Next(context.Background(), "orders", day)
			assert.NoError(t, err)
			results <- seq
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int64]bool, n)
	for seq := range results {
		assert.False(t, seen[seq], "sequence %d allocated twice", seq)
		seen[seq] = true
		assert.GreaterOrEqual(t, seq, int64(1))
		assert.LessOrEqual(t, seq, int64(n))
	}
	assert.Len(t, seen, n)
}
