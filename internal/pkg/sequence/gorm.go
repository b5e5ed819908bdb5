// internal/pkg/sequence/gorm.go
package sequence

import (
	"context"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CounterModel 对应数据库中的 sequence_counters 表。
// 一行就是一个 (entityType, 自然日) 的计数器，当天第一次分配时创建。
// 旧的日期行不回收，翻天后自然换新的 key。
type CounterModel struct {
	Name      string `gorm:"primaryKey;size:64"`
	Count     int64  `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定 GORM 应该使用的表名
func (CounterModel) TableName() string {
	return "sequence_counters"
}

// GormAllocator 是 Allocator 的 MySQL 实现。
// 读-改-写在一个事务里完成，行锁（SELECT ... FOR UPDATE）保证两个并发调用
// 不会基于同一个旧值递增。除了数据库自身的锁之外没有任何应用层锁。
type GormAllocator struct {
	db *gorm.DB
}

func NewGormAllocator(db *gorm.DB) *GormAllocator {
	return &GormAllocator{db: db}
}

// Next 实现 Allocator。
// 两个事务同时发现当天计数行不存在时，只有一个 Create 会成功，
// 另一个因主键冲突失败后走重试，下一轮就能锁到已存在的行。
func (a *GormAllocator) Next(ctx context.Context, entityType string, day time.Time) (int64, error) {
	key := CounterKey(entityType, day)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		next, err := a.tryAllocate(ctx, key)
		if err == nil {
			return next, nil
		}
		lastErr = err
		allocationRetries.WithLabelValues("mysql").Inc()

		select {
		case <-ctx.Done():
			allocationFailures.WithLabelValues("mysql").Inc()
			return 0, pkgerrors.Wrap(ErrAllocationFailed, ctx.Err().Error())
		case <-time.After(time.Duration(attempt) * retryBackoff):
		}
	}
	allocationFailures.WithLabelValues("mysql").Inc()
	return 0, pkgerrors.Wrapf(ErrAllocationFailed, "after %d attempts: %v", maxAttempts, lastErr)
}

func (a *GormAllocator) tryAllocate(ctx context.Context, key string) (int64, error) {
	var next int64
	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row CounterModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("name = ?", key).
			First(&row).Error

		if pkgerrors.Is(err, gorm.ErrRecordNotFound) {
			row = CounterModel{Name: key, Count: 1}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			next = 1
			return nil
		}
		if err != nil {
			return err
		}

		next = row.Count + 1
		return tx.Model(&CounterModel{}).
			Where("name = ?", key).
			Update("count", next).Error
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}
