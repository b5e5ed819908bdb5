// internal/pkg/sequence/gorm_test.go
package sequence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockedAllocator(t *testing.T) (*GormAllocator, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return NewGormAllocator(db), mock
}

func counterRows(key string, count int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"name", "count", "created_at", "updated_at"}).
		AddRow(key, count, time.Now(), time.Now())
}

func TestGormAllocator_IncrementsExistingCounter(t *testing.T) {
	alloc, mock := newMockedAllocator(t)
	day := time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC)
	key := CounterKey("orders", day)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM `sequence_counters` .*FOR UPDATE").
		WithArgs(key, 1).
		WillReturnRows(counterRows(key, 41))
	mock.ExpectExec("UPDATE `sequence_counters` SET").
		WithArgs(int64(42), sqlmock.AnyArg(), key).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	next, err := alloc.Next(context.Background(), "orders", day)
	require.NoError(t, err)
	assert.Equal(t, int64(42), next)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormAllocator_CreatesCounterOnFirstAllocationOfDay(t *testing.T) {
	alloc, mock := newMockedAllocator(t)
	day := time.Date(2026, 2, 28, 0, 5, 0, 0, time.UTC)
	key := CounterKey("orders", day)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM `sequence_counters` .*FOR UPDATE").
		WithArgs(key, 1).
		WillReturnRows(sqlmock.NewRows([]string{"name", "count", "created_at", "updated_at"}))
	mock.ExpectExec("INSERT INTO `sequence_counters`").
		WithArgs(key, int64(1), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	next, err := alloc.Next(context.Background(), "orders", day)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormAllocator_RetriesAfterCreateRace(t *testing.T) {
	alloc, mock := newMockedAllocator(t)
	day := time.Date(2026, 2, 28, 0, 0, 1, 0, time.UTC)
	key := CounterKey("orders", day)
	retriesBefore := testutil.ToFloat64(allocationRetries.WithLabelValues("mysql"))

	// 第一轮：两个事务同时发现行不存在，本事务的 INSERT 输掉了主键竞争
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM `sequence_counters` .*FOR UPDATE").
		WithArgs(key, 1).
		WillReturnRows(sqlmock.NewRows([]string{"name", "count", "created_at", "updated_at"}))
	mock.ExpectExec("INSERT INTO `sequence_counters`").
		WillReturnError(errors.New("Error 1062: Duplicate entry"))
	mock.ExpectRollback()

	// 第二轮：锁到对方创建的行，正常递增
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM `sequence_counters` .*FOR UPDATE").
		WithArgs(key, 1).
		WillReturnRows(counterRows(key, 1))
	mock.ExpectExec("UPDATE `sequence_counters` SET").
		WithArgs(int64(2), sqlmock.AnyArg(), key).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	next, err := alloc.Next(context.Background(), "orders", day)
	require.NoError(t, err)
	assert.Equal(t, int64(2), next)
	// 输掉的那一轮要体现在重试指标里
	assert.Equal(t, retriesBefore+1, testutil.ToFloat64(allocationRetries.WithLabelValues("mysql")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormAllocator_ReportsFailureAfterRetryBudget(t *testing.T) {
	alloc, mock := newMockedAllocator(t)
	day := time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC)
	key := CounterKey("orders", day)
	retriesBefore := testutil.ToFloat64(allocationRetries.WithLabelValues("mysql"))
	failuresBefore := testutil.ToFloat64(allocationFailures.WithLabelValues("mysql"))

	for i := 0; i < 3; i++ {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT .+ FROM `sequence_counters` .*FOR UPDATE").
			WithArgs(key, 1).
			WillReturnError(errors.New("Error 1205: Lock wait timeout exceeded"))
		mock.ExpectRollback()
	}

	_, err := alloc.Next(context.Background(), "orders", day)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAllocationFailed)
	assert.Equal(t, retriesBefore+3, testutil.ToFloat64(allocationRetries.WithLabelValues("mysql")))
	assert.Equal(t, failuresBefore+1, testutil.ToFloat64(allocationFailures.WithLabelValues("mysql")))
	assert.NoError(t, mock.ExpectationsWereMet())
}
