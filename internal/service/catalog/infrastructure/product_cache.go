// internal/service/catalog/infrastructure/product_cache.go
package infrastructure

import (
	"context"
	"encoding/json"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"foodsy/internal/pkg/logger"
	"foodsy/internal/service/catalog/domain"
)

const (
	productCacheKeyPrefix = "catalog:products:"
	productCacheTTL       = 60 * time.Second
)

// CachedProductRepository 给商品列表加一层 Redis 读穿透缓存。
// 商品列表是全站最热的读路径；写路径（管理端增删改）直接打穿并失效缓存。
// 缓存任何一步失败都退回数据库，不影响正确性。
type CachedProductRepository struct {
	inner domain.ProductRepository
	rdb   *redis.Client
}

func NewCachedProductRepository(inner domain.ProductRepository, rdb *redis.Client) *CachedProductRepository {
	return &CachedProductRepository{inner: inner, rdb: rdb}
}

func (r *CachedProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := r.inner.Create(ctx, product); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if err := r.inner.Update(ctx, product); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedProductRepository) Delete(ctx context.Context, id string) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.inner.FindByID(ctx, id)
}

func (r *CachedProductRepository) List(ctx context.Context, category string) ([]*domain.Product, error) {
	key := productCacheKeyPrefix + category

	cached, err := r.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var products []*domain.Product
		if err := json.Unmarshal(cached, &products); err == nil {
			return products, nil
		}
		// 缓存内容损坏，当作未命中
	} else if err != redis.Nil {
		logger.Ctx(ctx).Warn().Err(err).Msg("product cache read failed, falling back to db")
	}

	products, err := r.inner.List(ctx, category)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(products); err == nil {
		if err := r.rdb.Set(ctx, key, data, productCacheTTL).Err(); err != nil {
			logger.Ctx(ctx).Warn().Err(err).Msg("product cache write failed")
		}
	}
	return products, nil
}

// invalidate 删除所有分类的列表缓存。key 数量 = 分类数，SCAN 足够。
func (r *CachedProductRepository) invalidate(ctx context.Context) {
	iter := r.rdb.Scan(ctx, 0, productCacheKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Ctx(ctx).Warn().Err(err).Str("key", iter.Val()).Msg("product cache invalidation failed")
		}
	}
	if err := iter.Err(); err != nil {
		logger.Ctx(ctx).Warn().Err(pkgerrors.Wrap(err, "scan product cache keys")).Msg("product cache invalidation failed")
	}
}
