// internal/service/catalog/application/service.go
package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"foodsy/internal/pkg/logger"
	"foodsy/internal/service/catalog/domain"
)

// CatalogService 负责商品和店铺的管理与查询。
type CatalogService struct {
	productRepo domain.ProductRepository
	shopRepo    domain.ShopRepository
	tracer      trace.Tracer
}

func NewCatalogService(productRepo domain.ProductRepository, shopRepo domain.ShopRepository, tracer trace.Tracer) *CatalogService {
	return &CatalogService{productRepo: productRepo, shopRepo: shopRepo, tracer: tracer}
}

// CreateProduct 管理端新增商品，id 服务端生成。
func (s *CatalogService) CreateProduct(ctx context.Context, req *SaveProductRequest) (*ProductView, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.CreateProduct")
	defer span.End()

	now := time.Now().UTC()
	product := req.toDomain()
	product.ID = uuid.New().String()
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := product.Validate(); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if product.ShopID != 0 {
		if _, err := s.shopRepo.FindByID(ctx, product.ShopID); err != nil {
			span.RecordError(err)
			return nil, err
		}
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		span.RecordError(err)
		return nil, err
	}
	logger.Ctx(ctx).Info().Str("product_id", product.ID).Msg("product created")
	return toProductView(product), nil
}

// UpdateProduct 管理端更新商品。
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, req *SaveProductRequest) (*ProductView, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.UpdateProduct")
	defer span.End()

	existing, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	updated := req.toDomain()
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	if err := updated.Validate(); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := s.productRepo.Update(ctx, updated); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return toProductView(updated), nil
}

// DeleteProduct 管理端删除商品。
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "catalog.DeleteProduct")
	defer span.End()
	return s.productRepo.Delete(ctx, id)
}

// ListProducts 商品列表，category 为空时返回全部可售商品。走缓存。
func (s *CatalogService) ListProducts(ctx context.Context, category string) ([]*ProductView, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.ListProducts")
	defer span.End()
	span.SetAttributes(attribute.String("catalog.category", category))

	products, err := s.productRepo.List(ctx, category)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	views := make([]*ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p))
	}
	return views, nil
}

// CreateShop 管理端录入店铺，校验规则见 domain.Shop.Validate。
func (s *CatalogService) CreateShop(ctx context.Context, req *SaveShopRequest) (*ShopView, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.CreateShop")
	defer span.End()

	shop := req.toDomain()
	shop.CreatedAt = time.Now().UTC()
	if err := shop.Validate(); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := s.shopRepo.Create(ctx, shop); err != nil {
		span.RecordError(err)
		return nil, err
	}
	logger.Ctx(ctx).Info().Int64("shop_id", shop.ID).Str("name", shop.Name).Msg("shop created")
	return toShopView(shop), nil
}

// GetShop 店铺查询（下单时取商家坐标用）。
func (s *CatalogService) GetShop(ctx context.Context, id int64) (*ShopView, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.GetShop")
	defer span.End()

	shop, err := s.shopRepo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return toShopView(shop), nil
}

// ListShops 店铺列表。
func (s *CatalogService) ListShops(ctx context.Context) ([]*ShopView, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.ListShops")
	defer span.End()

	shops, err := s.shopRepo.ListAll(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	views := make([]*ShopView, 0, len(shops))
	for _, sh := range shops {
		views = append(views, toShopView(sh))
	}
	return views, nil
}
