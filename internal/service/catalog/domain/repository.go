// internal/service/catalog/domain/repository.go
package domain

import "context"

// ProductRepository 定义了商品数据的持久化接口
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Product, error)
	// List 返回可售商品，category 为空时不过滤。
	List(ctx context.Context, category string) ([]*Product, error)
}

// ShopRepository 定义了店铺数据的持久化接口
type ShopRepository interface {
	Create(ctx context.Context, shop *Shop) error
	FindByID(ctx context.Context, id int64) (*Shop, error)
	ListAll(ctx context.Context) ([]*Shop, error)
}
