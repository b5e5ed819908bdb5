// internal/service/offer/domain/repository.go
package domain

import (
	"context"
	"time"
)

// OfferRepository 定义了优惠数据的持久化接口
type OfferRepository interface {
	Create(ctx context.Context, offer *Offer) error
	Update(ctx context.Context, offer *Offer) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*Offer, error)
	ListAll(ctx context.Context) ([]*Offer, error)
	// ListLive 返回 now 时刻启用且在有效期内的优惠
	ListLive(ctx context.Context, now time.Time) ([]*Offer, error)
}
