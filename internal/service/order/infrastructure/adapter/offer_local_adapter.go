// internal/service/order/infrastructure/adapter/offer_local_adapter.go
package adapter

import (
	"context"

	offerapp "foodsy/internal/service/offer/application"
	"foodsy/internal/service/order/domain/port"
)

// OfferLocalAdapter 把同进程内的优惠服务适配到订单侧的 port.OfferService。
// 优惠和订单在一个二进制里，不需要走网络。
type OfferLocalAdapter struct {
	offers *offerapp.OfferService
}

func NewOfferLocalAdapter(offers *offerapp.OfferService) *OfferLocalAdapter {
	return &OfferLocalAdapter{offers: offers}
}

// BestFor 实现 port.OfferService
func (a *OfferLocalAdapter) BestFor(ctx context.Context, subtotalPaise int64, itemCount int) (*port.AppliedOffer, error) {
	best, err := a.offers.BestFor(ctx, subtotalPaise, itemCount)
	if err != nil {
		return nil, err
	}
	if best == nil {
		return nil, nil
	}
	return &port.AppliedOffer{
		Code:          best.Code,
		DiscountPaise: best.DiscountPaise,
	}, nil
}
