// internal/service/order/domain/port/offer.go
package port

import "context"

// AppliedOffer 是优惠服务给出的可用优惠。
type AppliedOffer struct {
	Code          string
	DiscountPaise int64
}

// OfferService 在下单时询问优惠服务：按小计和件数返回最优的可用优惠。
// 没有可用优惠时返回 nil, nil。
type OfferService interface {
	BestFor(ctx context.Context, subtotalPaise int64, itemCount int) (*AppliedOffer, error)
}
