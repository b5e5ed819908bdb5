// internal/service/order/domain/quote.go
package domain

import "foodsy/internal/pkg/geo"

// DeliveryQuote 是下单时派生的一次性报价，落入订单记录后即被丢弃，本身不持久化。
type DeliveryQuote struct {
	DistanceKm int
	FeePaise   int64
}

// QuoteDelivery 由商家坐标和收货坐标计算配送报价：大圆距离向上取整，再套配送费阶梯。
func QuoteDelivery(shop, dropoff geo.LatLng) (DeliveryQuote, error) {
	distance := geo.DistanceKm(shop, dropoff)
	fee, err := DeliveryFeePaise(distance)
	if err != nil {
		return DeliveryQuote{}, err
	}
	return DeliveryQuote{DistanceKm: distance, FeePaise: fee}, nil
}

// PickupQuote 自提场景：距离 0、费用 0。
func PickupQuote() DeliveryQuote {
	return DeliveryQuote{}
}
