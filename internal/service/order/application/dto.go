// internal/service/order/application/dto.go
package application

import (
	"foodsy/internal/service/order/domain"
)

// CartItemDTO 对应请求体里的一个购物车条目，价格是 paise 整数。
type CartItemDTO struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// Coordinates 经纬度（度）。
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PlaceOrderRequest 是下单接口的请求体。
// 配送费不接受客户端传值：商家和收货坐标都给出时服务端计算，否则按自提处理。
type PlaceOrderRequest struct {
	UserID       string        `json:"userId"`
	MobileNumber string        `json:"mobileNumber"`
	CartItems    []CartItemDTO `json:"cartItems"`
	Shop         *Coordinates  `json:"shop,omitempty"`
	Dropoff      *Coordinates  `json:"dropoff,omitempty"`
}

// PlaceOrderResponse 回显计算结果和生成的订单号。
type PlaceOrderResponse struct {
	OrderID     string        `json:"orderId"`
	Status      domain.Status `json:"status"`
	Subtotal    int64         `json:"subtotal"`
	Discount    int64         `json:"discount,omitempty"`
	OfferCode   string        `json:"offerCode,omitempty"`
	DistanceKm  int           `json:"distanceKm"`
	DeliveryFee int64         `json:"deliveryFee"`
	TotalAmount int64         `json:"totalAmount"`
	Message     string        `json:"message"`
}

// UpdateStatusRequest 管理端状态更新请求体。
type UpdateStatusRequest struct {
	Status domain.Status `json:"status"`
}

// OrderView 是查询接口返回的订单视图。
type OrderView struct {
	OrderID      string        `json:"orderId"`
	UserID       string        `json:"userId"`
	MobileNumber string        `json:"mobileNumber"`
	CartItems    []CartItemDTO `json:"cartItems"`
	Subtotal     int64         `json:"subtotal"`
	Discount     int64         `json:"discount,omitempty"`
	OfferCode    string        `json:"offerCode,omitempty"`
	DistanceKm   int           `json:"distanceKm"`
	DeliveryFee  int64         `json:"deliveryFee"`
	TotalAmount  int64         `json:"totalAmount"`
	Status       domain.Status `json:"status"`
	CreatedAt    string        `json:"createdAt"`
}

func (r *PlaceOrderRequest) toDomainItems() []domain.Item {
	items := make([]domain.Item, 0, len(r.CartItems))
	for _, it := range r.CartItems {
		items = append(items, domain.Item{
			ProductID:  it.ProductID,
			Name:       it.Name,
			PricePaise: it.Price,
			Quantity:   it.Quantity,
		})
	}
	return items
}

func toOrderView(o *domain.Order) *OrderView {
	items := make([]CartItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, CartItemDTO{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.PricePaise,
			Quantity:  it.Quantity,
		})
	}
	return &OrderView{
		OrderID:      o.ID,
		UserID:       o.UserID,
		MobileNumber: o.MobileNumber,
		CartItems:    items,
		Subtotal:     o.SubtotalPaise,
		Discount:     o.DiscountPaise,
		OfferCode:    o.OfferCode,
		DistanceKm:   o.DistanceKm,
		DeliveryFee:  o.DeliveryFee,
		TotalAmount:  o.TotalPaise,
		Status:       o.Status,
		CreatedAt:    o.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
