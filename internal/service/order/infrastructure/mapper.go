// internal/service/order/infrastructure/mapper.go
package infrastructure

import "foodsy/internal/service/order/domain"

// ToDomainOrder 将数据库模型转换为领域模型
func ToDomainOrder(model *OrderModel) *domain.Order {
	if model == nil {
		return nil
	}
	items := make([]domain.Item, 0, len(model.Items))
	for _, it := range model.Items {
		items = append(items, domain.Item{
			ProductID:  it.ProductID,
			Name:       it.Name,
			PricePaise: it.PricePaise,
			Quantity:   it.Quantity,
		})
	}
	return &domain.Order{
		ID:            model.ID,
		UserID:        model.UserID,
		MobileNumber:  model.MobileNumber,
		Items:         items,
		SubtotalPaise: model.SubtotalPaise,
		DiscountPaise: model.DiscountPaise,
		OfferCode:     model.OfferCode,
		DistanceKm:    model.DistanceKm,
		DeliveryFee:   model.DeliveryFee,
		TotalPaise:    model.TotalPaise,
		Status:        model.Status,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

// FromDomainOrder 将领域模型转换为数据库模型（用于插入）
func FromDomainOrder(dmn *domain.Order) *OrderModel {
	if dmn == nil {
		return nil
	}
	items := make([]OrderItemModel, 0, len(dmn.Items))
	for _, it := range dmn.Items {
		items = append(items, OrderItemModel{
			OrderID:    dmn.ID,
			ProductID:  it.ProductID,
			Name:       it.Name,
			PricePaise: it.PricePaise,
			Quantity:   it.Quantity,
		})
	}
	return &OrderModel{
		ID:            dmn.ID,
		UserID:        dmn.UserID,
		MobileNumber:  dmn.MobileNumber,
		SubtotalPaise: dmn.SubtotalPaise,
		DiscountPaise: dmn.DiscountPaise,
		OfferCode:     dmn.OfferCode,
		DistanceKm:    dmn.DistanceKm,
		DeliveryFee:   dmn.DeliveryFee,
		TotalPaise:    dmn.TotalPaise,
		Status:        dmn.Status,
		CreatedAt:     dmn.CreatedAt,
		UpdatedAt:     dmn.UpdatedAt,
		Items:         items,
	}
}
