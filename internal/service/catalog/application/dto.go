// internal/service/catalog/application/dto.go
package application

import (
	"time"

	"foodsy/internal/service/catalog/domain"
)

// SaveProductRequest 管理端创建/更新商品的请求体。
type SaveProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       int64  `json:"price"` // paise
	ImageURL    string `json:"imageUrl"`
	ShopID      int64  `json:"shopId"`
	Available   bool   `json:"available"`
}

// ProductView 查询返回的商品视图。
type ProductView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       int64  `json:"price"`
	ImageURL    string `json:"imageUrl"`
	ShopID      int64  `json:"shopId"`
	Available   bool   `json:"available"`
	CreatedAt   string `json:"createdAt"`
}

// SaveShopRequest 管理端录入店铺的请求体。
type SaveShopRequest struct {
	ShopName  string  `json:"shopName"`
	ShopType  string  `json:"shopType"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ShopView 查询返回的店铺视图。
type ShopView struct {
	ID        int64   `json:"id"`
	ShopName  string  `json:"shopName"`
	ShopType  string  `json:"shopType"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	CreatedAt string  `json:"createdAt"`
}

func (r *SaveProductRequest) toDomain() *domain.Product {
	return &domain.Product{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		PricePaise:  r.Price,
		ImageURL:    r.ImageURL,
		ShopID:      r.ShopID,
		Available:   r.Available,
	}
}

func toProductView(p *domain.Product) *ProductView {
	return &ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.PricePaise,
		ImageURL:    p.ImageURL,
		ShopID:      p.ShopID,
		Available:   p.Available,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}

func (r *SaveShopRequest) toDomain() *domain.Shop {
	return &domain.Shop{
		Name:      r.ShopName,
		Type:      domain.ShopType(r.ShopType),
		Address:   r.Address,
		City:      r.City,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
	}
}

func toShopView(s *domain.Shop) *ShopView {
	return &ShopView{
		ID:        s.ID,
		ShopName:  s.Name,
		ShopType:  string(s.Type),
		Address:   s.Address,
		City:      s.City,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
	}
}
