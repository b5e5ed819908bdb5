// internal/service/catalog/domain/shop.go
package domain

import (
	"time"

	"github.com/pkg/errors"
)

var (
	ErrInvalidShop  = errors.New("invalid shop")
	ErrShopNotFound = errors.New("shop not found")
)

// ShopType 店铺类型，只允许这三种。
type ShopType string

const (
	ShopTypeRestaurant ShopType = "Restaurant"
	ShopTypeVegetables ShopType = "Vegetables"
	ShopTypeGrocery    ShopType = "Grocery"
)

// 目前只在 Kakinada 一个城市运营
const serviceCity = "Kakinada"

// Shop 是平台上的商家（餐厅/菜店/杂货店）。坐标用于下单时计算配送距离。
type Shop struct {
	ID        int64
	Name      string
	Type      ShopType
	Address   string
	City      string
	Latitude  float64
	Longitude float64
	CreatedAt time.Time
}

// Validate 店铺录入规则。
func (s *Shop) Validate() error {
	if len(s.Name) < 3 {
		return errors.Wrap(ErrInvalidShop, "shop name must be at least 3 characters long")
	}
	switch s.Type {
	case ShopTypeRestaurant, ShopTypeVegetables, ShopTypeGrocery:
	default:
		return errors.Wrap(ErrInvalidShop, "invalid shop type")
	}
	if s.Address == "" || s.Latitude == 0 || s.Longitude == 0 {
		return errors.Wrap(ErrInvalidShop, "address and coordinates are required")
	}
	if s.City != serviceCity {
		return errors.Wrapf(ErrInvalidShop, "shops can only be located in %s", serviceCity)
	}
	return nil
}
