// internal/service/catalog/domain/product.go
package domain

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrInvalidProduct  = errors.New("invalid product")
	ErrProductNotFound = errors.New("product not found")
)

// Product 是商品目录里的一个条目。价格为 paise 整数。
type Product struct {
	ID          string
	Name        string
	Description string
	Category    string
	PricePaise  int64
	ImageURL    string
	ShopID      int64 // 所属店铺
	Available   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate 管理端录入校验。
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.Wrap(ErrInvalidProduct, "name is required")
	}
	if p.PricePaise < 0 {
		return errors.Wrap(ErrInvalidProduct, "price must be non-negative")
	}
	return nil
}
